package go_buffer

import (
	"math/bits"
	"sync"
	"sync/atomic"
)

const (
	maximumPoolCnt = 24
)

// pooledAllocator recycles blocks through size-class pools.
//
//	pools[0] serves requests from 0 upto 256 bytes
//	pools[1] serves requests from 257 upto 512 bytes
//	pools[2] serves requests from 513 upto 1024 bytes
//	...
//	pools[n] serves requests from 2^(n+7)+1 upto 2^(n+8) bytes
//
// Every block it hands out has len == cap == the class capacity, so the
// usable extent generally exceeds the request. Recycled blocks keep their
// previous content, callers must not expect zeroes.
type pooledAllocator struct {
	pools [maximumPoolCnt]sync.Pool

	statAlloc  atomic.Int64
	statFree   atomic.Int64
	statHit    atomic.Int64
	statMiss   atomic.Int64
	statPut    atomic.Int64
	statDrop   atomic.Int64
	statInUsed atomic.Int64
}

func NewPooledAllocator() IManagedAllocator {
	return &pooledAllocator{}
}

func (p *pooledAllocator) Alloc(size int) ([]byte, error) {
	id, poolCap := getPoolIDAndCapacity(size)
	if size > poolCap {
		// beyond the largest class, hand off to the heap. Free drops such
		// a block instead of pooling it.
		p.statAlloc.Add(1)
		p.statMiss.Add(1)
		p.statInUsed.Add(int64(size))
		return make([]byte, size), nil
	}

	p.statAlloc.Add(1)
	p.statInUsed.Add(int64(poolCap))
	if b := p.pools[id].Get(); b != nil {
		p.statHit.Add(1)
		block := b.([]byte)
		return block[:cap(block)], nil
	}

	// the pool is empty, allocate a whole class-capacity block
	p.statMiss.Add(1)
	return make([]byte, poolCap), nil
}

func (p *pooledAllocator) Free(block []byte) {
	capacity := cap(block)
	p.statFree.Add(1)
	p.statInUsed.Add(-int64(capacity))

	id, poolCap := getPoolIDAndCapacity(capacity)
	if capacity != poolCap {
		// not class-sized, so it never came out of a pool. Drop it for the
		// garbage collector.
		p.statDrop.Add(1)
		return
	}

	// reset the length, keep the capacity, and put into the pool
	p.statPut.Add(1)
	p.pools[id].Put(block[:0])
}

func (p *pooledAllocator) GetStats() Stats {
	return Stats{
		statAlloc: p.statAlloc.Load(),
		statFree:  p.statFree.Load(),
		statHit:   p.statHit.Load(),
		statMiss:  p.statMiss.Load(),
		statPut:   p.statPut.Load(),
		statDrop:  p.statDrop.Load(),
	}
}

func (p *pooledAllocator) GetInUsed() int64 {
	return p.statInUsed.Load()
}

// getPoolIDAndCapacity predicts the pool id for a given block size and
// returns that pool's class capacity.
func getPoolIDAndCapacity(size int) (int, int) {
	size--
	size = max(size, 0)
	size >>= 8
	id := bits.Len(uint(size))
	id = min(id, maximumPoolCnt-1)
	return id, 1 << (id + 8)
}

var _ IManagedAllocator = (*pooledAllocator)(nil)
