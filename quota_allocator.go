package go_buffer

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// quotaAllocator bounds the total bytes outstanding from an inner allocator.
// Acquisition never blocks, a request over the remaining quota fails right
// away with ErrAllocationFailure. The reservation covers the whole usable
// extent of the block, including any slack the inner allocator added on top
// of the request.
type quotaAllocator struct {
	limit int64
	sem   *semaphore.Weighted
	inner IAllocator

	statAlloc   atomic.Int64
	statFree    atomic.Int64
	statFailure atomic.Int64
	statInUsed  atomic.Int64
}

// NewQuotaAllocator caps inner at limit outstanding bytes. A nil inner
// falls back to DefaultAllocator.
func NewQuotaAllocator(limit int, inner IAllocator) IManagedAllocator {
	if inner == nil {
		inner = DefaultAllocator
	}
	return &quotaAllocator{
		limit: int64(limit),
		sem:   semaphore.NewWeighted(int64(limit)),
		inner: inner,
	}
}

func (q *quotaAllocator) Alloc(size int) ([]byte, error) {
	if !q.sem.TryAcquire(int64(size)) {
		q.statFailure.Add(1)
		zap.L().Error("allocation rejected, memory quota exhausted",
			zap.Int("requested", size),
			zap.Int64("in_used", q.statInUsed.Load()),
			zap.Int64("limit", q.limit))
		return nil, fmt.Errorf("%w: %d bytes requested over a %d bytes quota", ErrAllocationFailure, size, q.limit)
	}

	block, err := q.inner.Alloc(size)
	if err != nil {
		q.sem.Release(int64(size))
		q.statFailure.Add(1)
		return nil, err
	}

	// charge the slack when the inner allocator handed out more than the
	// request
	if extra := int64(cap(block)) - int64(size); extra > 0 {
		if !q.sem.TryAcquire(extra) {
			q.inner.Free(block)
			q.sem.Release(int64(size))
			q.statFailure.Add(1)
			zap.L().Error("allocation rejected, block slack over the memory quota",
				zap.Int("requested", size),
				zap.Int("usable", cap(block)),
				zap.Int64("limit", q.limit))
			return nil, fmt.Errorf("%w: %d usable bytes over a %d bytes quota", ErrAllocationFailure, cap(block), q.limit)
		}
	}

	q.statAlloc.Add(1)
	q.statInUsed.Add(int64(cap(block)))
	return block, nil
}

func (q *quotaAllocator) Free(block []byte) {
	weight := int64(cap(block))
	q.inner.Free(block)
	q.sem.Release(weight)
	q.statFree.Add(1)
	q.statInUsed.Add(-weight)
}

func (q *quotaAllocator) GetStats() Stats {
	return Stats{
		statAlloc:   q.statAlloc.Load(),
		statFree:    q.statFree.Load(),
		statFailure: q.statFailure.Load(),
	}
}

func (q *quotaAllocator) GetInUsed() int64 {
	return q.statInUsed.Load()
}

var _ IManagedAllocator = (*quotaAllocator)(nil)
