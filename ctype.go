package go_buffer

import "errors"

var (
	B   = 1
	KiB = 1024 * B
	MiB = 1024 * KiB
)

const (
	// sizeGranularity is the allocation rounding unit. Every non zero request
	// is rounded up to the next multiple of it before reaching the allocator,
	// so block sizes stay 8 bytes aligned.
	sizeGranularity = 8

	// MaxBufferSize bounds a single buffer to the signed 32-bit domain.
	// Requests beyond it are a caller bug, not an allocation failure.
	MaxBufferSize = 1<<31 - 1
)

// IAllocator hands out the backing blocks that buffers own. A single
// allocator is shared by many buffers, so implementations must be safe
// for concurrent use. A Buffer itself is not.
type IAllocator interface {
	// Alloc returns a block with len == cap >= size. The whole returned
	// extent is usable by the caller, recycled blocks are not zeroed.
	Alloc(size int) ([]byte, error)

	// Free hands a block obtained from Alloc back to the allocator. The
	// caller must not touch the block afterwards.
	Free(block []byte)
}

// IManagedAllocator is an allocator that meters the blocks it hands out.
type IManagedAllocator interface {
	IAllocator

	// utils

	GetStats() Stats
	GetInUsed() int64
}

type Stats struct {
	statAlloc   int64
	statFree    int64
	statFailure int64
	statHit     int64
	statMiss    int64
	statPut     int64
	statDrop    int64
}

// Errors \\

var (
	ErrAllocationFailure = errors.New("allocation failure")
)
