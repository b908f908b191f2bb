package go_buffer

import "fmt"

// Buffer is a move-only owner of a single fixed-size block of bytes. It
// acquires the block from its allocator once at construction and keeps it for
// its whole lifetime, there is no in-place resize. To grow, build a bigger
// Buffer initialized from the old one and MoveFrom it over the old, which
// releases the old block and adopts the new one in a single step.
//
// Exactly one live handle owns a block. A Buffer is handled through its
// pointer and transferred with Move, MoveFrom or Swap, by-value copies are
// rejected by go vet.
type Buffer struct {
	noCopy noCopy

	// block covers the whole usable extent handed out by the allocator,
	// len(block) == cap(block). A nil block is the Empty state.
	block []byte
	alloc IAllocator
}

// New acquires a block of at least size bytes, rounded up to the allocation
// granularity. size == 0 builds an Empty buffer without touching the
// allocator. The block content is uninitialized.
func New(size int, opts ...BufferOpt) (*Buffer, error) {
	if size < 0 || size > MaxBufferSize {
		panic(fmt.Sprintf("buffer size %d is outside of [0, %d]", size, MaxBufferSize))
	}

	b := &Buffer{alloc: DefaultAllocator}
	for _, opt := range opts {
		opt(b)
	}

	if size == 0 {
		return b, nil
	}

	block, err := b.alloc.Alloc(roundUp8(size))
	if err != nil {
		return nil, err
	}
	// adopt the full capacity, the allocator may have handed out more than
	// requested
	b.block = block[:cap(block)]
	return b, nil
}

// NewFrom is New followed by copying the init window into the front of the
// block. init must not be longer than the requested size. Bytes past the
// copied prefix are uninitialized.
func NewFrom(size int, init ConstInterval, opts ...BufferOpt) (*Buffer, error) {
	if init.Left() > size {
		panic(fmt.Sprintf("initializer of %d bytes does not fit into the requested %d bytes", init.Left(), size))
	}

	b, err := New(size, opts...)
	if err != nil {
		return nil, err
	}
	copy(b.block, init.window)
	return b, nil
}

// Ownership \\

// Move transfers the block into a fresh handle and leaves b Empty. b stays
// valid and keeps its allocator, so it can be reused as a move target.
func (b *Buffer) Move() *Buffer {
	moved := &Buffer{block: b.block, alloc: b.alloc}
	b.block = nil
	return moved
}

// MoveFrom releases b's current block, then adopts other's block and
// allocator and leaves other Empty. Moving a buffer onto itself is a no-op.
func (b *Buffer) MoveFrom(other *Buffer) {
	if b == other {
		return
	}
	b.Release()
	b.block, b.alloc = other.block, other.alloc
	other.block = nil
}

// Swap exchanges the whole ownership state of two buffers without any
// allocator calls.
func (b *Buffer) Swap(other *Buffer) {
	b.block, other.block = other.block, b.block
	b.alloc, other.alloc = other.alloc, b.alloc
}

// Release hands the block back to the owning allocator and leaves b Empty.
// Releasing an Empty buffer is a no-op, so Release is idempotent and safe on
// moved-from buffers.
func (b *Buffer) Release() {
	if b.block == nil {
		return
	}
	b.alloc.Free(b.block)
	b.block = nil
}

// Accessors \\

// Size returns the usable extent of the block. It is at least the rounded
// construction request, size-class allocators may hand out more.
func (b *Buffer) Size() int {
	return len(b.block)
}

func (b *Buffer) Empty() bool {
	return b.block == nil
}

// Bytes exposes the whole block for bulk access. Nil when Empty.
func (b *Buffer) Bytes() []byte {
	return b.block
}

// At returns the byte at index i, which must be within [0, Size()).
func (b *Buffer) At(i int) byte {
	if i < 0 || i >= len(b.block) {
		panic(fmt.Sprintf("index %d is out of the buffer extent [0, %d)", i, len(b.block)))
	}
	return b.block[i]
}

// SetAt stores v at index i, which must be within [0, Size()).
func (b *Buffer) SetAt(i int, v byte) {
	if i < 0 || i >= len(b.block) {
		panic(fmt.Sprintf("index %d is out of the buffer extent [0, %d)", i, len(b.block)))
	}
	b.block[i] = v
}

// Data returns a mutable view over the whole block. The view borrows the
// block, it must not outlive the buffer owning it.
func (b *Buffer) Data() Interval {
	return MakeInterval(b.block)
}

// DataConst is Data for read-only consumers.
func (b *Buffer) DataConst() ConstInterval {
	return MakeConstInterval(b.block)
}
