package go_buffer

type BufferOpt func(*Buffer)

// WithAllocator sets the allocator a buffer acquires its block from and
// releases it back to. Defaults to DefaultAllocator. The choice is made
// once per buffer, moves and swaps carry it along with the block.
func WithAllocator(a IAllocator) BufferOpt {
	return func(b *Buffer) {
		b.alloc = a
	}
}
