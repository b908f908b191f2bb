package go_buffer

// DefaultAllocator backs every buffer that is not given a dedicated
// allocator through WithAllocator.
var DefaultAllocator IAllocator = NewHeapAllocator()

// heapAllocator hands out fresh garbage collected blocks. The usable extent
// is exactly the request and Free is a no-op, dropping the last reference is
// what actually reclaims the block.
type heapAllocator struct{}

func NewHeapAllocator() IAllocator {
	return &heapAllocator{}
}

func (h *heapAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (h *heapAllocator) Free(block []byte) {}

var _ IAllocator = (*heapAllocator)(nil)
