package go_buffer

import "fmt"

// Interval is a mutable non-owning view over a contiguous byte window,
// typically a Buffer's extent. It is a plain descriptor, copying it copies
// the view, never the bytes. A view must not outlive the owner of the
// window it borrows.
type Interval struct {
	window []byte
}

func MakeInterval(b []byte) Interval {
	return Interval{window: b}
}

// Left returns the window length. Windows are bounded to the signed 32-bit
// domain, a longer one is a caller bug.
func (iv Interval) Left() int {
	if len(iv.window) > MaxBufferSize {
		panic(fmt.Sprintf("window of %d bytes exceeds the %d bytes domain", len(iv.window), MaxBufferSize))
	}
	return len(iv.window)
}

// At returns the byte at index i, which must be within [0, Left()).
func (iv Interval) At(i int) byte {
	if i < 0 || i >= len(iv.window) {
		panic(fmt.Sprintf("index %d is out of the window [0, %d)", i, len(iv.window)))
	}
	return iv.window[i]
}

// SetAt stores v at index i, which must be within [0, Left()).
func (iv Interval) SetAt(i int, v byte) {
	if i < 0 || i >= len(iv.window) {
		panic(fmt.Sprintf("index %d is out of the window [0, %d)", i, len(iv.window)))
	}
	iv.window[i] = v
}

// Bytes exposes the window for bulk access.
func (iv Interval) Bytes() []byte {
	return iv.window
}

// Const narrows the view to its read-only flavor.
func (iv Interval) Const() ConstInterval {
	return ConstInterval{window: iv.window}
}

// ConstInterval is the read-only flavor of Interval.
type ConstInterval struct {
	window []byte
}

func MakeConstInterval(b []byte) ConstInterval {
	return ConstInterval{window: b}
}

// Left returns the window length. Windows are bounded to the signed 32-bit
// domain, a longer one is a caller bug.
func (iv ConstInterval) Left() int {
	if len(iv.window) > MaxBufferSize {
		panic(fmt.Sprintf("window of %d bytes exceeds the %d bytes domain", len(iv.window), MaxBufferSize))
	}
	return len(iv.window)
}

// At returns the byte at index i, which must be within [0, Left()).
func (iv ConstInterval) At(i int) byte {
	if i < 0 || i >= len(iv.window) {
		panic(fmt.Sprintf("index %d is out of the window [0, %d)", i, len(iv.window)))
	}
	return iv.window[i]
}

// Bytes exposes the window for bulk reads. The window is shared with its
// owner, not a copy, callers must not mutate it.
func (iv ConstInterval) Bytes() []byte {
	return iv.window
}

// Equal reports whether two views address the same window, the same start
// and the same length. It never compares contents. Zero length views are
// all considered the same window.
func (iv ConstInterval) Equal(other ConstInterval) bool {
	if len(iv.window) != len(other.window) {
		return false
	}
	if len(iv.window) == 0 {
		return true
	}
	return &iv.window[0] == &other.window[0]
}
