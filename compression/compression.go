package compression

import (
	"errors"
	"fmt"
)

// CompressionType is the payload compression algorithm to use.
type CompressionType int

// The available compression types.
const (
	NoCompression CompressionType = iota
	SnappyCompression
	ZstdCompression
)

type ICompression interface {
	GetType() CompressionType
	// Compress a payload, appending the compressed data to dst[:0].
	Compress(dst, src []byte) []byte
	// Decompress decompresses compressed into buf. The buf slice must have
	// the exact size as the decompressed value. Callers may use
	// DecompressedLen to determine the correct size.
	Decompress(buf, compressed []byte) error
	// DecompressedLen returns the length of the provided payload once
	// decompressed, allowing the caller to size a buffer exactly to the
	// decompressed payload.
	DecompressedLen(b []byte) (decompressedLen int, err error)
}

func NewCompressor(ct CompressionType) ICompression {
	switch ct {
	case NoCompression:
		return &noopCompressor{}
	case SnappyCompression:
		return &snappyCompressor{}
	case ZstdCompression:
		return &zstdCompressor{}
	default:
		panic("unknown compression type")
	}
}

// noopCompressor moves payloads around unchanged, for callers that want the
// staging flow without paying for an algorithm.
type noopCompressor struct{}

func (n *noopCompressor) GetType() CompressionType {
	return NoCompression
}

func (n *noopCompressor) Compress(dst, src []byte) []byte {
	return append(dst[:0], src...)
}

func (n *noopCompressor) Decompress(buf, compressed []byte) error {
	if len(buf) != len(compressed) {
		return fmt.Errorf("%w: payload length mismatch", ErrCorruptPayload)
	}
	copy(buf, compressed)
	return nil
}

func (n *noopCompressor) DecompressedLen(b []byte) (decompressedLen int, err error) {
	return len(b), nil
}

var _ ICompression = (*noopCompressor)(nil)

// Errors \\

var (
	ErrCorruptPayload = errors.New("corrupt compressed payload")
)
