package compression

import (
	"encoding/binary"
	"fmt"

	"github.com/DataDog/zstd"
)

const (
	// TODO(low) make this configurable
	defaultLevel = 3
)

type zstdCompressor struct{}

func (z *zstdCompressor) GetType() CompressionType {
	return ZstdCompression
}

func (z *zstdCompressor) Compress(dst, src []byte) []byte {
	if len(dst) < binary.MaxVarintLen64 {
		dst = append(dst, make([]byte, binary.MaxVarintLen64-len(dst))...)
	}

	// Size dst up front from CompressBound instead of relying on
	// Datadog/zstd to grow it, so the uvarint prefix and the compressed
	// payload land in one block without memcopying.
	bound := zstd.CompressBound(len(src))
	if cap(dst) < binary.MaxVarintLen64+bound {
		dst = make([]byte, binary.MaxVarintLen64, binary.MaxVarintLen64+bound)
	}

	zCtx := zstd.NewCtx()
	// Prefix with a uvarint encoding of len(src), the decompressed payload
	varIntLen := binary.PutUvarint(dst, uint64(len(src)))
	result, err := zCtx.CompressLevel(dst[varIntLen:varIntLen+bound], src, defaultLevel)
	if err != nil {
		panic("error while compressing using Zstd")
	}
	if &result[0] != &dst[varIntLen] {
		panic("allocated a new buffer despite checking CompressBound")
	}

	return dst[:varIntLen+len(result)]
}

func (z *zstdCompressor) Decompress(buf, compressed []byte) error {
	// The payload is prefixed with a varint encoding the length of the
	// decompressed payload.
	_, prefixLen := binary.Uvarint(compressed)
	if prefixLen <= 0 {
		return fmt.Errorf("%w: zstd: invalid decompressed size prefix", ErrCorruptPayload)
	}
	compressed = compressed[prefixLen:]
	if len(compressed) == 0 {
		return fmt.Errorf("%w: zstd: empty src buffer", ErrCorruptPayload)
	}
	if len(buf) == 0 {
		return fmt.Errorf("%w: zstd: empty dst buffer", ErrCorruptPayload)
	}
	zCtx := zstd.NewCtx()
	if _, err := zCtx.DecompressInto(buf, compressed); err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptPayload, err)
	}
	return nil
}

func (z *zstdCompressor) DecompressedLen(b []byte) (decompressedLen int, err error) {
	decodedLenU64, varIntLen := binary.Uvarint(b)
	if varIntLen <= 0 {
		return 0, fmt.Errorf("%w: zstd: invalid decompressed size prefix", ErrCorruptPayload)
	}
	return int(decodedLenU64), nil
}

var _ ICompression = (*zstdCompressor)(nil)
