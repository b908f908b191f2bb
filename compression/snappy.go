package compression

import (
	"fmt"

	"github.com/golang/snappy"
)

type snappyCompressor struct{}

func (s *snappyCompressor) GetType() CompressionType {
	return SnappyCompression
}

func (s *snappyCompressor) Compress(dst, src []byte) []byte {
	dst = dst[:cap(dst):cap(dst)]
	return snappy.Encode(dst, src)
}

func (s *snappyCompressor) Decompress(buf, compressed []byte) error {
	res, err := snappy.Decode(buf, compressed)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptPayload, err)
	}
	if len(res) != len(buf) || (len(res) > 0 && &res[0] != &buf[0]) {
		return fmt.Errorf("%w: snappy decompressed outside the given buffer", ErrCorruptPayload)
	}
	return nil
}

func (s *snappyCompressor) DecompressedLen(b []byte) (decompressedLen int, err error) {
	decompressedLen, err = snappy.DecodedLen(b)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrCorruptPayload, err)
	}
	return decompressedLen, nil
}

var _ ICompression = (*snappyCompressor)(nil)
