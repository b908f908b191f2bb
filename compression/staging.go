package compression

import (
	"fmt"

	go_buffer "github.com/datnguyenzzz/nogodb/lib/go-buffer"
)

// Stage compresses the src window into a freshly allocated Buffer. It
// returns the owning buffer and the compressed payload length, the buffer's
// extent beyond that length is uninitialized slack.
func Stage(c ICompression, src go_buffer.ConstInterval, opts ...go_buffer.BufferOpt) (*go_buffer.Buffer, int, error) {
	compressed := c.Compress(nil, src.Bytes())
	buf, err := go_buffer.NewFrom(len(compressed), go_buffer.MakeConstInterval(compressed), opts...)
	if err != nil {
		return nil, 0, err
	}
	return buf, len(compressed), nil
}

// Unstage decompresses the src window into a freshly allocated Buffer sized
// by DecompressedLen. It returns the owning buffer and the decompressed
// payload length. The buffer is released before returning an error, so no
// allocation leaks on a corrupt payload.
func Unstage(c ICompression, src go_buffer.ConstInterval, opts ...go_buffer.BufferOpt) (*go_buffer.Buffer, int, error) {
	n, err := c.DecompressedLen(src.Bytes())
	if err != nil {
		return nil, 0, err
	}
	if n < 0 || n > go_buffer.MaxBufferSize {
		// the length prefix is attacker controlled, keep it inside the
		// buffer domain instead of tripping the constructor contract
		return nil, 0, fmt.Errorf("%w: decompressed size %d is outside the buffer domain", ErrCorruptPayload, n)
	}

	buf, err := go_buffer.New(n, opts...)
	if err != nil {
		return nil, 0, err
	}
	if err := c.Decompress(buf.Bytes()[:n], src.Bytes()); err != nil {
		buf.Release()
		return nil, 0, err
	}
	return buf, n, nil
}
