package go_buffer

import (
	"hash/crc32"

	"github.com/twmb/murmur3"
)

type ChecksumType byte

const (
	UnknownChecksum ChecksumType = iota
	CRC32Checksum
	MurmurChecksum
)

// IChecksum fingerprints a byte window, e.g. to verify a staged payload
// survived a chain of moves and swaps intact.
type IChecksum interface {
	Checksum(v ConstInterval) uint32
}

type checksumer struct {
	ct ChecksumType
}

func (c *checksumer) Checksum(v ConstInterval) uint32 {
	switch c.ct {
	case CRC32Checksum:
		return crc32.ChecksumIEEE(v.window)
	case MurmurChecksum:
		return murmur3.Sum32(v.window)
	default:
		panic("unknown checksum type")
	}
}

func NewChecksumer(ct ChecksumType) IChecksum {
	return &checksumer{
		ct: ct,
	}
}

var _ IChecksum = (*checksumer)(nil)
