//go:build functional_tests

package functional

import (
	"testing"

	go_buffer "github.com/datnguyenzzz/nogodb/lib/go-buffer"
	"github.com/datnguyenzzz/nogodb/lib/go-buffer/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const (
	kB = 1024
	mB = kB * 1024
)

type BufferSuite struct {
	suite.Suite
}

func (s *BufferSuite) Test_Payload_Staging_Pipeline() {
	type param struct {
		name        string
		ct          compression.CompressionType
		payloadSize int
		quota       int // 0 means no quota
	}

	tests := []param{
		{
			name:        "small payload, no compression",
			ct:          compression.NoCompression,
			payloadSize: 2 * kB,
		},
		{
			name:        "small payload, snappy",
			ct:          compression.SnappyCompression,
			payloadSize: 2 * kB,
		},
		{
			name:        "medium payload, snappy, quota bounded",
			ct:          compression.SnappyCompression,
			payloadSize: 256 * kB,
			quota:       4 * mB,
		},
		{
			name:        "large payload, zstd, quota bounded",
			ct:          compression.ZstdCompression,
			payloadSize: 4 * mB,
			quota:       32 * mB,
		},
	}

	t := s.T()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := generateTextPayload(tc.payloadSize)

			pool := go_buffer.NewPooledAllocator()
			alloc := go_buffer.IAllocator(pool)
			var quota go_buffer.IManagedAllocator
			if tc.quota > 0 {
				quota = go_buffer.NewQuotaAllocator(tc.quota, pool)
				alloc = quota
			}
			opt := go_buffer.WithAllocator(alloc)

			src, err := go_buffer.NewFrom(len(payload), go_buffer.MakeConstInterval(payload), opt)
			require.NoError(t, err)

			cs := go_buffer.NewChecksumer(go_buffer.CRC32Checksum)
			sourceSum := cs.Checksum(go_buffer.MakeConstInterval(src.Bytes()[:len(payload)]))

			compressor := compression.NewCompressor(tc.ct)
			staged, compressedLen, err := compression.Stage(compressor, go_buffer.MakeConstInterval(src.Bytes()[:len(payload)]), opt)
			require.NoError(t, err)
			src.Release()

			// hand the staged payload through a transfer chain before
			// restoring it
			carried := staged.Move()
			var slot go_buffer.Buffer
			slot.MoveFrom(carried)
			require.True(t, staged.Empty())
			require.True(t, carried.Empty())

			restored, n, err := compression.Unstage(compressor, go_buffer.MakeConstInterval(slot.Bytes()[:compressedLen]), opt)
			require.NoError(t, err)
			require.Equal(t, len(payload), n)
			slot.Release()

			assert.Equal(t, sourceSum, cs.Checksum(go_buffer.MakeConstInterval(restored.Bytes()[:n])))
			assert.Equal(t, payload, restored.Bytes()[:n])
			restored.Release()

			assert.Zero(t, pool.GetInUsed(), "every block went back to its pool")
			if quota != nil {
				assert.Zero(t, quota.GetInUsed(), "the quota fully drained")
			}
		})
	}
}

func (s *BufferSuite) Test_Concurrent_Buffer_Churn() {
	t := s.T()

	pool := go_buffer.NewPooledAllocator()
	cs := go_buffer.NewChecksumer(go_buffer.MurmurChecksum)

	const (
		workers   = 8
		perWorker = 100
	)

	eg := errgroup.Group{}
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			for i := 0; i < perWorker; i++ {
				payload := generateBytes(1*kB + i)
				before := cs.Checksum(go_buffer.MakeConstInterval(payload))

				b, err := go_buffer.NewFrom(len(payload), go_buffer.MakeConstInterval(payload), go_buffer.WithAllocator(pool))
				if err != nil {
					return err
				}

				// shuffle ownership around before letting go
				moved := b.Move()
				var parked go_buffer.Buffer
				parked.MoveFrom(moved)
				b.MoveFrom(&parked)

				after := cs.Checksum(go_buffer.MakeConstInterval(b.Bytes()[:len(payload)]))
				assert.Equal(t, before, after)

				b.Release()
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	assert.Zero(t, pool.GetInUsed())
}

func (s *BufferSuite) Test_Quota_Starvation_Recovers() {
	t := s.T()

	q := go_buffer.NewQuotaAllocator(64*kB, go_buffer.NewPooledAllocator())

	// hold three 16 kB buffers, a fourth 32 kB one must bounce
	held := make([]*go_buffer.Buffer, 0, 3)
	for i := 0; i < 3; i++ {
		b, err := go_buffer.New(16*kB, go_buffer.WithAllocator(q))
		require.NoError(t, err)
		held = append(held, b)
	}
	require.Equal(t, int64(48*kB), q.GetInUsed())

	_, err := go_buffer.New(32*kB, go_buffer.WithAllocator(q))
	require.ErrorIs(t, err, go_buffer.ErrAllocationFailure)

	held[0].Release()
	recovered, err := go_buffer.New(32*kB, go_buffer.WithAllocator(q))
	require.NoError(t, err)

	recovered.Release()
	for _, b := range held[1:] {
		b.Release()
	}
	assert.Zero(t, q.GetInUsed())
}

func TestBufferSuite(t *testing.T) {
	suite.Run(t, new(BufferSuite))
}
