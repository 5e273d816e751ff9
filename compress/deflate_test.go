package compress

import (
	"bytes"
	stdflate "compress/flate"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"github.com/josekit/josezip/errs"
)

// makePayload creates deterministic semi-compressible test data, simulating a
// typical JSON-ish message payload: runs of repeated text mixed with varying
// bytes so deflate neither trivially collapses nor fully expands it.
func makePayload(size int) []byte {
	data := make([]byte, size)
	pattern := []byte(`{"iss":"https://issuer.example.com","sub":"user-`)
	for i := range data {
		if i%3 == 0 {
			data[i] = byte((i*31 + i/7) % 256)
		} else {
			data[i] = pattern[i%len(pattern)]
		}
	}

	return data
}

func TestDeflateCodec_HelloWorld(t *testing.T) {
	codec := NewDeflateCodec()

	packed, err := codec.Compress([]byte("hello world"))
	require.NoError(t, err)
	require.NotEmpty(t, packed)

	original, err := codec.Decompress(packed)
	require.NoError(t, err)
	require.Equal(t, []byte("hello world"), original)
}

func TestDeflateCodec_RoundTripBoundarySizes(t *testing.T) {
	// Exercises the scratch-buffer floor (0, 1, 63), the exact buffer-size
	// boundaries (64, 65536), and multi-iteration draining (65537, 10x65536).
	sizes := []int{0, 1, 63, 64, 65536, 65537, 10 * 65536}

	codec := NewDeflateCodec()

	for _, size := range sizes {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			payload := makePayload(size)

			packed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.NotEmpty(t, packed) // even empty input yields stream framing

			original, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.Len(t, original, size)
			require.Equal(t, xxhash.Sum64(payload), xxhash.Sum64(original))
		})
	}
}

func TestDeflateCodec_EmptyInputAsymmetry(t *testing.T) {
	codec := NewDeflateCodec()

	// Compressing empty input succeeds and round-trips to empty.
	packed, err := codec.Compress(nil)
	require.NoError(t, err)
	require.NotEmpty(t, packed)

	original, err := codec.Decompress(packed)
	require.NoError(t, err)
	require.Empty(t, original)

	// Decompressing empty input is a precondition failure, never an empty
	// success.
	_, err = codec.Decompress(nil)
	require.ErrorIs(t, err, errs.ErrDecompressionFailed)

	_, err = codec.Decompress([]byte{})
	require.ErrorIs(t, err, errs.ErrDecompressionFailed)
}

func TestDeflateCodec_Determinism(t *testing.T) {
	codec := NewDeflateCodec()
	payload := makePayload(8192)

	first, err := codec.Compress(payload)
	require.NoError(t, err)
	second, err := codec.Compress(payload)
	require.NoError(t, err)

	// Deflate encoding is not canonical, so the compressed bytes are not
	// required to match; both must round-trip to the original.
	for _, packed := range [][]byte{first, second} {
		original, err := codec.Decompress(packed)
		require.NoError(t, err)
		require.Equal(t, payload, original)
	}
}

func TestDeflateCodec_MalformedInput(t *testing.T) {
	codec := NewDeflateCodec()

	t.Run("non-deflate bytes", func(t *testing.T) {
		// 0xFF opens a block with the reserved BTYPE, invalid in any stream.
		junk := bytes.Repeat([]byte{0xFF}, 32)

		out, err := codec.Decompress(junk)
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
		require.Nil(t, out)
	})

	t.Run("truncated stream", func(t *testing.T) {
		packed, err := codec.Compress(makePayload(4096))
		require.NoError(t, err)

		out, err := codec.Decompress(packed[:len(packed)/2])
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
		require.Nil(t, out)
	})

	t.Run("zlib framed stream rejected as raw deflate", func(t *testing.T) {
		// A zlib stream starts with the CMF/FLG bytes 0x78 0x9C. Read as raw
		// deflate they open a stored block whose length check cannot pass, so
		// the wrapper must not be silently accepted.
		framed := []byte{0x78, 0x9C, 0x00, 0x01, 0x00, 0xFE, 0xFF, 0x61}

		out, err := codec.Decompress(framed)
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
		require.Nil(t, out)
	})
}

func TestDeflateCodec_InputNotMutated(t *testing.T) {
	codec := NewDeflateCodec()

	payload := makePayload(1024)
	snapshot := append([]byte(nil), payload...)

	packed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, snapshot, payload)

	packedSnapshot := append([]byte(nil), packed...)
	_, err = codec.Decompress(packed)
	require.NoError(t, err)
	require.Equal(t, packedSnapshot, packed)
}

func TestDeflateCodec_WireFormatInterop(t *testing.T) {
	codec := NewDeflateCodec()
	payload := makePayload(70000)

	t.Run("our output under reference decoder", func(t *testing.T) {
		packed, err := codec.Compress(payload)
		require.NoError(t, err)

		fr := stdflate.NewReader(bytes.NewReader(packed))
		defer fr.Close()

		original, err := io.ReadAll(fr)
		require.NoError(t, err)
		require.Equal(t, payload, original)
	})

	t.Run("reference encoder output under our decoder", func(t *testing.T) {
		var buf bytes.Buffer
		fw, err := stdflate.NewWriter(&buf, stdflate.DefaultCompression)
		require.NoError(t, err)
		_, err = fw.Write(payload)
		require.NoError(t, err)
		require.NoError(t, fw.Close())

		original, err := codec.Decompress(buf.Bytes())
		require.NoError(t, err)
		require.Equal(t, payload, original)
	})
}

func TestDeflateCodec_Concurrency(t *testing.T) {
	const workers = 16

	codec := NewDeflateCodec()

	var wg sync.WaitGroup
	failures := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			// Distinct size and content per goroutine so interference would
			// surface as a digest mismatch.
			payload := makePayload(4096 + id*1031)
			payload[0] = byte(id)

			packed, err := codec.Compress(payload)
			if err != nil {
				failures <- fmt.Errorf("worker %d compress: %w", id, err)
				return
			}

			original, err := codec.Decompress(packed)
			if err != nil {
				failures <- fmt.Errorf("worker %d decompress: %w", id, err)
				return
			}

			if xxhash.Sum64(original) != xxhash.Sum64(payload) {
				failures <- fmt.Errorf("worker %d round-trip mismatch", id)
			}
		}(i)
	}

	wg.Wait()
	close(failures)

	for err := range failures {
		require.NoError(t, err)
	}
}

func TestScratchSize(t *testing.T) {
	tests := []struct {
		inputLen int
		expected int
	}{
		{inputLen: 0, expected: 64},
		{inputLen: 1, expected: 64},
		{inputLen: 63, expected: 64},
		{inputLen: 64, expected: 64},
		{inputLen: 65, expected: 65},
		{inputLen: 65536, expected: 65536},
		{inputLen: 65537, expected: 65536},
		{inputLen: 10 * 65536, expected: 65536},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("input_%d", tt.inputLen), func(t *testing.T) {
			require.Equal(t, tt.expected, scratchSize(tt.inputLen))
		})
	}
}

func TestRun_InvalidDirection(t *testing.T) {
	out, err := run(0, []byte("payload"))
	require.Error(t, err)
	require.Nil(t, out)
}
