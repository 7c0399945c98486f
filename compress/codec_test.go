package compress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/format"
)

func allCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// deltaKeyPayload mimics a delta-of-delta key column: a full first key
// followed by mostly zero delta-of-deltas.
func deltaKeyPayload(n int) []byte {
	out := []byte{0x80, 0x80, 0xd4, 0xe9, 0x9c, 0xd5, 0xa8, 0x9c, 0x2f, 0x80, 0xa8, 0xd6, 0xb9, 0x07}
	for i := range n {
		if i%50 == 0 {
			out = append(out, 0x02)
			continue
		}
		out = append(out, 0x00)
	}

	return out
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "key")
		require.NoError(t, err)
		require.NotNil(t, codec)

		shared, err := GetCodec(ct)
		require.NoError(t, err)
		require.IsType(t, codec, shared)
	}

	_, err := CreateCodec(format.CompressionType(0), "value")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
	require.Contains(t, err.Error(), "value compression")

	_, err = GetCodec(format.CompressionType(42))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestCompressionStats(t *testing.T) {
	stats := CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	require.Zero(t, CompressionStats{}.CompressionRatio())
}

func TestCompress(t *testing.T) {
	payload := deltaKeyPayload(4096)

	out, stats, err := Compress(format.CompressionS2, payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), stats.OriginalSize)
	require.Equal(t, len(out), stats.CompressedSize)
	require.Less(t, stats.CompressedSize, stats.OriginalSize)

	_, _, err = Compress(format.CompressionType(9), payload)
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range allCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)

			compressed, err = codec.Compress([]byte{})
			require.NoError(t, err)
			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"single byte", []byte{0x42}},
		{"binary", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{"delta keys", deltaKeyPayload(2048)},
		{"repeated floats", bytes.Repeat([]byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, 1024)},
		{"zeros", make([]byte, 1024*1024)},
	}

	for name, codec := range allCodecs() {
		t.Run(name, func(t *testing.T) {
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					compressed, err := codec.Compress(tt.data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tt.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalid := [][]byte{
		{0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("this is not compressed data"),
		{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
	}

	for name, codec := range allCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			for _, data := range invalid {
				_, err := codec.Decompress(data)
				require.Error(t, err)
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := deltaKeyPayload(512)

	for name, codec := range allCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 20)
			for range 20 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}
					out, err := codec.Decompress(compressed)
					if err == nil && !bytes.Equal(out, data) {
						err = errs.ErrPayloadCorrupted
					}
					errCh <- err
				}()
			}
			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestLZ4_LargeExpansionRatio(t *testing.T) {
	// 1MiB of zeros compresses far beyond the initial 4x buffer guess
	data := make([]byte, 1024*1024)
	codec := NewLZ4Compressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed)*4, len(data))

	out, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func BenchmarkCodecs_DeltaKeys(b *testing.B) {
	data := deltaKeyPayload(8192)
	for name, codec := range allCodecs() {
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				compressed, _ := codec.Compress(data)
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
