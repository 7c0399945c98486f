package tsx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/format"
	"github.com/arloliu/tsx/join"
	"github.com/arloliu/tsx/series"
	"github.com/arloliu/tsx/tsio"
)

func minutes(n int) []time.Time {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * time.Minute)
	}

	return out
}

func TestNewSeries(t *testing.T) {
	ts, err := NewSeries([]int{1, 2, 3}, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, 3, ts.Len())

	_, err = NewSeries([]int{2, 1}, []string{"a", "b"})
	require.ErrorIs(t, err, errs.ErrNotMonotonic)
}

func TestNewEngine_HashJoin(t *testing.T) {
	a, err := NewTimeSeries(minutes(4), []float64{1, 2, 3, 4})
	require.NoError(t, err)

	engine, err := NewEngine[time.Time](join.WithHashPrecompare(true))
	require.NoError(t, err)
	require.True(t, engine.HashPrecompare())

	diff := series.CrossApplyInnerHash(engine, a, a, func(x, y float64) float64 { return x - y })
	require.Equal(t, []float64{0, 0, 0, 0}, diff.Values())
}

func TestInnerJoinAll(t *testing.T) {
	a, _ := NewSeries([]int{1, 2, 3}, []int{1, 2, 3})
	b, _ := NewSeries([]int{2, 3}, []int{20, 30})

	res := InnerJoinAll(a, b)
	require.Equal(t, [][]int{{2, 20}, {3, 30}}, res.Values())
}

func TestBlobRoundTrip(t *testing.T) {
	ts, err := NewTimeSeries(minutes(60), make([]float64, 60))
	require.NoError(t, err)

	encoder, err := NewBlobEncoder(tsio.WithSeriesName("mem.free"))
	require.NoError(t, err)
	data, err := encoder.Encode(ts)
	require.NoError(t, err)

	h, err := tsio.ReadBlobHeader(data)
	require.NoError(t, err)
	require.Equal(t, format.TypeDelta, h.KeyEncoding)
	require.Equal(t, format.CompressionZstd, h.ValueCompression)
	require.Equal(t, SeriesID("mem.free"), h.SeriesID)

	decoded, err := DecodeBlob(data)
	require.NoError(t, err)
	require.True(t, series.Equal(ts, decoded))
}

func TestNewBlobEncoderFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("blob:\n  valueCompression: s2\nlog:\n  level: error\n"), 0o600))

	encoder, err := NewBlobEncoderFromConfig(path)
	require.NoError(t, err)

	ts, _ := NewTimeSeries(minutes(3), []float64{1, 2, 3})
	data, err := encoder.Encode(ts)
	require.NoError(t, err)

	h, err := tsio.ReadBlobHeader(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, h.ValueCompression)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("blob:\n  valueCompression: rar\n"), 0o600))
	_, err = NewBlobEncoderFromConfig(bad)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestSeriesID(t *testing.T) {
	require.Equal(t, SeriesID("cpu"), SeriesID("cpu"))
	require.NotEqual(t, SeriesID("cpu"), SeriesID("mem"))
}
