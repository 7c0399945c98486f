package series

import (
	"cmp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/index"
)

func mustOrdered[V any](t *testing.T, keys []int, values []V) *TimeSeries[int, V] {
	t.Helper()

	ts, err := NewOrdered(keys, values)
	require.NoError(t, err)

	return ts
}

func seconds(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = time.Unix(int64(i), 0).UTC()
	}

	return out
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		keys    []int
		values  []float64
		wantErr error
	}{
		{"valid", []int{1, 2, 3}, []float64{1, 2, 3}, nil},
		{"length mismatch", []int{1, 2, 3, 4, 5}, []float64{1, 2, 3}, errs.ErrLengthMismatch},
		{"duplicate keys", []int{1, 2, 2}, []float64{1, 2, 3}, errs.ErrNotUnique},
		{"not monotonic", []int{1, 3, 2}, []float64{1, 2, 3}, errs.ErrNotMonotonic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewOrdered(tt.keys, tt.values)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, ts)

				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tt.keys), ts.Len())
		})
	}
}

func TestNew_ErrorDetail(t *testing.T) {
	_, err := NewOrdered([]int{1, 2, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrNotUnique)
	require.EqualError(t, err, "index is not unique: key 2 at position 2 repeats an earlier key")

	_, err = NewOrdered([]int{1, 3, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrNotMonotonic)
	require.EqualError(t, err, "index is not monotonic: key 2 at position 2 does not follow 3")
}

func TestNewMinimalChecks(t *testing.T) {
	ts, err := NewMinimalChecks(index.NewOrdered([]int{3, 1, 1}), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, 3, ts.Len())

	_, err = NewMinimalChecks(index.NewOrdered([]int{1}), []string{"a", "b"})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestNewTime(t *testing.T) {
	ts, err := NewTime(seconds(5), []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, 5, ts.Len())

	v, ok := ts.Get(time.Unix(3, 0).UTC())
	require.True(t, ok)
	require.Equal(t, 4.0, v)
}

func TestFromDataPoints_Sorts(t *testing.T) {
	points := []DataPoint[int, float64]{
		NewDataPoint(3, 3.0),
		NewDataPoint(1, 1.0),
		NewDataPoint(2, 2.0),
	}

	ts, err := FromDataPoints(points, cmp.Compare[int])
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, ts.Index().Values())
	require.Equal(t, []float64{1, 2, 3}, ts.Values())

	// input is not reordered in place
	require.Equal(t, 3, points[0].Key)

	_, err = FromDataPoints(append(points, NewDataPoint(2, 9.0)), cmp.Compare[int])
	require.ErrorIs(t, err, errs.ErrNotUnique)
}

func TestFromDataPointsUnchecked_KeepsOrder(t *testing.T) {
	ts := FromDataPointsUnchecked([]DataPoint[int, int]{{2, 20}, {1, 10}}, cmp.Compare[int])
	require.Equal(t, []int{2, 1}, ts.Index().Values())
	require.False(t, ts.Index().IsMonotonic())
}

func TestAt(t *testing.T) {
	ts := mustOrdered(t, []int{10, 20}, []string{"a", "b"})

	dp, ok := ts.At(1)
	require.True(t, ok)
	require.Equal(t, DataPoint[int, string]{Key: 20, Value: "b"}, dp)

	_, ok = ts.At(2)
	require.False(t, ok)
	_, ok = ts.At(-1)
	require.False(t, ok)
}

func TestGet(t *testing.T) {
	ts := mustOrdered(t, []int{1, 3, 5}, []float64{1, 3, 5})

	v, ok := ts.Get(3)
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	_, ok = ts.Get(4)
	require.False(t, ok)
}

func TestAtOrFirstPrior(t *testing.T) {
	ts := mustOrdered(t, []int{10, 20, 30}, []string{"a", "b", "c"})

	tests := []struct {
		key  int
		want string
		ok   bool
	}{
		{5, "", false},
		{10, "a", true},
		{15, "a", true},
		{29, "b", true},
		{30, "c", true},
		{31, "", false},
	}
	for _, tt := range tests {
		v, ok := ts.AtOrFirstPrior(tt.key)
		require.Equal(t, tt.ok, ok, "key %d", tt.key)
		require.Equal(t, tt.want, v, "key %d", tt.key)
	}

	_, ok := Empty[int, string](cmp.Compare[int]).AtOrFirstPrior(1)
	require.False(t, ok)
}

func TestBetween(t *testing.T) {
	keys := []time.Time{}
	for i := range 5 {
		keys = append(keys, time.Unix(int64(60*i), 0).UTC())
	}
	ts, err := NewTime(keys, []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	res := ts.Between(time.Unix(120, 0).UTC(), time.Unix(240, 0).UTC())
	require.Equal(t, 3, res.Len())
	require.Equal(t, []float64{3, 4, 5}, res.Values())

	require.True(t, ts.Between(time.Unix(1000, 0).UTC(), time.Unix(2000, 0).UTC()).IsEmpty())
}

func TestInterweave(t *testing.T) {
	a := mustOrdered(t, []int{1, 3, 5, 7}, []int{10, 30, 50, 70})
	b := mustOrdered(t, []int{2, 3, 6}, []int{20, 300, 60})

	preferRight := func(_, right DataPoint[int, int]) DataPoint[int, int] { return right }

	res := a.Interweave(b, preferRight)
	require.Equal(t, []int{1, 2, 3, 5, 6, 7}, res.Index().Values())
	require.Equal(t, []int{10, 20, 300, 50, 60, 70}, res.Values())
	require.True(t, res.Index().IsMonotonic())

	sum := func(left, right DataPoint[int, int]) DataPoint[int, int] {
		return NewDataPoint(left.Key, left.Value+right.Value)
	}
	res = a.Interweave(b, sum)
	v, ok := res.Get(3)
	require.True(t, ok)
	require.Equal(t, 330, v)
}

func TestString(t *testing.T) {
	short := mustOrdered(t, []int{1, 2}, []float64{1.5, 2.5})
	require.Equal(t, "(1, 1.5)\n(2, 2.5)\n", short.String())

	keys := make([]int, 12)
	values := make([]int, 12)
	for i := range keys {
		keys[i] = i
		values[i] = i * 10
	}
	long := mustOrdered(t, keys, values)
	lines := strings.Split(strings.TrimSuffix(long.String(), "\n"), "\n")
	require.Len(t, lines, 11)
	require.Equal(t, "(0, 0)", lines[0])
	require.Equal(t, "...", lines[5])
	require.Equal(t, "(11, 110)", lines[10])
}

func TestEqual(t *testing.T) {
	a := mustOrdered(t, []int{1, 2}, []int{1, 2})
	b := mustOrdered(t, []int{1, 2}, []int{1, 2})
	c := mustOrdered(t, []int{1, 2}, []int{1, 3})

	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c))
	require.False(t, Equal(a, mustOrdered(t, []int{1}, []int{1})))
}

func TestMap(t *testing.T) {
	ts := mustOrdered(t, []int{1, 2, 3}, []float64{1, 2, 3})

	doubled := Map(ts, func(v float64) float64 { return v * 2 })
	require.Equal(t, []float64{2, 4, 6}, doubled.Values())
	require.Equal(t, ts.Index().Values(), doubled.Index().Values())

	labelled := MapWithKey(ts, func(k int, v float64) string {
		return strings.Repeat("x", k)
	})
	require.Equal(t, []string{"x", "xx", "xxx"}, labelled.Values())
}
