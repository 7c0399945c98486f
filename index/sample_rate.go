package index

import (
	"cmp"
	"slices"
	"time"
)

// Number is the set of numeric key types whose differences can be computed
// with the minus operator.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// SampleRate is one entry of a sample rate histogram: the number of adjacent
// key pairs observed with the given interval.
type SampleRate[D any] struct {
	Count    int
	Interval D
}

// SampleRatesFunc computes the histogram of intervals between adjacent keys.
//
// The diff function returns the interval from prev to next. The result is
// ranked by descending count; ties are broken by descending interval, so the
// output is deterministic.
//
// Example: keys at 0, 5, 10, 15, 20, 25 and 75 ms yield [(5, 5ms), (1, 50ms)].
func SampleRatesFunc[K comparable, D cmp.Ordered](idx *Index[K], diff func(prev, next K) D) []SampleRate[D] {
	if idx.Len() < 2 {
		return nil
	}

	counts := make(map[D]int)
	values := idx.Values()
	for i := 1; i < len(values); i++ {
		counts[diff(values[i-1], values[i])]++
	}

	rates := make([]SampleRate[D], 0, len(counts))
	for interval, count := range counts {
		rates = append(rates, SampleRate[D]{Count: count, Interval: interval})
	}

	slices.SortFunc(rates, func(a, b SampleRate[D]) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(b.Interval, a.Interval)
	})

	return rates
}

// SampleRates computes the interval histogram of a numeric index.
func SampleRates[K Number](idx *Index[K]) []SampleRate[K] {
	return SampleRatesFunc(idx, func(prev, next K) K { return next - prev })
}

// TimeSampleRates computes the interval histogram of a time index.
func TimeSampleRates(idx *Index[time.Time]) []SampleRate[time.Duration] {
	return SampleRatesFunc(idx, func(prev, next time.Time) time.Duration { return next.Sub(prev) })
}

// IsMonoIntervaled reports whether a histogram holds exactly one interval.
func IsMonoIntervaled[D any](rates []SampleRate[D]) bool {
	return len(rates) == 1
}

// IsMonoIntervaledTime reports whether a time index is sampled at a single interval.
func IsMonoIntervaledTime(idx *Index[time.Time]) bool {
	return IsMonoIntervaled(TimeSampleRates(idx))
}
