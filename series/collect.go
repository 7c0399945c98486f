package series

import (
	"iter"
	"slices"

	"github.com/arloliu/tsx/index"
)

// FromDataPoints sorts points by key and builds a validated series.
//
// Sorting is stable, so duplicate keys keep their input order before
// validation rejects them.
func FromDataPoints[K comparable, V any](points []DataPoint[K, V], compare index.CompareFunc[K]) (*TimeSeries[K, V], error) {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b DataPoint[K, V]) int {
		return compare(a.Key, b.Key)
	})

	keys, values := unzip(sorted)

	return New(index.New(keys, compare), values)
}

// FromDataPointsUnchecked builds a series from points in their given order, without validation.
func FromDataPointsUnchecked[K comparable, V any](points []DataPoint[K, V], compare index.CompareFunc[K]) *TimeSeries[K, V] {
	keys, values := unzip(points)

	return NewUnchecked(index.New(keys, compare), values)
}

// Collect drains seq and builds a validated series, sorting points by key first.
func Collect[K comparable, V any](seq iter.Seq[DataPoint[K, V]], compare index.CompareFunc[K]) (*TimeSeries[K, V], error) {
	return FromDataPoints(slices.Collect(seq), compare)
}

// CollectUnchecked drains seq into a series in arrival order, without validation.
//
// This is the ingestion path: the producer is responsible for supplying points
// in ascending, unique key order.
func CollectUnchecked[K comparable, V any](seq iter.Seq[DataPoint[K, V]], compare index.CompareFunc[K]) *TimeSeries[K, V] {
	var (
		keys   []K
		values []V
	)
	for dp := range seq {
		keys = append(keys, dp.Key)
		values = append(values, dp.Value)
	}

	if keys == nil {
		return Empty[K, V](compare)
	}

	return NewUnchecked(index.New(keys, compare), values)
}

func unzip[K comparable, V any](points []DataPoint[K, V]) ([]K, []V) {
	keys := make([]K, len(points))
	values := make([]V, len(points))
	for i, dp := range points {
		keys[i] = dp.Key
		values[i] = dp.Value
	}

	return keys, values
}
