package series

import (
	"github.com/google/btree"

	"github.com/arloliu/tsx/index"
)

// bucketTreeDegree is the B-tree degree used by ResampleAndAggUnordered.
const bucketTreeDegree = 16

// Map applies fn to every value, keeping the keys.
func Map[K comparable, V, R any](ts *TimeSeries[K, V], fn func(V) R) *TimeSeries[K, R] {
	out := make([]R, len(ts.values))
	for i, v := range ts.values {
		out[i] = fn(v)
	}

	return NewUnchecked(ts.index, out)
}

// MapWithKey applies fn to every key/value pair, keeping the keys.
func MapWithKey[K comparable, V, R any](ts *TimeSeries[K, V], fn func(K, V) R) *TimeSeries[K, R] {
	out := make([]R, len(ts.values))
	for i, v := range ts.values {
		out[i] = fn(ts.index.At(i), v)
	}

	return NewUnchecked(ts.index, out)
}

// ResampleAndAgg groups consecutive points sharing a bucket key and reduces each group.
//
// bucket maps a key and size to the bucket key, typically one of the timeutil
// rounding functions. agg receives the points of one bucket in series order.
//
// The series must be in ascending key order: only adjacent points with equal
// bucket keys are grouped, so unordered input silently yields fragmented
// buckets. This is not checked. Use ResampleAndAggUnordered when the order is
// not guaranteed.
func ResampleAndAgg[K comparable, V, D, R any](ts *TimeSeries[K, V], size D, bucket func(key K, size D) K, agg func(group []DataPoint[K, V]) R) *TimeSeries[K, R] {
	var (
		keys   []K
		values []R
		group  []DataPoint[K, V]
		cur    K
	)

	flush := func() {
		if len(group) == 0 {
			return
		}
		keys = append(keys, cur)
		values = append(values, agg(group))
		group = nil
	}

	for i, v := range ts.values {
		k := ts.index.At(i)
		b := bucket(k, size)
		if len(group) > 0 && ts.index.Compare(b, cur) != 0 {
			flush()
		}
		cur = b
		group = append(group, DataPoint[K, V]{Key: k, Value: v})
	}
	flush()

	if keys == nil {
		return Empty[K, R](ts.index.CompareFunc())
	}

	return NewUnchecked(index.New(keys, ts.index.CompareFunc()), values)
}

type bucketGroup[K comparable, V any] struct {
	key    K
	points []DataPoint[K, V]
}

// ResampleAndAggUnordered groups every point by bucket key regardless of
// position and reduces each group.
//
// Groups are kept in a B-tree ordered by bucket key, so the result is in
// ascending order even for unordered input. Points inside a group keep their
// series order. It costs O(n log b) for b buckets, against O(n) for
// ResampleAndAgg.
func ResampleAndAggUnordered[K comparable, V, D, R any](ts *TimeSeries[K, V], size D, bucket func(key K, size D) K, agg func(group []DataPoint[K, V]) R) *TimeSeries[K, R] {
	compare := ts.index.CompareFunc()
	tree := btree.NewG(bucketTreeDegree, func(a, b *bucketGroup[K, V]) bool {
		return compare(a.key, b.key) < 0
	})

	for i, v := range ts.values {
		k := ts.index.At(i)
		dp := DataPoint[K, V]{Key: k, Value: v}

		probe := &bucketGroup[K, V]{key: bucket(k, size)}
		if g, ok := tree.Get(probe); ok {
			g.points = append(g.points, dp)
			continue
		}
		probe.points = []DataPoint[K, V]{dp}
		tree.ReplaceOrInsert(probe)
	}

	keys := make([]K, 0, tree.Len())
	values := make([]R, 0, tree.Len())
	tree.Ascend(func(g *bucketGroup[K, V]) bool {
		keys = append(keys, g.key)
		values = append(values, agg(g.points))

		return true
	})

	return NewUnchecked(index.New(keys, compare), values)
}
