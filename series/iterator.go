package series

import (
	"iter"

	"github.com/arloliu/tsx/index"
)

// PointIterator is a single-pass source of data points.
//
// Next returns the next point, or false once the iterator is exhausted. An
// exhausted iterator stays exhausted.
type PointIterator[K comparable, V any] interface {
	Next() (DataPoint[K, V], bool)
}

// Drain adapts any PointIterator to an iter.Seq.
func Drain[K comparable, V any](it PointIterator[K, V]) iter.Seq[DataPoint[K, V]] {
	return seqFrom(it.Next)
}

func seqFrom[K comparable, V any](next func() (DataPoint[K, V], bool)) iter.Seq[DataPoint[K, V]] {
	return func(yield func(DataPoint[K, V]) bool) {
		for {
			dp, ok := next()
			if !ok || !yield(dp) {
				return
			}
		}
	}
}

func collectFrom[K comparable, V any](next func() (DataPoint[K, V], bool), compare index.CompareFunc[K]) *TimeSeries[K, V] {
	return CollectUnchecked(seqFrom(next), compare)
}

// Iterator walks a series in storage order without any ordering checks.
type Iterator[K comparable, V any] struct {
	src *TimeSeries[K, V]
	pos int
}

var _ PointIterator[int, int] = (*Iterator[int, int])(nil)

// Next returns the next point.
func (it *Iterator[K, V]) Next() (DataPoint[K, V], bool) {
	dp, ok := it.src.At(it.pos)
	if ok {
		it.pos++
	}

	return dp, ok
}

// Seq returns the remaining points as a sequence.
func (it *Iterator[K, V]) Seq() iter.Seq[DataPoint[K, V]] {
	return seqFrom(it.Next)
}

// Collect drains the iterator into a series.
func (it *Iterator[K, V]) Collect() *TimeSeries[K, V] {
	return collectFrom(it.Next, it.src.index.CompareFunc())
}

// OrderedIterator walks a series in storage order and terminates permanently
// at the first key strictly smaller than the last emitted key. Remaining
// points are never emitted, even if they are individually in order.
type OrderedIterator[K comparable, V any] struct {
	src     *TimeSeries[K, V]
	pos     int
	last    K
	started bool
	done    bool
}

var _ PointIterator[int, int] = (*OrderedIterator[int, int])(nil)

// Next returns the next point, or false once the series is exhausted or out of order.
func (it *OrderedIterator[K, V]) Next() (DataPoint[K, V], bool) {
	if it.done {
		return DataPoint[K, V]{}, false
	}

	dp, ok := it.src.At(it.pos)
	if !ok || (it.started && it.src.index.Compare(dp.Key, it.last) < 0) {
		it.done = true
		return DataPoint[K, V]{}, false
	}

	it.pos++
	it.last = dp.Key
	it.started = true

	return dp, true
}

// Seq returns the remaining points as a sequence.
func (it *OrderedIterator[K, V]) Seq() iter.Seq[DataPoint[K, V]] {
	return seqFrom(it.Next)
}

// Collect drains the iterator into a series.
func (it *OrderedIterator[K, V]) Collect() *TimeSeries[K, V] {
	return collectFrom(it.Next, it.src.index.CompareFunc())
}

// ShiftIterator pairs keys with values displaced by a fixed number of positions.
// See TimeSeries.Shift.
type ShiftIterator[K comparable, V any] struct {
	src         *TimeSeries[K, V]
	pos         int
	keyOffset   int
	valueOffset int
	done        bool
}

var _ PointIterator[int, int] = (*ShiftIterator[int, int])(nil)

// Next returns the next shifted point.
func (it *ShiftIterator[K, V]) Next() (DataPoint[K, V], bool) {
	if it.done {
		return DataPoint[K, V]{}, false
	}

	n := it.src.Len()
	keyPos, valuePos := it.pos+it.keyOffset, it.pos+it.valueOffset
	if keyPos >= n || valuePos >= n {
		it.done = true
		return DataPoint[K, V]{}, false
	}
	it.pos++

	return DataPoint[K, V]{Key: it.src.index.At(keyPos), Value: it.src.values[valuePos]}, true
}

// Seq returns the remaining points as a sequence.
func (it *ShiftIterator[K, V]) Seq() iter.Seq[DataPoint[K, V]] {
	return seqFrom(it.Next)
}

// Collect drains the iterator into a series.
func (it *ShiftIterator[K, V]) Collect() *TimeSeries[K, V] {
	return collectFrom(it.Next, it.src.index.CompareFunc())
}
