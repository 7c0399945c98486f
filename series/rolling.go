package series

import (
	"iter"
)

// UpdateFunc folds one value into an optional accumulator. ok reports whether
// acc holds a value; the returned flag does the same for the result.
type UpdateFunc[V, R any] func(acc R, ok bool, v V) (R, bool)

// RollingIterator applies a reduction to a sliding window of values.
type RollingIterator[K comparable, V, R any] struct {
	src    *TimeSeries[K, V]
	window int
	fn     func(window []V) R
	buf    []V
	pos    int
}

// ApplyRolling returns an iterator emitting fn over each full window of size window.
//
// The first point is emitted at position window-1. fn receives a buffer that
// is reused between steps and must not be retained.
func ApplyRolling[K comparable, V, R any](ts *TimeSeries[K, V], window int, fn func(window []V) R) *RollingIterator[K, V, R] {
	it := &RollingIterator[K, V, R]{src: ts, window: window, fn: fn}
	if window > 0 {
		it.buf = make([]V, 0, window)
		it.pos = window - 1
	} else {
		it.pos = ts.Len()
	}

	return it
}

// Next returns the reduction of the next window.
func (it *RollingIterator[K, V, R]) Next() (DataPoint[K, R], bool) {
	if it.pos >= it.src.Len() {
		return DataPoint[K, R]{}, false
	}

	if len(it.buf) == 0 {
		it.buf = append(it.buf, it.src.values[:it.window]...)
	} else {
		copy(it.buf, it.buf[1:])
		it.buf[it.window-1] = it.src.values[it.pos]
	}

	dp := DataPoint[K, R]{Key: it.src.index.At(it.pos), Value: it.fn(it.buf)}
	it.pos++

	return dp, true
}

// Seq returns the remaining points as a sequence.
func (it *RollingIterator[K, V, R]) Seq() iter.Seq[DataPoint[K, R]] {
	return seqFrom(it.Next)
}

// Collect drains the iterator into a series.
func (it *RollingIterator[K, V, R]) Collect() *TimeSeries[K, R] {
	return collectFrom(it.Next, it.src.index.CompareFunc())
}

// UpdatingRollingIterator maintains a window reduction incrementally.
type UpdatingRollingIterator[K comparable, V, R any] struct {
	src       *TimeSeries[K, V]
	window    int
	update    UpdateFunc[V, R]
	decrement UpdateFunc[V, R]
	acc       R
	ok        bool
	pos       int
}

// ApplyUpdatingRolling returns an iterator that keeps a window reduction up to
// date in O(1) per step instead of re-scanning the window.
//
// The accumulator is seeded by folding update over the first window values,
// starting from an absent accumulator, and emitted at position window-1. Each
// later step applies update with the entering value, then decrement with the
// value leaving the window. Steps where the accumulator is absent are skipped,
// so the output may hold fewer than Len()-window+1 points.
func ApplyUpdatingRolling[K comparable, V, R any](ts *TimeSeries[K, V], window int, update, decrement UpdateFunc[V, R]) *UpdatingRollingIterator[K, V, R] {
	it := &UpdatingRollingIterator[K, V, R]{src: ts, window: window, update: update, decrement: decrement}
	if window > 0 {
		it.pos = window - 1
	} else {
		it.pos = ts.Len()
	}

	return it
}

// Next returns the accumulator after the next step that yields a value.
func (it *UpdatingRollingIterator[K, V, R]) Next() (DataPoint[K, R], bool) {
	values := it.src.values
	for it.pos < len(values) {
		pos := it.pos
		it.pos++

		if pos == it.window-1 {
			for _, v := range values[:it.window] {
				it.acc, it.ok = it.update(it.acc, it.ok, v)
			}
		} else {
			it.acc, it.ok = it.update(it.acc, it.ok, values[pos])
			it.acc, it.ok = it.decrement(it.acc, it.ok, values[pos-it.window])
		}

		if it.ok {
			return DataPoint[K, R]{Key: it.src.index.At(pos), Value: it.acc}, true
		}
	}

	return DataPoint[K, R]{}, false
}

// Seq returns the remaining points as a sequence.
func (it *UpdatingRollingIterator[K, V, R]) Seq() iter.Seq[DataPoint[K, R]] {
	return seqFrom(it.Next)
}

// Collect drains the iterator into a series.
func (it *UpdatingRollingIterator[K, V, R]) Collect() *TimeSeries[K, R] {
	return collectFrom(it.Next, it.src.index.CompareFunc())
}

// SkipApplyIterator pairs values span positions apart.
type SkipApplyIterator[K comparable, V, R any] struct {
	src    *TimeSeries[K, V]
	span   int
	fn     func(prev, cur V) R
	cursor int
	done   bool
}

// SkipApply returns an iterator over period-over-period reductions.
//
// Starting at position 0, it emits fn(value[c], value[c+span]) at key[c+span]
// and moves the cursor c to c+span, so consecutive outputs cover adjacent,
// non-overlapping periods. A span of zero or less yields nothing.
func SkipApply[K comparable, V, R any](ts *TimeSeries[K, V], span int, fn func(prev, cur V) R) *SkipApplyIterator[K, V, R] {
	return &SkipApplyIterator[K, V, R]{src: ts, span: span, fn: fn, done: span <= 0}
}

// Next returns the reduction of the next period.
func (it *SkipApplyIterator[K, V, R]) Next() (DataPoint[K, R], bool) {
	if it.done {
		return DataPoint[K, R]{}, false
	}

	next := it.cursor + it.span
	if next >= it.src.Len() {
		it.done = true
		return DataPoint[K, R]{}, false
	}

	dp := DataPoint[K, R]{
		Key:   it.src.index.At(next),
		Value: it.fn(it.src.values[it.cursor], it.src.values[next]),
	}
	it.cursor = next

	return dp, true
}

// Seq returns the remaining points as a sequence.
func (it *SkipApplyIterator[K, V, R]) Seq() iter.Seq[DataPoint[K, R]] {
	return seqFrom(it.Next)
}

// Collect drains the iterator into a series.
func (it *SkipApplyIterator[K, V, R]) Collect() *TimeSeries[K, R] {
	return collectFrom(it.Next, it.src.index.CompareFunc())
}
