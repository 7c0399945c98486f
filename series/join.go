package series

import (
	"github.com/arloliu/tsx/index"
	"github.com/arloliu/tsx/join"
)

// CrossApplyInner merge-joins two ascending series and emits fn(left, right)
// at every shared key.
func CrossApplyInner[K comparable, V, V2, R any](ts *TimeSeries[K, V], other *TimeSeries[K, V2], fn func(V, V2) R) *TimeSeries[K, R] {
	pairs := join.DefaultEngine[K]().MergeInner(ts.index, other.index)

	return applyPairs(ts, other, pairs, fn)
}

// CrossApplyInnerHash is CrossApplyInner using the hash join of e. It does not
// require ordered input; the result follows the longer series' order.
func CrossApplyInnerHash[K comparable, V, V2, R any](e *join.Engine[K], ts *TimeSeries[K, V], other *TimeSeries[K, V2], fn func(V, V2) R) *TimeSeries[K, R] {
	return applyPairs(ts, other, e.HashInner(ts.index, other.index), fn)
}

// CrossApplyLeft merge-joins two ascending series and emits fn at every key of
// ts. ok reports whether other holds the key; when false, right is the zero value.
func CrossApplyLeft[K comparable, V, V2, R any](ts *TimeSeries[K, V], other *TimeSeries[K, V2], fn func(left V, right V2, ok bool) R) *TimeSeries[K, R] {
	pairs := join.DefaultEngine[K]().MergeLeft(ts.index, other.index)

	return applyLeftPairs(ts, other, pairs, fn)
}

// MergeApplyAsof as-of joins two ascending series and emits fn at every key of ts.
//
// cmp and mode select the matching key of other, see join.Engine.MergeAsof.
// Passing a comparator with join.NoRoll panics.
func MergeApplyAsof[K comparable, V, V2, R any](ts *TimeSeries[K, V], other *TimeSeries[K, V2], cmp join.Comparator[K], fn func(left V, right V2, ok bool) R, mode join.RollMode) *TimeSeries[K, R] {
	return MergeApplyAsofWith(join.DefaultEngine[K](), ts, other, cmp, fn, mode)
}

// MergeApplyAsofWith is MergeApplyAsof using engine e.
func MergeApplyAsofWith[K comparable, V, V2, R any](e *join.Engine[K], ts *TimeSeries[K, V], other *TimeSeries[K, V2], cmp join.Comparator[K], fn func(left V, right V2, ok bool) R, mode join.RollMode) *TimeSeries[K, R] {
	pairs := e.MergeAsof(ts.index, other.index, cmp, mode)

	return applyLeftPairs(ts, other, pairs, fn)
}

// InnerJoinAll inner-joins any number of series on their shared keys.
//
// The join is a left fold of CrossApplyInner: every row starts as a
// one-element slice holding the value of first, and each further series
// appends one element, so rows hold 1+len(rest) values in argument order.
func InnerJoinAll[K comparable, V any](first *TimeSeries[K, V], rest ...*TimeSeries[K, V]) *TimeSeries[K, []V] {
	acc := Map(first, func(v V) []V { return []V{v} })

	for _, other := range rest {
		acc = CrossApplyInner(acc, other, func(row []V, v V) []V {
			next := make([]V, len(row), len(row)+1)
			copy(next, row)

			return append(next, v)
		})
	}

	return acc
}

func applyPairs[K comparable, V, V2, R any](ts *TimeSeries[K, V], other *TimeSeries[K, V2], pairs []join.Pair, fn func(V, V2) R) *TimeSeries[K, R] {
	keys := make([]K, len(pairs))
	values := make([]R, len(pairs))
	for i, p := range pairs {
		keys[i] = ts.index.At(p.This)
		values[i] = fn(ts.values[p.This], other.values[p.Other])
	}

	return NewUnchecked(index.New(keys, ts.index.CompareFunc()), values)
}

func applyLeftPairs[K comparable, V, V2, R any](ts *TimeSeries[K, V], other *TimeSeries[K, V2], pairs []join.LeftPair, fn func(V, V2, bool) R) *TimeSeries[K, R] {
	keys := make([]K, len(pairs))
	values := make([]R, len(pairs))
	for i, p := range pairs {
		var right V2
		if p.Matched {
			right = other.values[p.Other]
		}
		keys[i] = ts.index.At(p.This)
		values[i] = fn(ts.values[p.This], right, p.Matched)
	}

	return NewUnchecked(index.New(keys, ts.index.CompareFunc()), values)
}
