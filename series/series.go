package series

import (
	"cmp"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/index"
)

// displayHeadTail is the number of points shown at each end by String for long series.
const displayHeadTail = 5

// TimeSeries is an index and a value slice of equal length, zipped by position.
//
// A TimeSeries is immutable once built: Values and Index().Values() expose the
// backing slices and must not be modified.
type TimeSeries[K comparable, V any] struct {
	index  *index.Index[K]
	values []V
}

// New creates a validated series.
//
// It fails when idx and values differ in length, when idx holds duplicate keys
// or when keys are not strictly increasing.
func New[K comparable, V any](idx *index.Index[K], values []V) (*TimeSeries[K, V], error) {
	if idx.Len() != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", errs.ErrLengthMismatch, idx.Len(), len(values))
	}
	if pos, found := idx.FirstDuplicate(); found {
		return nil, fmt.Errorf("%w: key %v at position %d repeats an earlier key", errs.ErrNotUnique, idx.At(pos), pos)
	}
	if pos, found := idx.FirstDisorder(); found {
		return nil, fmt.Errorf("%w: key %v at position %d does not follow %v", errs.ErrNotMonotonic, idx.At(pos), pos, idx.At(pos-1))
	}

	return &TimeSeries[K, V]{index: idx, values: values}, nil
}

// NewMinimalChecks creates a series, checking only that lengths match.
func NewMinimalChecks[K comparable, V any](idx *index.Index[K], values []V) (*TimeSeries[K, V], error) {
	if idx.Len() != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", errs.ErrLengthMismatch, idx.Len(), len(values))
	}

	return &TimeSeries[K, V]{index: idx, values: values}, nil
}

// NewUnchecked creates a series without any validation.
//
// The caller guarantees equal lengths and, for operations that rely on it,
// unique ascending keys.
func NewUnchecked[K comparable, V any](idx *index.Index[K], values []V) *TimeSeries[K, V] {
	return &TimeSeries[K, V]{index: idx, values: values}
}

// NewOrdered creates a validated series over naturally ordered keys.
func NewOrdered[K cmp.Ordered, V any](keys []K, values []V) (*TimeSeries[K, V], error) {
	return New(index.NewOrdered(keys), values)
}

// NewTime creates a validated series over time keys.
func NewTime[V any](keys []time.Time, values []V) (*TimeSeries[time.Time, V], error) {
	return New(index.NewTime(keys), values)
}

// Empty creates a series with no points.
func Empty[K comparable, V any](compare index.CompareFunc[K]) *TimeSeries[K, V] {
	return NewUnchecked(index.New([]K{}, compare), []V{})
}

// Len returns the number of points.
func (ts *TimeSeries[K, V]) Len() int {
	return len(ts.values)
}

// IsEmpty reports whether the series holds no points.
func (ts *TimeSeries[K, V]) IsEmpty() bool {
	return len(ts.values) == 0
}

// Index returns the key index.
func (ts *TimeSeries[K, V]) Index() *index.Index[K] {
	return ts.index
}

// Values returns the values in key order. The returned slice must not be modified.
func (ts *TimeSeries[K, V]) Values() []V {
	return ts.values
}

// At returns the point at position pos, or false if pos is out of range.
func (ts *TimeSeries[K, V]) At(pos int) (DataPoint[K, V], bool) {
	if pos < 0 || pos >= len(ts.values) {
		return DataPoint[K, V]{}, false
	}

	return DataPoint[K, V]{Key: ts.index.At(pos), Value: ts.values[pos]}, true
}

// Get returns the value stored under key using binary search.
func (ts *TimeSeries[K, V]) Get(key K) (V, bool) {
	pos, ok := ts.index.Search(key)
	if !ok {
		var zero V
		return zero, false
	}

	return ts.values[pos], true
}

// AtOrFirstPrior returns the value stored under the greatest key not after key.
//
// The result is absent when key precedes the first key or follows the last key.
func (ts *TimeSeries[K, V]) AtOrFirstPrior(key K) (V, bool) {
	var zero V

	last, ok := ts.index.Last()
	if !ok || ts.index.Compare(key, last) > 0 {
		return zero, false
	}

	pos, found := ts.index.Search(key)
	if found {
		return ts.values[pos], true
	}
	if pos == 0 {
		return zero, false
	}

	return ts.values[pos-1], true
}

// Between returns the points with start <= key <= end.
//
// The scan stops at the first key after end.
func (ts *TimeSeries[K, V]) Between(start, end K) *TimeSeries[K, V] {
	keys := make([]K, 0)
	values := make([]V, 0)

	for i, k := range ts.index.Values() {
		if ts.index.Compare(k, end) > 0 {
			break
		}
		if ts.index.Compare(k, start) < 0 {
			continue
		}
		keys = append(keys, k)
		values = append(values, ts.values[i])
	}

	return NewUnchecked(index.New(keys, ts.index.CompareFunc()), values)
}

// All returns a sequence over every point in storage order, without ordering checks.
func (ts *TimeSeries[K, V]) All() iter.Seq[DataPoint[K, V]] {
	return ts.Iter().Seq()
}

// Points returns every point in storage order.
func (ts *TimeSeries[K, V]) Points() []DataPoint[K, V] {
	out := make([]DataPoint[K, V], len(ts.values))
	for i, v := range ts.values {
		out[i] = DataPoint[K, V]{Key: ts.index.At(i), Value: v}
	}

	return out
}

// Iter returns an iterator over every point in storage order.
func (ts *TimeSeries[K, V]) Iter() *Iterator[K, V] {
	return &Iterator[K, V]{src: ts}
}

// Ordered returns an iterator that stops at the first out-of-order key.
func (ts *TimeSeries[K, V]) Ordered() *OrderedIterator[K, V] {
	return &OrderedIterator[K, V]{src: ts}
}

// Shift returns an iterator that lags (n < 0) or leads (n > 0) values against keys by |n| positions.
//
// A lag maps key[i+|n|] to value[i]; a lead maps key[i] to value[i+n]. The
// sequence holds Len()-|n| points and is empty when |n| >= Len().
func (ts *TimeSeries[K, V]) Shift(n int) *ShiftIterator[K, V] {
	it := &ShiftIterator[K, V]{src: ts}

	length := len(ts.values)
	if n <= -length || n >= length {
		it.done = true
		return it
	}

	if n < 0 {
		it.keyOffset = -n
	} else {
		it.valueOffset = n
	}

	return it
}

// Interweave merges two series into one ordered by key.
//
// Points with a key present in only one series are kept as is. On a key
// collision tieBreak receives both points and returns the surviving one,
// which should carry the same key.
func (ts *TimeSeries[K, V]) Interweave(other *TimeSeries[K, V], tieBreak func(left, right DataPoint[K, V]) DataPoint[K, V]) *TimeSeries[K, V] {
	n1, n2 := ts.Len(), other.Len()
	keys := make([]K, 0, n1+n2)
	values := make([]V, 0, n1+n2)

	pos1, pos2 := 0, 0
	for pos1 < n1 || pos2 < n2 {
		var dp DataPoint[K, V]
		switch {
		case pos1 == n1:
			dp, _ = other.At(pos2)
			pos2++
		case pos2 == n2:
			dp, _ = ts.At(pos1)
			pos1++
		default:
			left, _ := ts.At(pos1)
			right, _ := other.At(pos2)
			switch c := ts.index.Compare(left.Key, right.Key); {
			case c < 0:
				dp = left
				pos1++
			case c > 0:
				dp = right
				pos2++
			default:
				dp = tieBreak(left, right)
				pos1++
				pos2++
			}
		}
		keys = append(keys, dp.Key)
		values = append(values, dp.Value)
	}

	return NewUnchecked(index.New(keys, ts.index.CompareFunc()), values)
}

// String renders the series one point per line. Series with ten or more
// points are abbreviated to the first and last five.
func (ts *TimeSeries[K, V]) String() string {
	var sb strings.Builder

	write := func(from, to int) {
		for i := from; i < to; i++ {
			fmt.Fprintf(&sb, "(%v, %v)\n", ts.index.At(i), ts.values[i])
		}
	}

	n := ts.Len()
	if n < 2*displayHeadTail {
		write(0, n)
	} else {
		write(0, displayHeadTail)
		sb.WriteString("...\n")
		write(n-displayHeadTail, n)
	}

	return sb.String()
}

// Equal reports whether two series hold the same keys and values in the same order.
func Equal[K comparable, V comparable](a, b *TimeSeries[K, V]) bool {
	if a.Len() != b.Len() || !a.index.Equal(b.index) {
		return false
	}

	for i, v := range a.values {
		if v != b.values[i] {
			return false
		}
	}

	return true
}
