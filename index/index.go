// Package index provides the ordered key sequence underlying every time series.
//
// An Index is a slice of keys paired with a three-way compare function. Keys
// must be comparable so that hash joins and uniqueness checks can use them as
// map keys, and ordered through the compare function so that merge joins and
// binary search work on them.
//
// The invariants of a well-formed index (pairwise distinct keys, strictly
// increasing in storage order) are only enforced where a series is built with
// validation. IsUnique and IsMonotonic let callers check them explicitly.
//
// # Time keys
//
// time.Time values compare with == by wall clock, monotonic reading and
// location pointer. Normalize time keys before building an index, for example
// with t.UTC().Round(0), otherwise hash lookups may miss keys that Compare
// reports as equal.
package index

import (
	"cmp"
	"sort"
	"time"
)

// CompareFunc reports the ordering of two keys: negative when a < b, zero when
// a == b and positive when a > b.
type CompareFunc[K any] func(a, b K) int

// Index is an ordered sequence of keys.
//
// An Index is treated as immutable once built. Values returns the backing
// slice without copying, so callers must not modify it.
type Index[K comparable] struct {
	values  []K
	compare CompareFunc[K]
}

// New creates an index over values ordered by compare.
//
// The slice is retained, not copied.
func New[K comparable](values []K, compare CompareFunc[K]) *Index[K] {
	if compare == nil {
		panic("index: nil compare function")
	}

	return &Index[K]{values: values, compare: compare}
}

// NewOrdered creates an index over keys with a natural ordering.
func NewOrdered[K cmp.Ordered](values []K) *Index[K] {
	return New(values, cmp.Compare[K])
}

// NewTime creates an index over time keys ordered chronologically.
func NewTime(values []time.Time) *Index[time.Time] {
	return New(values, CompareTime)
}

// CompareTime orders two instants chronologically.
func CompareTime(a, b time.Time) int {
	return a.Compare(b)
}

// Len returns the number of keys.
func (idx *Index[K]) Len() int {
	return len(idx.values)
}

// IsEmpty reports whether the index holds no keys.
func (idx *Index[K]) IsEmpty() bool {
	return len(idx.values) == 0
}

// At returns the key at position pos. It panics if pos is out of range.
func (idx *Index[K]) At(pos int) K {
	return idx.values[pos]
}

// Last returns the last key, or false if the index is empty.
func (idx *Index[K]) Last() (K, bool) {
	if len(idx.values) == 0 {
		var zero K
		return zero, false
	}

	return idx.values[len(idx.values)-1], true
}

// Values returns the keys in storage order. The returned slice must not be modified.
func (idx *Index[K]) Values() []K {
	return idx.values
}

// Compare orders two keys with the index's compare function.
func (idx *Index[K]) Compare(a, b K) int {
	return idx.compare(a, b)
}

// CompareFunc returns the compare function of the index.
func (idx *Index[K]) CompareFunc() CompareFunc[K] {
	return idx.compare
}

// Search returns the position of key and true if present. Otherwise it returns
// the position where key would be inserted and false.
//
// The index must be monotonic.
func (idx *Index[K]) Search(key K) (int, bool) {
	pos := sort.Search(len(idx.values), func(i int) bool {
		return idx.compare(idx.values[i], key) >= 0
	})

	return pos, pos < len(idx.values) && idx.compare(idx.values[pos], key) == 0
}

// IsMonotonic reports whether keys are strictly increasing in storage order.
//
// Empty and single-key indexes are monotonic.
func (idx *Index[K]) IsMonotonic() bool {
	_, found := idx.FirstDisorder()
	return !found
}

// FirstDisorder returns the first position whose key is not greater than
// the key before it.
func (idx *Index[K]) FirstDisorder() (int, bool) {
	for i := 1; i < len(idx.values); i++ {
		if idx.compare(idx.values[i-1], idx.values[i]) >= 0 {
			return i, true
		}
	}

	return 0, false
}

// IsUnique reports whether all keys are pairwise distinct.
//
// It runs in O(n) time with O(n) extra space.
func (idx *Index[K]) IsUnique() bool {
	_, found := idx.FirstDuplicate()
	return !found
}

// FirstDuplicate returns the first position whose key repeats an earlier key.
func (idx *Index[K]) FirstDuplicate() (int, bool) {
	seen := make(map[K]struct{}, len(idx.values))
	for i, v := range idx.values {
		if _, ok := seen[v]; ok {
			return i, true
		}
		seen[v] = struct{}{}
	}

	return 0, false
}

// Equal reports whether both indexes hold the same keys in the same order.
func (idx *Index[K]) Equal(other *Index[K]) bool {
	if idx == other {
		return true
	}
	if other == nil || len(idx.values) != len(other.values) {
		return false
	}

	for i, v := range idx.values {
		if idx.compare(v, other.values[i]) != 0 {
			return false
		}
	}

	return true
}
