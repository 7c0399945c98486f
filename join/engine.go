// Package join aligns two indexes position by position.
//
// An Engine produces alignments, slices of position pairs, that series
// operations use to combine values. Four strategies are provided:
//
//   - HashInner / HashLeft: map lookup, no ordering requirement
//   - MergeInner / MergeLeft: two-pointer merge over ascending indexes
//   - MergeAsof: merge where exact equality is replaced by a Comparator,
//     implementing nearest-key matching with lookback or lookahead tolerance
//
// Engines are immutable after construction and safe for concurrent use.
package join

import (
	"go.uber.org/zap"

	"github.com/arloliu/tsx/index"
	"github.com/arloliu/tsx/internal/hash"
	"github.com/arloliu/tsx/internal/options"
)

// Pair aligns position This of the left index with position Other of the right index.
type Pair struct {
	This  int
	Other int
}

// LeftPair aligns a left position with an optional right position.
// Other is meaningful only when Matched is true.
type LeftPair struct {
	This    int
	Other   int
	Matched bool
}

// Engine computes alignments between indexes with key type K.
type Engine[K comparable] struct {
	cfg Config
}

// NewEngine creates an Engine configured by opts.
func NewEngine[K comparable](opts ...Option) (*Engine[K], error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Engine[K]{cfg: cfg}, nil
}

// DefaultEngine returns an Engine with precompare disabled and no logging.
func DefaultEngine[K comparable]() *Engine[K] {
	return &Engine[K]{cfg: defaultConfig()}
}

// HashPrecompare reports whether the identical-index fast path is enabled.
func (e *Engine[K]) HashPrecompare() bool {
	return e.cfg.hashPrecompare
}

// HashInner aligns equal keys using a hash lookup.
//
// The lookup is built over the shorter index and probed with the longer one,
// so the result follows the storage order of the longer index (the left index
// when both have the same length). Indexes are expected to be unique; for a
// duplicated key on the lookup side the last position wins.
func (e *Engine[K]) HashInner(this, other *index.Index[K]) []Pair {
	if e.identical(this, other) {
		return identityPairs(this.Len())
	}

	if other.Len() <= this.Len() {
		lookup := buildLookup(other)
		out := make([]Pair, 0, other.Len())
		for i, k := range this.Values() {
			if j, ok := lookup[k]; ok {
				out = append(out, Pair{This: i, Other: j})
			}
		}

		return out
	}

	lookup := buildLookup(this)
	out := make([]Pair, 0, this.Len())
	for j, k := range other.Values() {
		if i, ok := lookup[k]; ok {
			out = append(out, Pair{This: i, Other: j})
		}
	}

	return out
}

// HashLeft emits every position of this, matched against other through a hash lookup.
func (e *Engine[K]) HashLeft(this, other *index.Index[K]) []LeftPair {
	lookup := buildLookup(other)
	out := make([]LeftPair, this.Len())
	for i, k := range this.Values() {
		j, ok := lookup[k]
		out[i] = LeftPair{This: i, Other: j, Matched: ok}
	}

	return out
}

// MergeInner aligns equal keys of two ascending indexes with a two-pointer merge.
func (e *Engine[K]) MergeInner(this, other *index.Index[K]) []Pair {
	n1, n2 := this.Len(), other.Len()
	out := make([]Pair, 0, min(n1, n2))

	pos1, pos2 := 0, 0
	for pos1 < n1 && pos2 < n2 {
		switch c := this.Compare(this.At(pos1), other.At(pos2)); {
		case c < 0:
			pos1++
		case c > 0:
			pos2++
		default:
			out = append(out, Pair{This: pos1, Other: pos2})
			pos1++
			pos2++
		}
	}

	return out
}

// MergeLeft emits every position of this exactly once, matched against other
// with a two-pointer merge. Positions after other is exhausted are unmatched.
func (e *Engine[K]) MergeLeft(this, other *index.Index[K]) []LeftPair {
	n1, n2 := this.Len(), other.Len()
	out := make([]LeftPair, 0, n1)

	pos2 := 0
	for pos1 := range n1 {
		key := this.At(pos1)
		for pos2 < n2 && this.Compare(other.At(pos2), key) < 0 {
			pos2++
		}

		if pos2 < n2 && this.Compare(other.At(pos2), key) == 0 {
			out = append(out, LeftPair{This: pos1, Other: pos2, Matched: true})
			pos2++

			continue
		}
		out = append(out, LeftPair{This: pos1})
	}

	return out
}

// MergeAsof aligns every position of this with the position of other selected
// by cmp and mode.
//
// For each key of this, the cursor on other advances past all smaller keys,
// so other[pos] is the first key not less than the current key (pos may equal
// other.Len() when every remaining key is smaller). cmp then receives the
// current key, other[min(pos, len-1)] and other[roll(pos)], where roll is the
// position mapping of mode. A zero order records position pos+offset when it
// lies inside other; any other order, or an out-of-range position, leaves the
// key unmatched.
//
// A nil cmp compares keys exactly and never rolls. A non-nil cmp with NoRoll is
// a programming error and panics.
func (e *Engine[K]) MergeAsof(this, other *index.Index[K], cmp Comparator[K], mode RollMode) []LeftPair {
	if cmp != nil && mode == NoRoll {
		panic("join: a roll comparator requires RollPrior or RollFollowing mode")
	}

	n1, n2 := this.Len(), other.Len()
	if e.identical(this, other) {
		out := make([]LeftPair, n1)
		for i := range n1 {
			out[i] = LeftPair{This: i, Other: i, Matched: true}
		}

		return out
	}

	out := make([]LeftPair, 0, n1)
	if n2 == 0 {
		for i := range n1 {
			out = append(out, LeftPair{This: i})
		}

		return out
	}

	if cmp == nil {
		cmp = func(thisKey, otherKey, _ K) (int, int) {
			return this.Compare(thisKey, otherKey), 0
		}
	}
	roll := mode.targetFunc(n2)

	pos2 := 0
	for pos1 := range n1 {
		key := this.At(pos1)
		for pos2 < n2 && this.Compare(other.At(pos2), key) < 0 {
			pos2++
		}

		order, offset := cmp(key, other.At(min(pos2, n2-1)), other.At(roll(pos2)))
		if order == 0 {
			if target := pos2 + offset; target >= 0 && target < n2 {
				out = append(out, LeftPair{This: pos1, Other: target, Matched: true})
				continue
			}
		}
		out = append(out, LeftPair{This: pos1})
	}

	return out
}

func (e *Engine[K]) identical(this, other *index.Index[K]) bool {
	if !e.cfg.hashPrecompare || this.Len() != other.Len() {
		return false
	}

	if this != other && hash.Fingerprint(this.Values()) != hash.Fingerprint(other.Values()) {
		return false
	}

	e.cfg.logger.Debug("identical indexes, using identity alignment", zap.Int("len", this.Len()))

	return true
}

func buildLookup[K comparable](idx *index.Index[K]) map[K]int {
	lookup := make(map[K]int, idx.Len())
	for i, k := range idx.Values() {
		lookup[k] = i
	}

	return lookup
}

func identityPairs(n int) []Pair {
	out := make([]Pair, n)
	for i := range n {
		out[i] = Pair{This: i, Other: i}
	}

	return out
}
