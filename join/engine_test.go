package join

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/index"
)

func ints(values ...int) *index.Index[int] {
	return index.NewOrdered(values)
}

func TestNewEngine_Options(t *testing.T) {
	e, err := NewEngine[int]()
	require.NoError(t, err)
	require.False(t, e.HashPrecompare())

	e, err = NewEngine[int](WithHashPrecompare(true))
	require.NoError(t, err)
	require.True(t, e.HashPrecompare())

	_, err = NewEngine[int](WithLogger(nil))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestHashInner(t *testing.T) {
	e := DefaultEngine[int]()

	t.Run("longer left side probes", func(t *testing.T) {
		pairs := e.HashInner(ints(0, 1, 2, 3, 4), ints(0, 1, 2))
		require.Equal(t, []Pair{{0, 0}, {1, 1}, {2, 2}}, pairs)
	})

	t.Run("longer right side probes", func(t *testing.T) {
		pairs := e.HashInner(ints(4, 2), ints(1, 2, 3, 4))
		// order follows the right (longer) index
		require.Equal(t, []Pair{{1, 1}, {0, 3}}, pairs)
	})

	t.Run("no overlap", func(t *testing.T) {
		require.Empty(t, e.HashInner(ints(1, 2), ints(3, 4)))
	})
}

func TestHashLeft(t *testing.T) {
	e := DefaultEngine[int]()

	pairs := e.HashLeft(ints(0, 1, 2, 3, 4), ints(0, 1, 2))
	require.Equal(t, []LeftPair{
		{This: 0, Other: 0, Matched: true},
		{This: 1, Other: 1, Matched: true},
		{This: 2, Other: 2, Matched: true},
		{This: 3},
		{This: 4},
	}, pairs)
}

func TestMergeInner(t *testing.T) {
	e := DefaultEngine[int]()

	require.Equal(t, []Pair{{0, 0}, {1, 1}, {2, 2}}, e.MergeInner(ints(0, 1, 2, 3, 4), ints(0, 1, 2)))
	require.Equal(t, []Pair{{1, 0}, {3, 2}}, e.MergeInner(ints(1, 2, 3, 5), ints(2, 4, 5)))
	require.Empty(t, e.MergeInner(ints(), ints(1, 2)))
}

func TestMergeLeft_EmitsTail(t *testing.T) {
	e := DefaultEngine[int]()

	pairs := e.MergeLeft(ints(0, 1, 2, 3, 4), ints(0, 1, 2))
	require.Len(t, pairs, 5)
	require.Equal(t, LeftPair{This: 3}, pairs[3])
	require.Equal(t, LeftPair{This: 4}, pairs[4])

	pairs = e.MergeLeft(ints(1, 3, 5), ints(0, 3, 4, 6))
	require.Equal(t, []LeftPair{
		{This: 0},
		{This: 1, Other: 1, Matched: true},
		{This: 2},
	}, pairs)
}

func TestMergeAsof_DefaultComparator(t *testing.T) {
	e := DefaultEngine[int]()

	pairs := e.MergeAsof(ints(1, 2, 3, 4), ints(2, 4), nil, NoRoll)
	require.Equal(t, []LeftPair{
		{This: 0},
		{This: 1, Other: 0, Matched: true},
		{This: 2},
		{This: 3, Other: 1, Matched: true},
	}, pairs)
}

func TestMergeAsof_EmptyOther(t *testing.T) {
	e := DefaultEngine[int]()

	pairs := e.MergeAsof(ints(1, 2), ints(), nil, RollPrior)
	require.Equal(t, []LeftPair{{This: 0}, {This: 1}}, pairs)
}

func TestMergeAsof_PanicsOnComparatorWithNoRoll(t *testing.T) {
	e := DefaultEngine[int]()
	cmp := func(a, b, _ int) (int, int) { return a - b, 0 }

	require.Panics(t, func() {
		e.MergeAsof(ints(1), ints(1), cmp, NoRoll)
	})
}

func TestMergeAsof_RollTargetPastEnd(t *testing.T) {
	e := DefaultEngine[int]()

	var targets []int
	cmp := func(this, _, rollTarget int) (int, int) {
		targets = append(targets, rollTarget)
		return -1, 0
	}

	// every left key exceeds the right index, so the cursor sits past the end
	e.MergeAsof(ints(10, 11), ints(1, 2, 3), cmp, RollPrior)
	require.Equal(t, []int{3, 3}, targets)
}

func TestMergeAsof_OffsetOutOfRange(t *testing.T) {
	e := DefaultEngine[int]()
	cmp := func(_, _, _ int) (int, int) { return 0, -1 }

	// cursor at 0 with offset -1 cannot be recorded
	pairs := e.MergeAsof(ints(0), ints(5, 6), cmp, RollPrior)
	require.Equal(t, []LeftPair{{This: 0}}, pairs)
}

func TestPrecompare_IdentityAlignment(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e, err := NewEngine[int](WithHashPrecompare(true), WithLogger(zap.New(core)))
	require.NoError(t, err)

	a := ints(1, 2, 3)
	b := ints(1, 2, 3)

	require.Equal(t, []Pair{{0, 0}, {1, 1}, {2, 2}}, e.HashInner(a, b))
	require.Equal(t, 1, logs.Len())

	pairs := e.MergeAsof(a, b, nil, NoRoll)
	require.Len(t, pairs, 3)
	for i, p := range pairs {
		require.Equal(t, LeftPair{This: i, Other: i, Matched: true}, p)
	}

	// different content falls back to the regular join
	require.Equal(t, []Pair{{0, 0}, {1, 1}}, e.HashInner(a, ints(1, 2, 4)))
	require.Equal(t, 2, logs.Len())
}

func TestRollFunctions(t *testing.T) {
	require.Equal(t, 0, PriorOf(0))
	require.Equal(t, 4, PriorOf(5))
	require.Equal(t, 1, FollowingOf(0, 5))
	require.Equal(t, 4, FollowingOf(4, 5))
	require.Equal(t, 4, FollowingOf(5, 5))

	require.Equal(t, "RollPrior", RollPrior.String())
	require.Equal(t, "Unknown", RollMode(9).String())
}

func BenchmarkMergeInner(b *testing.B) {
	left := make([]int, 10000)
	right := make([]int, 5000)
	for i := range left {
		left[i] = i
	}
	for i := range right {
		right[i] = i * 2
	}
	l, r := ints(left...), ints(right...)
	e := DefaultEngine[int]()

	b.ResetTimer()
	for b.Loop() {
		e.MergeInner(l, r)
	}
}
