// Package asof generates the comparators consumed by join.Engine.MergeAsof.
//
// Prior comparators match a key with the closest earlier key of the other
// index within a lookback tolerance; Following comparators match with the
// closest later key within a lookahead tolerance. Both short-circuit exact
// key equality to a zero offset.
//
// Comparators are provided for ordinal keys (integers and floats) and for
// time.Time keys. Custom key types can supply their own join.Comparator.
//
// Example:
//
//	joined := series.MergeApplyAsof(base, quotes, asof.PriorTime(time.Minute),
//	    func(b, q float64, ok bool) float64 { ... }, join.RollPrior)
package asof

import (
	"time"

	"github.com/arloliu/tsx/join"
)

// Ordinal is the set of key types compared with the built-in operators.
type Ordinal interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Prior returns a comparator for join.RollPrior that accepts the prior key p
// of the other index when p <= this <= p+lookback.
func Prior[K Ordinal](lookback K) join.Comparator[K] {
	return func(this, other, prior K) (int, int) {
		if this == other {
			return 0, 0
		}
		if prior <= this && this-prior <= lookback {
			return 0, -1
		}

		return -1, 0
	}
}

// Following returns a comparator for join.RollFollowing that accepts the
// nearest key k of the other index when this <= k <= this+lookahead.
//
// The key at the cursor is preferred; the following key (peak) is used, with
// offset +1, only when the cursor key lies before this.
func Following[K Ordinal](lookahead K) join.Comparator[K] {
	return func(this, other, peak K) (int, int) {
		switch {
		case this == other:
			return 0, 0
		case other > this:
			if other-this <= lookahead {
				return 0, 0
			}

			return -1, 0
		case peak < this:
			return 1, 0
		case peak-this <= lookahead:
			return 0, 1
		default:
			return -1, 0
		}
	}
}

// PriorTime is Prior for time keys.
func PriorTime(lookback time.Duration) join.Comparator[time.Time] {
	return func(this, other, prior time.Time) (int, int) {
		if this.Equal(other) {
			return 0, 0
		}
		if !prior.After(this) && this.Sub(prior) <= lookback {
			return 0, -1
		}

		return -1, 0
	}
}

// FollowingTime is Following for time keys.
func FollowingTime(lookahead time.Duration) join.Comparator[time.Time] {
	return func(this, other, peak time.Time) (int, int) {
		switch {
		case this.Equal(other):
			return 0, 0
		case other.After(this):
			if other.Sub(this) <= lookahead {
				return 0, 0
			}

			return -1, 0
		case peak.Before(this):
			return 1, 0
		case peak.Sub(this) <= lookahead:
			return 0, 1
		default:
			return -1, 0
		}
	}
}
