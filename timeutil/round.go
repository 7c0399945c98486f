// Package timeutil rounds instants to duration boundaries.
//
// The rounding functions share the signature func(time.Time, time.Duration)
// time.Time so they can be passed directly as bucket functions to
// series.ResampleAndAgg. Rounding works on Unix milliseconds with floor
// modulo, so sub-millisecond precision is dropped and instants before the
// epoch round the same way as later ones. Results keep the input location.
package timeutil

import "time"

// FromMillis returns the UTC instant ms milliseconds after the Unix epoch.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// RoundUp returns the first boundary of size strictly after t.
// An instant already on a boundary moves to the next one, so the bucket
// labelled by a boundary b covers [b-size, b).
func RoundUp(t time.Time, size time.Duration) time.Time {
	ms, mod, ok := split(t, size)
	if !ok {
		return t
	}

	return time.UnixMilli(ms + size.Milliseconds() - mod).In(t.Location())
}

// RoundDown returns the last boundary of size at or before t.
func RoundDown(t time.Time, size time.Duration) time.Time {
	ms, mod, ok := split(t, size)
	if !ok {
		return t
	}

	return time.UnixMilli(ms - mod).In(t.Location())
}

// RoundNearest returns the boundary of size closest to t. Instants exactly
// halfway between two boundaries round down.
func RoundNearest(t time.Time, size time.Duration) time.Time {
	ms, mod, ok := split(t, size)
	if !ok {
		return t
	}

	step := size.Milliseconds()
	if mod > step/2 {
		return time.UnixMilli(ms + step - mod).In(t.Location())
	}

	return time.UnixMilli(ms - mod).In(t.Location())
}

// split returns the Unix milliseconds of t and their floor modulo by size.
// ok is false when size is shorter than a millisecond.
func split(t time.Time, size time.Duration) (ms int64, mod int64, ok bool) {
	step := size.Milliseconds()
	if step <= 0 {
		return 0, 0, false
	}

	ms = t.UnixMilli()
	mod = ((ms % step) + step) % step

	return ms, mod, true
}
