// Package series implements TimeSeries, an immutable container of key/value
// pairs aligned by position over an ordered index.
//
// # Construction
//
// Three construction paths trade safety for throughput:
//
//   - New validates length, uniqueness and monotonicity and returns an error
//     wrapping errs.ErrLengthMismatch, errs.ErrNotUnique or errs.ErrNotMonotonic.
//   - NewMinimalChecks only checks that keys and values have equal length.
//   - NewUnchecked trusts the caller. Every transform in this package builds
//     its result this way because its input already guarantees the ordering.
//
// FromDataPoints and Collect sort and validate; FromDataPointsUnchecked and
// CollectUnchecked do neither and are the ingestion path used by the tsio
// adapters.
//
// # Transforms
//
// Every operation returns a new series or a lazy iterator:
//
//	sum := series.CrossApplyInner(a, b, func(x, y float64) float64 { return x + y })
//	lagged := a.Shift(-1).Collect()
//	avg := series.ApplyRolling(a, 5, mean).Collect()
//
// Joins route through join.Engine; positional transforms (shift, rolling,
// skip-apply) route through the iterator types in this package, each of which
// is single-pass and can be drained with Next, ranged over with Seq, or
// collected into a series with Collect.
//
// # Ordering
//
// Operations that walk two series in step (merge joins, Interweave) and
// ResampleAndAgg assume ascending keys. A series built with NewUnchecked from
// unordered input produces undefined results with them.
package series
