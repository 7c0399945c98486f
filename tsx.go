// Package tsx is an in-memory engine for ordered, key-indexed data sequences.
//
// A series pairs an ordered index of keys with a parallel slice of values.
// Series can be aligned and joined on their keys (hash, merge and as-of
// joins), resampled into buckets, and walked with ordered, shifted, rolling
// and skip-span iterators. Thin adapters move series in and out of CSV, JSON,
// a compressed columnar blob format, channels and length-prefixed byte
// streams.
//
// # Core Features
//
//   - Generic keys: any comparable type with a compare function, with
//     shortcuts for cmp.Ordered keys and time.Time
//   - Inner, left and as-of joins with prior/following roll modes and
//     bounded lookback or lookahead
//   - Optional xxHash64 fast path for joins of identical indexes
//   - Rolling windows, incrementally updated windows and strided differences
//   - Columnar blobs with raw or delta-of-delta keys and None, Zstd, S2 or
//     LZ4 payload compression
//
// # Basic Usage
//
// Building and joining series:
//
//	trades, _ := tsx.NewTimeSeries(tradeTimes, tradePrices)
//	quotes, _ := tsx.NewTimeSeries(quoteTimes, quotePrices)
//
//	spread := series.MergeApplyAsof(trades, quotes, asof.PriorTime(time.Second),
//	    func(trade, quote float64, ok bool) float64 {
//	        if !ok {
//	            return math.NaN()
//	        }
//	        return trade - quote
//	    }, join.RollPrior)
//
// Encoding a float series into a blob and back:
//
//	encoder, _ := tsx.NewBlobEncoder()
//	data, _ := encoder.Encode(spread)
//	decoded, _ := tsx.DecodeBlob(data)
//
// # Package Structure
//
// This package holds convenience wrappers for the most common cases. The
// series, join, asof, index and tsio packages expose the full API.
package tsx

import (
	"cmp"
	"time"

	"github.com/arloliu/tsx/config"
	"github.com/arloliu/tsx/format"
	"github.com/arloliu/tsx/index"
	"github.com/arloliu/tsx/internal/hash"
	"github.com/arloliu/tsx/join"
	"github.com/arloliu/tsx/series"
	"github.com/arloliu/tsx/tsio"
)

var defaultBlobOptions = []tsio.BlobOption{
	tsio.WithKeyEncoding(format.TypeDelta),
	tsio.WithKeyCompression(format.CompressionNone),
	tsio.WithValueCompression(format.CompressionZstd),
}

// NewSeries creates a validated series over ordered keys.
//
// keys must be strictly increasing and as long as values; otherwise
// errs.ErrNotMonotonic, errs.ErrNotUnique or errs.ErrLengthMismatch is
// returned.
func NewSeries[K cmp.Ordered, V any](keys []K, values []V) (*series.TimeSeries[K, V], error) {
	return series.NewOrdered(keys, values)
}

// NewTimeSeries creates a validated series over time keys.
//
// Keys are compared chronologically but looked up with ==, so they should
// share a location and carry no monotonic clock reading. Normalize them with
// t.UTC() or t.Round(0) before building the series.
func NewTimeSeries[V any](keys []time.Time, values []V) (*series.TimeSeries[time.Time, V], error) {
	return series.NewTime(keys, values)
}

// NewEngine creates a join engine.
//
// Available options:
//   - join.WithHashPrecompare(true|false)
//   - join.WithLogger(logger)
//
// Example:
//
//	engine, err := tsx.NewEngine[time.Time](join.WithHashPrecompare(true))
//	aligned := series.CrossApplyInnerHash(engine, a, b, func(x, y float64) float64 {
//	    return x - y
//	})
func NewEngine[K comparable](opts ...join.Option) (*join.Engine[K], error) {
	return join.NewEngine[K](opts...)
}

// InnerJoinAll keeps the keys present in every series and collects their
// values in argument order. See series.InnerJoinAll.
func InnerJoinAll[K comparable, V any](first *series.TimeSeries[K, V], rest ...*series.TimeSeries[K, V]) *series.TimeSeries[K, []V] {
	return series.InnerJoinAll(first, rest...)
}

// NewBlobEncoder creates a blob encoder for float series over time keys.
//
// Defaults are delta-of-delta keys without compression and Zstd-compressed
// values, in little-endian byte order. opts are applied after the defaults.
//
// Available options:
//   - tsio.WithBlobEndian(engine)
//   - tsio.WithKeyEncoding(format.TypeRaw|TypeDelta)
//   - tsio.WithKeyCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - tsio.WithValueCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - tsio.WithSeriesName(name)
//   - tsio.WithBlobLogger(logger)
func NewBlobEncoder(opts ...tsio.BlobOption) (*tsio.BlobEncoder[time.Time], error) {
	all := make([]tsio.BlobOption, 0, len(defaultBlobOptions)+len(opts))
	all = append(all, defaultBlobOptions...)
	all = append(all, opts...)

	return tsio.NewBlobEncoder(tsio.TimeKeys(), all...)
}

// DecodeBlob decodes a blob of a float series over time keys.
func DecodeBlob(data []byte) (*series.TimeSeries[time.Time, float64], error) {
	return tsio.DecodeBlob(data, tsio.TimeKeys(), index.CompareTime)
}

// NewBlobEncoderFromConfig creates a time-keyed blob encoder from the blob
// section of the YAML file at path. The config logger is attached at its
// configured level.
func NewBlobEncoderFromConfig(path string) (*tsio.BlobEncoder[time.Time], error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.BlobOptions()
	if err != nil {
		return nil, err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}

	return NewBlobEncoder(append(opts, tsio.WithBlobLogger(logger))...)
}

// SeriesID returns the 64-bit xxHash64 of name, the id recorded in blob
// headers by tsio.WithSeriesName.
func SeriesID(name string) uint64 {
	return hash.ID(name)
}
