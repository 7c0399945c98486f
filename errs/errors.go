// Package errs defines the sentinel errors returned by tsx packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is:
//
//	ts, err := series.New(idx, values)
//	if errors.Is(err, errs.ErrNotMonotonic) {
//	    // sort the input or fall back to series.NewUnchecked
//	}
package errs

import "errors"

// Validated construction errors.
var (
	// ErrLengthMismatch is returned when an index and its value slice differ in length.
	ErrLengthMismatch = errors.New("index and values length mismatch")
	// ErrNotUnique is returned when an index contains duplicate keys.
	ErrNotUnique = errors.New("index is not unique")
	// ErrNotMonotonic is returned when index keys are not strictly increasing.
	ErrNotMonotonic = errors.New("index is not monotonic")
)

// Blob codec errors.
var (
	ErrInvalidBlob          = errors.New("invalid blob")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrUnsupportedVersion   = errors.New("unsupported blob version")
	ErrInvalidEncoding      = errors.New("invalid encoding type")
	ErrInvalidCompression   = errors.New("invalid compression type")
	ErrPayloadCorrupted     = errors.New("payload corrupted")
	ErrDataPointCountTooBig = errors.New("too many data points")
)

// Stream and configuration errors.
var (
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
	ErrInvalidConfig = errors.New("invalid configuration")
)
