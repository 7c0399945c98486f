// Package format names the key encodings and payload compressions recorded in
// a tsx blob header.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/tsx/errs"
)

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeRaw   EncodingType = 0x1 // TypeRaw stores fixed 8-byte words.
	TypeDelta EncodingType = 0x2 // TypeDelta stores delta-of-delta zigzag varints.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is a known encoding.
func (e EncodingType) Valid() bool {
	return e == TypeRaw || e == TypeDelta
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known compression.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseEncoding returns the encoding named s, case-insensitively.
func ParseEncoding(s string) (EncodingType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw":
		return TypeRaw, nil
	case "delta":
		return TypeDelta, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidEncoding, s)
	}
}

// ParseCompression returns the compression named s, case-insensitively.
// An empty string selects CompressionNone.
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, s)
	}
}
