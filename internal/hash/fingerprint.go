// Package hash computes xxHash64 fingerprints of key sequences.
package hash

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint computes an xxHash64 digest over keys in order.
//
// Two key sequences with equal fingerprints are treated as identical by the
// join engine's precompare fast path. Fixed-width keys are hashed by their
// binary representation, time.Time by its Unix nanoseconds and any other type
// by its fmt representation followed by a separator byte.
func Fingerprint[K any](keys []K) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)

	for _, k := range keys {
		buf = AppendKey(buf[:0], k)
		_, _ = d.Write(buf)
	}

	return d.Sum64()
}

// AppendKey appends a byte representation of key to dst.
func AppendKey[K any](dst []byte, key K) []byte {
	switch v := any(key).(type) {
	case int:
		return binary.LittleEndian.AppendUint64(dst, uint64(v)) //nolint:gosec
	case int64:
		return binary.LittleEndian.AppendUint64(dst, uint64(v)) //nolint:gosec
	case int32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v)) //nolint:gosec
	case uint:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case uint64:
		return binary.LittleEndian.AppendUint64(dst, v)
	case uint32:
		return binary.LittleEndian.AppendUint32(dst, v)
	case float64:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	case string:
		dst = append(dst, v...)
		return append(dst, 0)
	case time.Time:
		return binary.LittleEndian.AppendUint64(dst, uint64(v.UnixNano())) //nolint:gosec
	default:
		dst = fmt.Append(dst, v)
		return append(dst, 0)
	}
}
