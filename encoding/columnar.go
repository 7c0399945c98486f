package encoding

import "iter"

// ColumnarEncoder appends a column of values to an internal buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded bytes written so far.
	// The slice is valid until the next write or Finish and must not be modified.
	Bytes() []byte

	// Len returns the number of values written since the encoder was created.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Reset clears the encoding state so the next write starts a new sequence.
	// Bytes already written are kept, so Len, Size and Bytes are unchanged.
	Reset()

	// Finish returns the buffer to the pool. The encoder must not be used afterwards.
	Finish()

	// Write encodes a single value.
	Write(data T)

	// WriteSlice encodes values in order.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values produced by the matching ColumnarEncoder.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count values decoded from data. Malformed or short
	// data ends the sequence early; callers detect it by counting.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false if index is outside [0, count)
	// or data is malformed.
	At(data []byte, index int, count int) (T, bool)
}

// DecodeAll collects the values of dec into a slice of exactly count
// elements. ok is false when data holds fewer values.
func DecodeAll[T comparable](dec ColumnarDecoder[T], data []byte, count int) ([]T, bool) {
	out := make([]T, 0, max(count, 0))
	for v := range dec.All(data, count) {
		out = append(out, v)
	}

	return out, len(out) == count
}

func zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63)) //nolint:gosec
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}
