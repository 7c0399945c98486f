package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/tsx/internal/pool"
)

// KeyDeltaEncoder encodes int64 keys with delta-of-delta compression.
//
// Layout, all zigzag varints:
//   - first key of a sequence: the key itself
//   - second key: delta from the first
//   - every later key: difference between consecutive deltas
//
// Regular intervals therefore cost one byte per key. Keys may be negative
// and need not be ascending.
type KeyDeltaEncoder struct {
	buf       *pool.ByteBuffer
	temp      [binary.MaxVarintLen64]byte
	prevKey   int64
	prevDelta int64
	seqLen    int
	count     int
}

var _ ColumnarEncoder[int64] = (*KeyDeltaEncoder)(nil)

// NewKeyDeltaEncoder creates a delta-of-delta key encoder backed by a pooled buffer.
func NewKeyDeltaEncoder() *KeyDeltaEncoder {
	return &KeyDeltaEncoder{buf: pool.GetColumnBuffer()}
}

// Write encodes a single key.
func (e *KeyDeltaEncoder) Write(key int64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.buf.Grow(binary.MaxVarintLen64)
	e.write(key)
}

// WriteSlice encodes keys in order.
func (e *KeyDeltaEncoder) WriteSlice(keys []int64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(keys) == 0 {
		return
	}

	// optimistic for regular intervals: full first key, then ~2 bytes per key
	e.buf.Grow(binary.MaxVarintLen64 + (len(keys)-1)*2)
	for _, k := range keys {
		e.write(k)
	}
}

func (e *KeyDeltaEncoder) write(key int64) {
	var v int64
	switch e.seqLen {
	case 0:
		v = key
	case 1:
		v = key - e.prevKey
		e.prevDelta = v
	default:
		delta := key - e.prevKey
		v = delta - e.prevDelta
		e.prevDelta = delta
	}

	n := binary.PutUvarint(e.temp[:], zigzag(v))
	e.buf.MustWrite(e.temp[:n])

	e.prevKey = key
	e.seqLen++
	e.count++
}

// Bytes returns the encoded keys.
func (e *KeyDeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded keys.
func (e *KeyDeltaEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *KeyDeltaEncoder) Size() int {
	return e.buf.Len()
}

// Reset starts a new delta sequence; the next key is written in full.
func (e *KeyDeltaEncoder) Reset() {
	e.prevKey = 0
	e.prevDelta = 0
	e.seqLen = 0
}

// Finish returns the buffer to the pool.
func (e *KeyDeltaEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.Reset()
	e.count = 0
}

// KeyDeltaDecoder decodes keys produced by KeyDeltaEncoder.
type KeyDeltaDecoder struct{}

var _ ColumnarDecoder[int64] = KeyDeltaDecoder{}

// NewKeyDeltaDecoder creates a delta-of-delta key decoder.
func NewKeyDeltaDecoder() KeyDeltaDecoder {
	return KeyDeltaDecoder{}
}

// All yields up to count keys decoded from data.
func (d KeyDeltaDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		var (
			offset    int
			key       int64
			prevDelta int64
		)

		for i := 0; i < count && offset < len(data); i++ {
			u, n := binary.Uvarint(data[offset:])
			if n <= 0 {
				return
			}
			offset += n

			v := unzigzag(u)
			switch i {
			case 0:
				key = v
			case 1:
				prevDelta = v
				key += v
			default:
				prevDelta += v
				key += prevDelta
			}

			if !yield(key) {
				return
			}
		}
	}
}

// At decodes keys up to index and returns the key found there.
// Delta-encoded keys cannot be addressed directly, so At costs O(index).
func (d KeyDeltaDecoder) At(data []byte, index int, count int) (int64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for k := range d.All(data, index+1) {
		if i == index {
			return k, true
		}
		i++
	}

	return 0, false
}
