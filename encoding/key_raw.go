package encoding

import (
	"iter"

	"github.com/arloliu/tsx/endian"
	"github.com/arloliu/tsx/internal/pool"
)

// KeyRawEncoder stores int64 keys as fixed 8-byte words in the byte order of
// its endian engine.
type KeyRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[int64] = (*KeyRawEncoder)(nil)

// NewKeyRawEncoder creates a raw key encoder using engine for byte order.
func NewKeyRawEncoder(engine endian.EndianEngine) *KeyRawEncoder {
	return &KeyRawEncoder{
		buf:    pool.GetColumnBuffer(),
		engine: engine,
	}
}

// Write encodes a single key.
func (e *KeyRawEncoder) Write(key int64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(key)) //nolint:gosec
}

// WriteSlice encodes keys in order with a single buffer growth.
func (e *KeyRawEncoder) WriteSlice(keys []int64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count += len(keys)
	e.buf.Grow(len(keys) * 8)
	for _, k := range keys {
		e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(k)) //nolint:gosec
	}
}

// Bytes returns the encoded keys.
func (e *KeyRawEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded keys.
func (e *KeyRawEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes, always 8*Len().
func (e *KeyRawEncoder) Size() int {
	return e.buf.Len()
}

// Reset is a no-op: raw keys carry no sequence state.
func (e *KeyRawEncoder) Reset() {}

// Finish returns the buffer to the pool.
func (e *KeyRawEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// KeyRawDecoder decodes keys produced by KeyRawEncoder.
type KeyRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[int64] = KeyRawDecoder{}

// NewKeyRawDecoder creates a raw key decoder. engine must match the encoder's.
func NewKeyRawDecoder(engine endian.EndianEngine) KeyRawDecoder {
	return KeyRawDecoder{engine: engine}
}

// All yields up to count keys decoded from data.
func (d KeyRawDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		n := min(count, len(data)/8)
		for i := range n {
			if !yield(int64(d.engine.Uint64(data[i*8:]))) { //nolint:gosec
				return
			}
		}
	}
}

// At returns the key at index in O(1).
func (d KeyRawDecoder) At(data []byte, index int, count int) (int64, bool) {
	if index < 0 || index >= count || (index+1)*8 > len(data) {
		return 0, false
	}

	return int64(d.engine.Uint64(data[index*8:])), true //nolint:gosec
}
