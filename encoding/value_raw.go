package encoding

import (
	"iter"
	"math"

	"github.com/arloliu/tsx/endian"
	"github.com/arloliu/tsx/internal/pool"
)

// ValueRawEncoder stores float64 values as their IEEE 754 bits, 8 bytes each.
type ValueRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*ValueRawEncoder)(nil)

// NewValueRawEncoder creates a raw float encoder using engine for byte order.
func NewValueRawEncoder(engine endian.EndianEngine) *ValueRawEncoder {
	return &ValueRawEncoder{
		buf:    pool.GetColumnBuffer(),
		engine: engine,
	}
}

// Write encodes a single value.
func (e *ValueRawEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(val))
}

// WriteSlice encodes values in order with a single buffer growth.
func (e *ValueRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count += len(values)
	e.buf.Grow(len(values) * 8)
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
	}
}

// Bytes returns the encoded values.
func (e *ValueRawEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *ValueRawEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *ValueRawEncoder) Size() int {
	return e.buf.Len()
}

// Reset is a no-op.
func (e *ValueRawEncoder) Reset() {}

// Finish returns the buffer to the pool.
func (e *ValueRawEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// ValueRawDecoder decodes values produced by ValueRawEncoder.
type ValueRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = ValueRawDecoder{}

// NewValueRawDecoder creates a raw float decoder. engine must match the encoder's.
func NewValueRawDecoder(engine endian.EndianEngine) ValueRawDecoder {
	return ValueRawDecoder{engine: engine}
}

// All yields up to count values decoded from data.
func (d ValueRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := min(count, len(data)/8)
		for i := range n {
			if !yield(math.Float64frombits(d.engine.Uint64(data[i*8:]))) {
				return
			}
		}
	}
}

// At returns the value at index in O(1).
func (d ValueRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count || (index+1)*8 > len(data) {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[index*8:])), true
}
