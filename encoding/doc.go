// Package encoding implements the columnar key and value encoders of the tsx
// blob format.
//
// Every encoder appends to a pooled buffer and implements ColumnarEncoder;
// every decoder is stateless and implements ColumnarDecoder over the bytes
// produced by the matching encoder.
//
// # Built-in Implementations
//
// Keys are int64 values, Unix nanoseconds for time keys:
//   - KeyRawEncoder / KeyRawDecoder: fixed 8 bytes per key in the configured
//     byte order. Random access in O(1).
//   - KeyDeltaEncoder / KeyDeltaDecoder: delta-of-delta with zigzag varints.
//     Regular intervals cost one byte per key; access is sequential.
//
// Values are float64:
//   - ValueRawEncoder / ValueRawDecoder: IEEE 754 bits, 8 bytes per value.
//
// # Usage
//
//	enc := encoding.NewKeyDeltaEncoder()
//	defer enc.Finish()
//
//	enc.WriteSlice(keys)
//	payload := bytes.Clone(enc.Bytes())
//
//	dec := encoding.NewKeyDeltaDecoder()
//	for k := range dec.All(payload, len(keys)) {
//	    ...
//	}
package encoding
