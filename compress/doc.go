// Package compress implements the payload codecs of the tsx blob format.
//
// A blob stores its key and value columns as separately compressed payloads.
// Encoding exploits the structure of the column (delta-of-delta keys);
// compression then squeezes the encoded bytes with a general-purpose codec:
//
//   - None (format.CompressionNone): pass-through.
//   - Zstd (format.CompressionZstd): best ratio, klauspost/compress/zstd.
//   - S2 (format.CompressionS2): balanced, klauspost/compress/s2.
//   - LZ4 (format.CompressionLZ4): fastest decompression, pierrec/lz4.
//
// GetCodec returns a shared built-in codec; CreateCodec builds a fresh one.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
package compress
