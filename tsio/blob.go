package tsio

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/tsx/compress"
	"github.com/arloliu/tsx/encoding"
	"github.com/arloliu/tsx/endian"
	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/format"
	"github.com/arloliu/tsx/index"
	"github.com/arloliu/tsx/internal/hash"
	"github.com/arloliu/tsx/internal/options"
	"github.com/arloliu/tsx/internal/pool"
	"github.com/arloliu/tsx/series"
)

// Blob layout:
//
//	[0:4]   magic "TSXB"
//	[4]     version
//	[5]     endian flag
//	[6]     key encoding
//	[7]     key compression
//	[8]     value compression
//	[9:13]  point count          uint32
//	[13:17] key payload length   uint32
//	[17:21] value payload length uint32
//	[21:29] series id            uint64, xxHash64 of the series name or 0
//	[29:]   key payload, value payload
//
// Multi-byte header fields use the byte order recorded by the endian flag.
const (
	blobMagic      = "TSXB"
	blobVersion    = byte(1)
	blobHeaderSize = 29
)

// KeyCodec maps series keys to and from the int64 words of the key column.
type KeyCodec[K comparable] interface {
	ToInt64(key K) int64
	FromInt64(v int64) K
}

type timeKeys struct{}

func (timeKeys) ToInt64(key time.Time) int64 { return key.UnixNano() }
func (timeKeys) FromInt64(v int64) time.Time { return time.Unix(0, v).UTC() }

// TimeKeys stores time keys as Unix nanoseconds and decodes them in UTC.
// Instants outside the years 1678 to 2262 do not fit.
func TimeKeys() KeyCodec[time.Time] {
	return timeKeys{}
}

// Integer is the set of key types stored by IntKeys.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type intKeys[K Integer] struct{}

func (intKeys[K]) ToInt64(key K) int64 { return int64(key) }
func (intKeys[K]) FromInt64(v int64) K { return K(v) }

// IntKeys stores integer keys as int64. uint64 keys above math.MaxInt64 wrap
// but round-trip unchanged.
func IntKeys[K Integer]() KeyCodec[K] {
	return intKeys[K]{}
}

// BlobHeader is the decoded header of a blob.
type BlobHeader struct {
	Version          byte
	Engine           endian.EndianEngine
	KeyEncoding      format.EncodingType
	KeyCompression   format.CompressionType
	ValueCompression format.CompressionType
	Count            int
	KeyPayloadLen    int
	ValuePayloadLen  int
	SeriesID         uint64
}

type blobConfig struct {
	engine           endian.EndianEngine
	keyEncoding      format.EncodingType
	keyCompression   format.CompressionType
	valueCompression format.CompressionType
	seriesName       string
	logger           *zap.Logger
}

// BlobOption configures a BlobEncoder.
type BlobOption = options.Option[*blobConfig]

// WithBlobEndian sets the byte order of the header and the raw columns.
// Little-endian by default.
func WithBlobEndian(engine endian.EndianEngine) BlobOption {
	return options.New(func(c *blobConfig) error {
		if engine == nil {
			return fmt.Errorf("%w: nil endian engine", errs.ErrInvalidConfig)
		}
		c.engine = engine

		return nil
	})
}

// WithKeyEncoding sets the key column encoding, format.TypeDelta by default.
func WithKeyEncoding(enc format.EncodingType) BlobOption {
	return options.New(func(c *blobConfig) error {
		if !enc.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidEncoding, enc)
		}
		c.keyEncoding = enc

		return nil
	})
}

// WithKeyCompression sets the key payload compression, none by default.
func WithKeyCompression(comp format.CompressionType) BlobOption {
	return options.New(func(c *blobConfig) error {
		if !comp.Valid() {
			return fmt.Errorf("%w: key %s", errs.ErrInvalidCompression, comp)
		}
		c.keyCompression = comp

		return nil
	})
}

// WithValueCompression sets the value payload compression, zstd by default.
func WithValueCompression(comp format.CompressionType) BlobOption {
	return options.New(func(c *blobConfig) error {
		if !comp.Valid() {
			return fmt.Errorf("%w: value %s", errs.ErrInvalidCompression, comp)
		}
		c.valueCompression = comp

		return nil
	})
}

// WithSeriesName records the xxHash64 of name as the series id of the blob.
func WithSeriesName(name string) BlobOption {
	return options.NoError(func(c *blobConfig) {
		c.seriesName = name
	})
}

// WithBlobLogger sets the logger used for debug diagnostics.
func WithBlobLogger(logger *zap.Logger) BlobOption {
	return options.New(func(c *blobConfig) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		c.logger = logger

		return nil
	})
}

// BlobEncoder encodes float-valued series into blobs. It holds no state
// between calls and is safe for concurrent use.
type BlobEncoder[K comparable] struct {
	keys KeyCodec[K]
	cfg  blobConfig
}

// NewBlobEncoder creates an encoder mapping keys through keys.
func NewBlobEncoder[K comparable](keys KeyCodec[K], opts ...BlobOption) (*BlobEncoder[K], error) {
	cfg := blobConfig{
		engine:           endian.GetLittleEndianEngine(),
		keyEncoding:      format.TypeDelta,
		keyCompression:   format.CompressionNone,
		valueCompression: format.CompressionZstd,
		logger:           zap.NewNop(),
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &BlobEncoder[K]{keys: keys, cfg: cfg}, nil
}

// Encode returns the blob of ts. Keys are stored in series order.
func (e *BlobEncoder[K]) Encode(ts *series.TimeSeries[K, float64]) ([]byte, error) {
	n := ts.Len()
	if uint64(n) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", errs.ErrDataPointCountTooBig, n)
	}

	keys, cleanup := pool.GetInt64Slice(n)
	defer cleanup()
	for i, k := range ts.Index().Values() {
		keys[i] = e.keys.ToInt64(k)
	}

	keyEnc := e.newKeyEncoder()
	defer keyEnc.Finish()
	keyEnc.WriteSlice(keys)

	valueEnc := encoding.NewValueRawEncoder(e.cfg.engine)
	defer valueEnc.Finish()
	valueEnc.WriteSlice(ts.Values())

	keyPayload, keyStats, err := compress.Compress(e.cfg.keyCompression, keyEnc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("tsio: compress keys: %w", err)
	}
	valuePayload, valueStats, err := compress.Compress(e.cfg.valueCompression, valueEnc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("tsio: compress values: %w", err)
	}

	var seriesID uint64
	if e.cfg.seriesName != "" {
		seriesID = hash.ID(e.cfg.seriesName)
	}

	engine := e.cfg.engine
	out := make([]byte, blobHeaderSize, blobHeaderSize+len(keyPayload)+len(valuePayload))
	copy(out, blobMagic)
	out[4] = blobVersion
	out[5] = endian.Flag(engine)
	out[6] = byte(e.cfg.keyEncoding)
	out[7] = byte(e.cfg.keyCompression)
	out[8] = byte(e.cfg.valueCompression)
	engine.PutUint32(out[9:], uint32(n))                  //nolint:gosec
	engine.PutUint32(out[13:], uint32(len(keyPayload)))   //nolint:gosec
	engine.PutUint32(out[17:], uint32(len(valuePayload))) //nolint:gosec
	engine.PutUint64(out[21:], seriesID)
	out = append(out, keyPayload...)
	out = append(out, valuePayload...)

	e.cfg.logger.Debug("blob encoded",
		zap.Int("points", n),
		zap.Stringer("keyEncoding", e.cfg.keyEncoding),
		zap.Stringer("keyCompression", e.cfg.keyCompression),
		zap.Float64("keyRatio", keyStats.CompressionRatio()),
		zap.Stringer("valueCompression", e.cfg.valueCompression),
		zap.Float64("valueRatio", valueStats.CompressionRatio()),
		zap.Int("bytes", len(out)),
	)

	return out, nil
}

func (e *BlobEncoder[K]) newKeyEncoder() encoding.ColumnarEncoder[int64] {
	if e.cfg.keyEncoding == format.TypeRaw {
		return encoding.NewKeyRawEncoder(e.cfg.engine)
	}

	return encoding.NewKeyDeltaEncoder()
}

// ReadBlobHeader decodes and validates the header of data.
func ReadBlobHeader(data []byte) (BlobHeader, error) {
	var h BlobHeader
	if len(data) < blobHeaderSize {
		return h, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidBlob, len(data))
	}
	if !bytes.Equal(data[:4], []byte(blobMagic)) {
		return h, fmt.Errorf("%w: %q", errs.ErrInvalidMagicNumber, data[:4])
	}

	h.Version = data[4]
	if h.Version != blobVersion {
		return h, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	engine, ok := endian.FromFlag(data[5])
	if !ok {
		return h, fmt.Errorf("%w: endian flag %#x", errs.ErrInvalidBlob, data[5])
	}
	h.Engine = engine

	h.KeyEncoding = format.EncodingType(data[6])
	if !h.KeyEncoding.Valid() {
		return h, fmt.Errorf("%w: %#x", errs.ErrInvalidEncoding, data[6])
	}
	h.KeyCompression = format.CompressionType(data[7])
	h.ValueCompression = format.CompressionType(data[8])
	if !h.KeyCompression.Valid() || !h.ValueCompression.Valid() {
		return h, fmt.Errorf("%w: key %#x, value %#x", errs.ErrInvalidCompression, data[7], data[8])
	}

	h.Count = int(engine.Uint32(data[9:]))
	h.KeyPayloadLen = int(engine.Uint32(data[13:]))
	h.ValuePayloadLen = int(engine.Uint32(data[17:]))
	h.SeriesID = engine.Uint64(data[21:])

	if want := blobHeaderSize + h.KeyPayloadLen + h.ValuePayloadLen; want != len(data) {
		return h, fmt.Errorf("%w: header declares %d bytes, got %d", errs.ErrInvalidBlob, want, len(data))
	}

	return h, nil
}

// DecodeBlob decodes a blob produced by BlobEncoder.Encode. Keys are mapped
// back through keys and compared with compare; their order is not validated.
func DecodeBlob[K comparable](data []byte, keys KeyCodec[K], compare index.CompareFunc[K]) (*series.TimeSeries[K, float64], error) {
	h, err := ReadBlobHeader(data)
	if err != nil {
		return nil, err
	}

	keyPayload := data[blobHeaderSize : blobHeaderSize+h.KeyPayloadLen]
	valuePayload := data[blobHeaderSize+h.KeyPayloadLen:]

	rawKeys, err := decompressPayload(h.KeyCompression, keyPayload, "key")
	if err != nil {
		return nil, err
	}
	rawValues, err := decompressPayload(h.ValueCompression, valuePayload, "value")
	if err != nil {
		return nil, err
	}

	// bound the column sizes before allocating Count elements
	if len(rawValues) != 8*h.Count {
		return nil, fmt.Errorf("%w: value column is %d bytes for %d values", errs.ErrPayloadCorrupted, len(rawValues), h.Count)
	}
	if len(rawKeys) < h.Count {
		return nil, fmt.Errorf("%w: key column is %d bytes for %d keys", errs.ErrPayloadCorrupted, len(rawKeys), h.Count)
	}

	var keyDec encoding.ColumnarDecoder[int64] = encoding.NewKeyDeltaDecoder()
	if h.KeyEncoding == format.TypeRaw {
		keyDec = encoding.NewKeyRawDecoder(h.Engine)
	}

	words, ok := encoding.DecodeAll(keyDec, rawKeys, h.Count)
	if !ok {
		return nil, fmt.Errorf("%w: key column holds %d of %d keys", errs.ErrPayloadCorrupted, len(words), h.Count)
	}
	values, ok := encoding.DecodeAll[float64](encoding.NewValueRawDecoder(h.Engine), rawValues, h.Count)
	if !ok {
		return nil, fmt.Errorf("%w: value column holds %d of %d values", errs.ErrPayloadCorrupted, len(values), h.Count)
	}

	if h.Count == 0 {
		return series.Empty[K, float64](compare), nil
	}

	out := make([]K, h.Count)
	for i, w := range words {
		out[i] = keys.FromInt64(w)
	}

	return series.NewUnchecked(index.New(out, compare), values), nil
}

func decompressPayload(comp format.CompressionType, payload []byte, target string) ([]byte, error) {
	codec, err := compress.CreateCodec(comp, target)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s payload: %w", errs.ErrPayloadCorrupted, target, err)
	}

	return raw, nil
}
