package tsio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"time"

	"go.uber.org/multierr"

	"github.com/arloliu/tsx/endian"
	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/index"
	"github.com/arloliu/tsx/internal/options"
	"github.com/arloliu/tsx/internal/pool"
	"github.com/arloliu/tsx/series"
)

// DefaultMaxFrameSize is the largest frame payload accepted by default.
const DefaultMaxFrameSize = 1 << 20

const frameLenSize = 4

// Marshaler appends the encoding of dp to dst and returns the extended slice.
type Marshaler[K comparable, V any] func(dst []byte, dp series.DataPoint[K, V]) ([]byte, error)

// Unmarshaler decodes one frame payload. data is only valid during the call.
type Unmarshaler[K comparable, V any] func(data []byte) (series.DataPoint[K, V], error)

type frameConfig struct {
	engine       endian.EndianEngine
	maxFrameSize int
}

// FrameOption configures a FrameWriter or FrameReader.
type FrameOption = options.Option[*frameConfig]

func newFrameConfig(opts []FrameOption) (*frameConfig, error) {
	cfg := &frameConfig{
		engine:       endian.GetLittleEndianEngine(),
		maxFrameSize: DefaultMaxFrameSize,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFrameEndian sets the byte order of the length prefix.
func WithFrameEndian(engine endian.EndianEngine) FrameOption {
	return options.New(func(c *frameConfig) error {
		if engine == nil {
			return fmt.Errorf("%w: nil endian engine", errs.ErrInvalidConfig)
		}
		c.engine = engine

		return nil
	})
}

// WithMaxFrameSize bounds the payload size of a single frame.
func WithMaxFrameSize(size int) FrameOption {
	return options.New(func(c *frameConfig) error {
		if size <= 0 || uint64(size) > math.MaxUint32 {
			return fmt.Errorf("%w: max frame size %d", errs.ErrInvalidConfig, size)
		}
		c.maxFrameSize = size

		return nil
	})
}

// FrameWriter writes one length-prefixed frame per point:
// a uint32 payload length followed by the payload produced by a Marshaler.
type FrameWriter[K comparable, V any] struct {
	dst     io.Writer
	w       *bufio.Writer
	marshal Marshaler[K, V]
	cfg     *frameConfig
}

// NewFrameWriter creates a buffered frame writer over w.
func NewFrameWriter[K comparable, V any](w io.Writer, marshal Marshaler[K, V], opts ...FrameOption) (*FrameWriter[K, V], error) {
	cfg, err := newFrameConfig(opts)
	if err != nil {
		return nil, err
	}

	return &FrameWriter[K, V]{
		dst:     w,
		w:       bufio.NewWriter(w),
		marshal: marshal,
		cfg:     cfg,
	}, nil
}

// Write writes dp as one frame. A payload above the maximum frame size is
// rejected with errs.ErrFrameTooLarge and nothing is written.
func (fw *FrameWriter[K, V]) Write(dp series.DataPoint[K, V]) error {
	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	buf.B = append(buf.B, 0, 0, 0, 0)
	frame, err := fw.marshal(buf.B, dp)
	if err != nil {
		return fmt.Errorf("tsio: marshal frame: %w", err)
	}
	buf.B = frame

	size := len(frame) - frameLenSize
	if size > fw.cfg.maxFrameSize {
		return fmt.Errorf("%w: %d > %d", errs.ErrFrameTooLarge, size, fw.cfg.maxFrameSize)
	}
	fw.cfg.engine.PutUint32(frame, uint32(size)) //nolint:gosec

	if _, err := fw.w.Write(frame); err != nil {
		return fmt.Errorf("tsio: write frame: %w", err)
	}

	return nil
}

// WriteSeq writes every point of seq and stops at the first error.
func (fw *FrameWriter[K, V]) WriteSeq(seq iter.Seq[series.DataPoint[K, V]]) error {
	for dp := range seq {
		if err := fw.Write(dp); err != nil {
			return err
		}
	}

	return nil
}

// Flush writes buffered frames to the underlying writer.
func (fw *FrameWriter[K, V]) Flush() error {
	return fw.w.Flush()
}

// Close flushes buffered frames and closes the underlying writer when it is
// an io.Closer. Both errors are reported.
func (fw *FrameWriter[K, V]) Close() error {
	err := fw.w.Flush()
	if c, ok := fw.dst.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}

	return err
}

// FrameReader reads frames written by FrameWriter.
//
// Like bufio.Scanner, iteration stops at the first error, which is then
// reported by Err. A clean end of stream is not an error.
type FrameReader[K comparable, V any] struct {
	r         *bufio.Reader
	unmarshal Unmarshaler[K, V]
	cfg       *frameConfig
	header    [frameLenSize]byte
	payload   []byte
	err       error
}

// NewFrameReader creates a buffered frame reader over r.
func NewFrameReader[K comparable, V any](r io.Reader, unmarshal Unmarshaler[K, V], opts ...FrameOption) (*FrameReader[K, V], error) {
	cfg, err := newFrameConfig(opts)
	if err != nil {
		return nil, err
	}

	return &FrameReader[K, V]{
		r:         bufio.NewReader(r),
		unmarshal: unmarshal,
		cfg:       cfg,
	}, nil
}

// Next reads the next frame. It returns io.EOF at a clean end of stream and
// io.ErrUnexpectedEOF, wrapped, for a truncated frame.
func (fr *FrameReader[K, V]) Next() (series.DataPoint[K, V], error) {
	var zero series.DataPoint[K, V]

	if _, err := io.ReadFull(fr.r, fr.header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, io.EOF
		}

		return zero, fmt.Errorf("tsio: read frame header: %w", err)
	}

	size := int(fr.cfg.engine.Uint32(fr.header[:]))
	if size > fr.cfg.maxFrameSize {
		return zero, fmt.Errorf("%w: %d > %d", errs.ErrFrameTooLarge, size, fr.cfg.maxFrameSize)
	}

	if cap(fr.payload) < size {
		fr.payload = make([]byte, size)
	}
	fr.payload = fr.payload[:size]
	if _, err := io.ReadFull(fr.r, fr.payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return zero, fmt.Errorf("tsio: read frame payload: %w", err)
	}

	dp, err := fr.unmarshal(fr.payload)
	if err != nil {
		return zero, fmt.Errorf("tsio: unmarshal frame: %w", err)
	}

	return dp, nil
}

// Points yields frames until the end of stream or the first error.
func (fr *FrameReader[K, V]) Points() iter.Seq[series.DataPoint[K, V]] {
	return func(yield func(series.DataPoint[K, V]) bool) {
		for fr.err == nil {
			dp, err := fr.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				fr.err = err
				return
			}
			if !yield(dp) {
				return
			}
		}
	}
}

// Err returns the error that stopped Points, if any.
func (fr *FrameReader[K, V]) Err() error {
	return fr.err
}

// ReadFrames reads every frame of r into a series in arrival order.
func ReadFrames[K comparable, V any](r io.Reader, unmarshal Unmarshaler[K, V], compare index.CompareFunc[K], opts ...FrameOption) (*series.TimeSeries[K, V], error) {
	fr, err := NewFrameReader(r, unmarshal, opts...)
	if err != nil {
		return nil, err
	}

	ts := series.CollectUnchecked(fr.Points(), compare)
	if err := fr.Err(); err != nil {
		return nil, err
	}

	return ts, nil
}

// TimeFloatMarshaler encodes a time/float point as two 8-byte words:
// Unix nanoseconds and IEEE 754 bits, in the byte order of engine.
func TimeFloatMarshaler(engine endian.EndianEngine) Marshaler[time.Time, float64] {
	return func(dst []byte, dp series.DataPoint[time.Time, float64]) ([]byte, error) {
		dst = engine.AppendUint64(dst, uint64(dp.Key.UnixNano())) //nolint:gosec
		return engine.AppendUint64(dst, math.Float64bits(dp.Value)), nil
	}
}

// TimeFloatUnmarshaler decodes frames written by TimeFloatMarshaler. Keys are in UTC.
func TimeFloatUnmarshaler(engine endian.EndianEngine) Unmarshaler[time.Time, float64] {
	return func(data []byte) (series.DataPoint[time.Time, float64], error) {
		if len(data) != 16 {
			return series.DataPoint[time.Time, float64]{}, fmt.Errorf("%w: time/float frame of %d bytes", errs.ErrPayloadCorrupted, len(data))
		}

		return series.DataPoint[time.Time, float64]{
			Key:   time.Unix(0, int64(engine.Uint64(data))).UTC(), //nolint:gosec
			Value: math.Float64frombits(engine.Uint64(data[8:])),
		}, nil
	}
}
