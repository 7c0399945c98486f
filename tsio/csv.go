package tsio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/index"
	"github.com/arloliu/tsx/internal/options"
	"github.com/arloliu/tsx/series"
)

// RecordParser converts one CSV record into a data point.
type RecordParser[K comparable, V any] func(record []string) (series.DataPoint[K, V], error)

// RecordFormatter converts a data point into one CSV record.
type RecordFormatter[K comparable, V any] func(dp series.DataPoint[K, V]) ([]string, error)

type csvConfig struct {
	header    []string
	hasHeader bool
	comma     rune
	logger    *zap.Logger
}

// CSVOption configures ReadCSV and WriteCSV.
type CSVOption = options.Option[*csvConfig]

func newCSVConfig(opts []CSVOption) (*csvConfig, error) {
	cfg := &csvConfig{comma: ',', logger: zap.NewNop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithHeader declares a header record. Readers skip the first record;
// writers emit names before the first point.
func WithHeader(names ...string) CSVOption {
	return options.NoError(func(c *csvConfig) {
		c.header = names
		c.hasHeader = true
	})
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(comma rune) CSVOption {
	return options.New(func(c *csvConfig) error {
		if comma == '\r' || comma == '\n' || comma == '"' {
			return fmt.Errorf("%w: invalid csv delimiter %q", errs.ErrInvalidConfig, comma)
		}
		c.comma = comma

		return nil
	})
}

// WithCSVLogger sets the logger used for debug diagnostics.
func WithCSVLogger(logger *zap.Logger) CSVOption {
	return options.New(func(c *csvConfig) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		c.logger = logger

		return nil
	})
}

// ReadCSV reads every record of r through parse.
//
// Records are kept in file order. Parse errors are reported with the 1-based
// record number.
func ReadCSV[K comparable, V any](r io.Reader, parse RecordParser[K, V], compare index.CompareFunc[K], opts ...CSVOption) (*series.TimeSeries[K, V], error) {
	cfg, err := newCSVConfig(opts)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	cr.ReuseRecord = true

	var points []series.DataPoint[K, V]
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tsio: csv: %w", err)
		}
		if line == 1 && cfg.hasHeader {
			continue
		}

		dp, err := parse(record)
		if err != nil {
			return nil, fmt.Errorf("tsio: csv record %d: %w", line, err)
		}
		points = append(points, dp)
	}
	cfg.logger.Debug("csv read", zap.Int("points", len(points)))

	return series.FromDataPointsUnchecked(points, compare), nil
}

// ReadCSVFile is ReadCSV over the file at path.
func ReadCSVFile[K comparable, V any](path string, parse RecordParser[K, V], compare index.CompareFunc[K], opts ...CSVOption) (ts *series.TimeSeries[K, V], err error) {
	err = withFile(path, func(r io.Reader) error {
		ts, err = ReadCSV(r, parse, compare, opts...)
		return err
	})

	return ts, err
}

// WriteCSV writes every point of ts through format, in series order.
func WriteCSV[K comparable, V any](w io.Writer, ts *series.TimeSeries[K, V], format RecordFormatter[K, V], opts ...CSVOption) error {
	cfg, err := newCSVConfig(opts)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = cfg.comma

	if cfg.hasHeader {
		if err := cw.Write(cfg.header); err != nil {
			return fmt.Errorf("tsio: csv header: %w", err)
		}
	}

	for dp := range ts.All() {
		record, err := format(dp)
		if err != nil {
			return fmt.Errorf("tsio: csv format %v: %w", dp.Key, err)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("tsio: csv: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("tsio: csv flush: %w", err)
	}
	cfg.logger.Debug("csv written", zap.Int("points", ts.Len()))

	return nil
}

// WriteCSVFile is WriteCSV into the file at path, created or truncated.
func WriteCSVFile[K comparable, V any](path string, ts *series.TimeSeries[K, V], format RecordFormatter[K, V], opts ...CSVOption) error {
	return createFile(path, func(w io.Writer) error {
		return WriteCSV(w, ts, format, opts...)
	})
}

// ParseTimeFloat parses records of the form key,value with time keys.
//
// With an empty layout, keys are parsed by cast.ToTimeInDefaultLocationE,
// which accepts RFC 3339 and the other common layouts, in UTC when the key has
// no zone. Otherwise keys are parsed with time.Parse(layout). Keys are
// returned in UTC either way.
func ParseTimeFloat(layout string) RecordParser[time.Time, float64] {
	return func(record []string) (series.DataPoint[time.Time, float64], error) {
		var dp series.DataPoint[time.Time, float64]
		if len(record) < 2 {
			return dp, fmt.Errorf("expected 2 fields, got %d", len(record))
		}

		var err error
		if layout == "" {
			dp.Key, err = cast.ToTimeInDefaultLocationE(record[0], time.UTC)
		} else {
			dp.Key, err = time.Parse(layout, record[0])
		}
		if err != nil {
			return dp, err
		}
		dp.Key = dp.Key.UTC()

		dp.Value, err = cast.ToFloat64E(record[1])

		return dp, err
	}
}

// ParseIntFloat parses records of the form key,value with int64 keys.
func ParseIntFloat(record []string) (series.DataPoint[int64, float64], error) {
	var dp series.DataPoint[int64, float64]
	if len(record) < 2 {
		return dp, fmt.Errorf("expected 2 fields, got %d", len(record))
	}

	var err error
	if dp.Key, err = cast.ToInt64E(record[0]); err != nil {
		return dp, err
	}
	dp.Value, err = cast.ToFloat64E(record[1])

	return dp, err
}

// FormatTimeFloat formats time keys with layout, time.RFC3339Nano when empty.
func FormatTimeFloat(layout string) RecordFormatter[time.Time, float64] {
	if layout == "" {
		layout = time.RFC3339Nano
	}

	return func(dp series.DataPoint[time.Time, float64]) ([]string, error) {
		return []string{dp.Key.Format(layout), cast.ToString(dp.Value)}, nil
	}
}

// FormatIntFloat formats int64 keys in base 10.
func FormatIntFloat(dp series.DataPoint[int64, float64]) ([]string, error) {
	return []string{cast.ToString(dp.Key), cast.ToString(dp.Value)}, nil
}
