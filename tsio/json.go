package tsio

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/tsx/index"
	"github.com/arloliu/tsx/series"
)

// JSONStyle selects the layout of WriteJSON.
type JSONStyle uint8

const (
	// Compact writes the array on a single line.
	Compact JSONStyle = iota
	// Pretty indents one record per line.
	Pretty
)

func (s JSONStyle) String() string {
	switch s {
	case Compact:
		return "Compact"
	case Pretty:
		return "Pretty"
	default:
		return "Unknown"
	}
}

// ReadJSON reads a JSON array of {"timestamp": key, "value": value} records.
//
// Time keys are converted to UTC so that equal instants compare equal with ==.
// The array is decoded one record at a time, so the input is never held as a
// whole in memory.
func ReadJSON[K comparable, V any](r io.Reader, compare index.CompareFunc[K]) (*series.TimeSeries[K, V], error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("tsio: json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("tsio: json: expected array, got %v", tok)
	}

	var points []series.DataPoint[K, V]
	for dec.More() {
		var dp series.DataPoint[K, V]
		if err := dec.Decode(&dp); err != nil {
			return nil, fmt.Errorf("tsio: json record %d: %w", len(points)+1, err)
		}
		if key, ok := any(&dp.Key).(*time.Time); ok {
			*key = key.UTC()
		}
		points = append(points, dp)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("tsio: json: %w", err)
	}

	return series.FromDataPointsUnchecked(points, compare), nil
}

// ReadJSONFile is ReadJSON over the file at path.
func ReadJSONFile[K comparable, V any](path string, compare index.CompareFunc[K]) (ts *series.TimeSeries[K, V], err error) {
	err = withFile(path, func(r io.Reader) error {
		ts, err = ReadJSON[K, V](r, compare)
		return err
	})

	return ts, err
}

// WriteJSON writes ts as a JSON array of records followed by a newline.
// An empty series is written as [].
func WriteJSON[K comparable, V any](w io.Writer, ts *series.TimeSeries[K, V], style JSONStyle) error {
	enc := json.NewEncoder(w)
	if style == Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(ts.Points()); err != nil {
		return fmt.Errorf("tsio: json: %w", err)
	}

	return nil
}

// WriteJSONFile is WriteJSON into the file at path, created or truncated.
func WriteJSONFile[K comparable, V any](path string, ts *series.TimeSeries[K, V], style JSONStyle) error {
	return createFile(path, func(w io.Writer) error {
		return WriteJSON(w, ts, style)
	})
}
