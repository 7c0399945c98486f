package tsio

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// withFile opens path for reading and passes it to fn. The close error, if
// any, is combined with the error of fn.
func withFile(path string, fn func(io.Reader) error) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("tsio: open %s: %w", path, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	return fn(f)
}

// createFile creates or truncates path and passes it to fn. The close error,
// if any, is combined with the error of fn.
func createFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tsio: create %s: %w", path, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	return fn(f)
}
