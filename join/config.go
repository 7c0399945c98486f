package join

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/internal/options"
)

// Config holds the runtime settings of an Engine.
type Config struct {
	hashPrecompare bool
	logger         *zap.Logger
}

// Option configures an Engine.
type Option = options.Option[*Config]

func defaultConfig() Config {
	return Config{
		hashPrecompare: false,
		logger:         zap.NewNop(),
	}
}

// WithHashPrecompare enables the identical-index fast path.
//
// When enabled, HashInner and MergeAsof first compare xxHash64 fingerprints of
// both indexes. Equal fingerprints over equal lengths produce the identity
// alignment without building a lookup or walking both indexes. Fingerprinting
// costs a full pass over both indexes, so the flag pays off only when inputs
// are frequently identical. Disabled by default.
func WithHashPrecompare(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.hashPrecompare = enabled
	})
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return options.New(func(c *Config) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		c.logger = logger

		return nil
	})
}
