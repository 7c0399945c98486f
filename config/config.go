// Package config loads tsx settings from YAML and turns them into the option
// slices accepted by join.NewEngine, tsio.NewBlobEncoder and the frame
// reader and writer.
//
// A complete file looks like:
//
//	join:
//	  hashPrecompare: true
//	blob:
//	  endian: little
//	  keyEncoding: delta
//	  keyCompression: none
//	  valueCompression: zstd
//	  seriesName: cpu.load
//	stream:
//	  endian: big
//	  maxFrameSize: 65536
//	log:
//	  level: debug
//	  development: false
//
// Every field is optional; missing fields keep the library defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/tsx/endian"
	"github.com/arloliu/tsx/errs"
	"github.com/arloliu/tsx/format"
	"github.com/arloliu/tsx/join"
	"github.com/arloliu/tsx/tsio"
)

// Config is the root of a tsx YAML file.
type Config struct {
	Join   Join   `yaml:"join"`
	Blob   Blob   `yaml:"blob"`
	Stream Stream `yaml:"stream"`
	Log    Log    `yaml:"log"`
}

// Join configures join engines.
type Join struct {
	HashPrecompare bool `yaml:"hashPrecompare"`
}

// Blob configures blob encoders. Encoding and compression names are parsed
// case-insensitively.
type Blob struct {
	Endian           string `yaml:"endian"`
	KeyEncoding      string `yaml:"keyEncoding"`
	KeyCompression   string `yaml:"keyCompression"`
	ValueCompression string `yaml:"valueCompression"`
	SeriesName       string `yaml:"seriesName"`
}

// Stream configures frame readers and writers.
type Stream struct {
	Endian       string `yaml:"endian"`
	MaxFrameSize int    `yaml:"maxFrameSize"`
}

// Log configures the logger built by NewLogger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates YAML. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every named value without building anything.
func (c *Config) Validate() error {
	if _, err := c.BlobOptions(); err != nil {
		return err
	}
	if _, err := c.FrameOptions(); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}

	return nil
}

// JoinOptions returns the options for join.NewEngine.
func (c *Config) JoinOptions() []join.Option {
	return []join.Option{join.WithHashPrecompare(c.Join.HashPrecompare)}
}

// BlobOptions returns the options for tsio.NewBlobEncoder.
func (c *Config) BlobOptions() ([]tsio.BlobOption, error) {
	var opts []tsio.BlobOption

	if c.Blob.Endian != "" {
		engine, err := parseEndian(c.Blob.Endian)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tsio.WithBlobEndian(engine))
	}
	if c.Blob.KeyEncoding != "" {
		enc, err := format.ParseEncoding(c.Blob.KeyEncoding)
		if err != nil {
			return nil, fmt.Errorf("%w: blob.keyEncoding: %w", errs.ErrInvalidConfig, err)
		}
		opts = append(opts, tsio.WithKeyEncoding(enc))
	}
	if c.Blob.KeyCompression != "" {
		comp, err := format.ParseCompression(c.Blob.KeyCompression)
		if err != nil {
			return nil, fmt.Errorf("%w: blob.keyCompression: %w", errs.ErrInvalidConfig, err)
		}
		opts = append(opts, tsio.WithKeyCompression(comp))
	}
	if c.Blob.ValueCompression != "" {
		comp, err := format.ParseCompression(c.Blob.ValueCompression)
		if err != nil {
			return nil, fmt.Errorf("%w: blob.valueCompression: %w", errs.ErrInvalidConfig, err)
		}
		opts = append(opts, tsio.WithValueCompression(comp))
	}
	if c.Blob.SeriesName != "" {
		opts = append(opts, tsio.WithSeriesName(c.Blob.SeriesName))
	}

	return opts, nil
}

// FrameOptions returns the options for tsio.NewFrameWriter and tsio.NewFrameReader.
func (c *Config) FrameOptions() ([]tsio.FrameOption, error) {
	var opts []tsio.FrameOption

	if c.Stream.Endian != "" {
		engine, err := parseEndian(c.Stream.Endian)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tsio.WithFrameEndian(engine))
	}
	if c.Stream.MaxFrameSize < 0 {
		return nil, fmt.Errorf("%w: stream.maxFrameSize %d", errs.ErrInvalidConfig, c.Stream.MaxFrameSize)
	}
	if c.Stream.MaxFrameSize > 0 {
		opts = append(opts, tsio.WithMaxFrameSize(c.Stream.MaxFrameSize))
	}

	return opts, nil
}

// NewLogger builds a zap logger at the configured level, info by default.
// Development mode uses the console encoder and stack traces on warnings.
func (c *Config) NewLogger(opts ...zap.Option) (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build(opts...)
}

func (c *Config) level() (zapcore.Level, error) {
	if c.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}

	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return level, fmt.Errorf("%w: log.level: %w", errs.ErrInvalidConfig, err)
	}

	return level, nil
}

func parseEndian(s string) (endian.EndianEngine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little":
		return endian.GetLittleEndianEngine(), nil
	case "big":
		return endian.GetBigEndianEngine(), nil
	default:
		return nil, fmt.Errorf("%w: endian %q", errs.ErrInvalidConfig, s)
	}
}
