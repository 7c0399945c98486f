package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type engineConfig struct {
	window  int
	label   string
	applied []string
}

func withWindow(n int) Option[*engineConfig] {
	return New(func(c *engineConfig) error {
		if n <= 0 {
			return errors.New("window must be positive")
		}
		c.window = n
		c.applied = append(c.applied, "window")

		return nil
	})
}

func withLabel(label string) Option[*engineConfig] {
	return NoError(func(c *engineConfig) {
		c.label = label
		c.applied = append(c.applied, "label")
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &engineConfig{}

	err := Apply(cfg, withLabel("a"), withWindow(3), withLabel("b"))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.window)
	require.Equal(t, "b", cfg.label)
	require.Equal(t, []string{"label", "window", "label"}, cfg.applied)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &engineConfig{}

	err := Apply(cfg, withWindow(0), withLabel("never"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "window must be positive")
	require.Empty(t, cfg.label)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &engineConfig{}

	require.NoError(t, Apply(cfg, nil, withWindow(2)))
	require.Equal(t, 2, cfg.window)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &engineConfig{window: 7}

	require.NoError(t, Apply(cfg))
	require.Equal(t, 7, cfg.window)
}
