// Package testsupport provides shared fixtures for mediasort tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"mediasort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test:
// one source root, an output root, and a status file, all under t.TempDir().
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Sources = []string{filepath.Join(base, "source")}
	cfg.OutputDir = filepath.Join(base, "sorted")
	cfg.StatusFile = filepath.Join(base, ".media_sort_status.json")
	cfg.RetryDelaySeconds = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMediaOnly enables the media-only filter.
func WithMediaOnly() ConfigOption {
	return func(c *config.Config) { c.MediaOnly = true }
}

// WithExcludeHidden enables hidden-path exclusion.
func WithExcludeHidden() ConfigOption {
	return func(c *config.Config) { c.ExcludeHidden = true }
}

// WithMove switches the transfer mode from copy to move.
func WithMove() ConfigOption {
	return func(c *config.Config) { c.Move = true }
}

// WithDryRun enables dry-run mode.
func WithDryRun() ConfigOption {
	return func(c *config.Config) { c.DryRun = true }
}
