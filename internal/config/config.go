package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full runtime configuration. Fields tagged toml:"-" are
// command-line only; everything else may also come from the config file.
type Config struct {
	Sources   []string `toml:"-"`
	OutputDir string   `toml:"output_dir"`

	DryRun        bool `toml:"-"`
	Move          bool `toml:"move"`
	MediaOnly     bool `toml:"media_only"`
	ExcludeHidden bool `toml:"exclude_hidden"`
	Resume        bool `toml:"-"`
	Verbose       bool `toml:"-"`

	StatusFile string `toml:"status_file"`

	NewYearCutoffHour int `toml:"new_year_cutoff_hour"`
	MaxRetryAttempts  int `toml:"max_retry_attempts"`
	RetryDelaySeconds int `toml:"retry_delay_seconds"`
	SaveBatchSize     int `toml:"save_batch_size"`

	// ExtraMediaExtensions widens the media-only filter, e.g. [".insp"].
	ExtraMediaExtensions []string `toml:"extra_media_extensions"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Load returns defaults overlaid with the TOML file at path. An empty path
// tries the default location; a missing file at the default location is not
// an error, while an explicitly requested file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfigPath returns the conventional config file location, or empty
// when the user config directory cannot be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mediasort", "config.toml")
}
