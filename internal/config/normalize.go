package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Normalize expands and absolutizes paths and fills derived defaults. It
// must run before Validate.
func (c *Config) Normalize() error {
	for i, source := range c.Sources {
		expanded, err := expandPath(source)
		if err != nil {
			return fmt.Errorf("source %s: %w", source, err)
		}
		c.Sources[i] = expanded
	}

	if c.OutputDir == "" {
		if len(c.Sources) > 0 {
			first := c.Sources[0]
			c.OutputDir = filepath.Join(filepath.Dir(first), filepath.Base(first)+defaultOutputDirSuffix)
		}
	} else {
		expanded, err := expandPath(c.OutputDir)
		if err != nil {
			return fmt.Errorf("output dir %s: %w", c.OutputDir, err)
		}
		c.OutputDir = expanded
	}

	if c.StatusFile == "" {
		c.StatusFile = defaultStatusFileName
	}
	expanded, err := expandPath(c.StatusFile)
	if err != nil {
		return fmt.Errorf("status file %s: %w", c.StatusFile, err)
	}
	c.StatusFile = expanded

	if c.NewYearCutoffHour <= 0 || c.NewYearCutoffHour > 23 {
		c.NewYearCutoffHour = defaultNewYearCutoffHour
	}
	if c.MaxRetryAttempts <= 0 {
		c.MaxRetryAttempts = defaultMaxRetryAttempts
	}
	if c.RetryDelaySeconds < 0 {
		c.RetryDelaySeconds = defaultRetryDelaySeconds
	}
	if c.SaveBatchSize <= 0 {
		c.SaveBatchSize = defaultSaveBatchSize
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}

	for i, ext := range c.ExtraMediaExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.ExtraMediaExtensions[i] = ext
	}

	return nil
}

// expandPath resolves a leading ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolutize path: %w", err)
	}
	return abs, nil
}
