package config

import (
	"errors"
	"fmt"
	"os"
)

// Validate checks for fatal configuration errors. It is called after
// Normalize and before any planning; failures abort the run.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("at least one source directory is required")
	}
	for _, source := range c.Sources {
		info, err := os.Stat(source)
		if err != nil {
			return fmt.Errorf("source directory does not exist: %s", source)
		}
		if !info.IsDir() {
			return fmt.Errorf("source is not a directory: %s", source)
		}
	}
	if c.OutputDir == "" {
		return errors.New("output directory could not be determined")
	}
	return nil
}
