package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NewYearCutoffHour != defaultNewYearCutoffHour {
		t.Fatalf("cutoff = %d, want %d", cfg.NewYearCutoffHour, defaultNewYearCutoffHour)
	}
	if cfg.StatusFile != defaultStatusFileName {
		t.Fatalf("status file = %q", cfg.StatusFile)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("an explicitly requested config file must exist")
	}
}

func TestLoadOverlaysFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
move = true
new_year_cutoff_hour = 6
extra_media_extensions = ["insp", ".dng"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Move {
		t.Fatal("move not loaded")
	}
	if cfg.NewYearCutoffHour != 6 {
		t.Fatalf("cutoff = %d, want 6", cfg.NewYearCutoffHour)
	}
	// Untouched keys keep their defaults.
	if cfg.MaxRetryAttempts != defaultMaxRetryAttempts {
		t.Fatalf("retries = %d, want default", cfg.MaxRetryAttempts)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("move = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config must be rejected")
	}
}

func TestNormalizeDerivesOutputDir(t *testing.T) {
	source := filepath.Join(t.TempDir(), "photos")
	cfg := Default()
	cfg.Sources = []string{source}

	if err := cfg.Normalize(); err != nil {
		t.Fatal(err)
	}
	if want := source + "_sorted"; cfg.OutputDir != want {
		t.Fatalf("output dir = %q, want %q", cfg.OutputDir, want)
	}
}

func TestNormalizeKeepsExplicitOutputDir(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Sources = []string{filepath.Join(base, "photos")}
	cfg.OutputDir = filepath.Join(base, "elsewhere")

	if err := cfg.Normalize(); err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != filepath.Join(base, "elsewhere") {
		t.Fatalf("output dir = %q", cfg.OutputDir)
	}
}

func TestNormalizeClampsInvalidNumbers(t *testing.T) {
	cfg := Default()
	cfg.NewYearCutoffHour = -1
	cfg.MaxRetryAttempts = 0
	cfg.SaveBatchSize = -5

	if err := cfg.Normalize(); err != nil {
		t.Fatal(err)
	}
	if cfg.NewYearCutoffHour != defaultNewYearCutoffHour {
		t.Fatalf("cutoff = %d", cfg.NewYearCutoffHour)
	}
	if cfg.MaxRetryAttempts != defaultMaxRetryAttempts {
		t.Fatalf("retries = %d", cfg.MaxRetryAttempts)
	}
	if cfg.SaveBatchSize != defaultSaveBatchSize {
		t.Fatalf("batch = %d", cfg.SaveBatchSize)
	}
}

func TestNormalizeCanonicalizesExtraExtensions(t *testing.T) {
	cfg := Default()
	cfg.ExtraMediaExtensions = []string{"INSP", " .dng ", "raw"}

	if err := cfg.Normalize(); err != nil {
		t.Fatal(err)
	}
	want := []string{".insp", ".dng", ".raw"}
	for i, ext := range cfg.ExtraMediaExtensions {
		if ext != want[i] {
			t.Fatalf("ext[%d] = %q, want %q", i, ext, want[i])
		}
	}
}

func TestValidateRequiresExistingSourceDirs(t *testing.T) {
	base := t.TempDir()

	cfg := Default()
	cfg.OutputDir = filepath.Join(base, "out")
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty sources must fail")
	}

	cfg.Sources = []string{filepath.Join(base, "missing")}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("missing source: err = %v", err)
	}

	file := filepath.Join(base, "afile")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Sources = []string{file}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Fatalf("file source: err = %v", err)
	}

	dir := filepath.Join(base, "real")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg.Sources = []string{dir}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}
