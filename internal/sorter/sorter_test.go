package sorter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"mediasort/internal/config"
	"mediasort/internal/console"
	"mediasort/internal/progress"
	"mediasort/internal/testsupport"
)

func runSorter(t *testing.T, cfg *config.Config, input string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	printer := console.NewWithStreams(&out, strings.NewReader(input), false, false)
	store := progress.NewStore(cfg.StatusFile, nil)
	s := NewWithDependencies(cfg, nil, printer, store)
	err := s.Run(context.Background())
	return out.String(), err
}

func TestRunSortsIntoYearDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Sources[0], "IMG_20230510_120000.jpg"), 64)
	testsupport.WriteFile(t, filepath.Join(cfg.Sources[0], "trip", "VID_20211215_080000.mp4"), 128)

	if _, err := runSorter(t, cfg, ""); err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(cfg.OutputDir, "2023", "IMG_20230510_120000.jpg"),
		filepath.Join(cfg.OutputDir, "2021", "trip", "VID_20211215_080000.mp4"),
	}
	for _, path := range want {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected sorted file: %v", err)
		}
	}
	// Copy mode keeps the originals in place.
	if _, err := os.Stat(filepath.Join(cfg.Sources[0], "IMG_20230510_120000.jpg")); err != nil {
		t.Fatalf("source removed in copy mode: %v", err)
	}
}

func TestRunResumeSkipsCompletedWork(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Sources[0], "IMG_20230510_120000.jpg"), 64)

	if _, err := runSorter(t, cfg, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.StatusFile); err != nil {
		t.Fatalf("status file must survive a declined cleanup prompt: %v", err)
	}

	cfg.Resume = true
	output, err := runSorter(t, cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "Resuming from previous operation") {
		t.Fatal("expected the resume notice")
	}
	if !strings.Contains(output, "No files to process") {
		t.Fatalf("second run must skip completed work, got:\n%s", output)
	}
}

func TestRunCleanupDeletesStatusOnConfirm(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Sources[0], "IMG_20230510_120000.jpg"), 64)

	if _, err := runSorter(t, cfg, "y\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.StatusFile); !os.IsNotExist(err) {
		t.Fatal("confirmed cleanup must delete the status file")
	}
}

func TestRunDryRunLeavesTreeUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDryRun())
	testsupport.WriteFile(t, filepath.Join(cfg.Sources[0], "IMG_20230510_120000.jpg"), 64)

	output, err := runSorter(t, cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "Would copy") {
		t.Fatalf("dry run must announce intended transfers, got:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "2023")); !os.IsNotExist(err) {
		t.Fatal("dry run must not create output directories")
	}
}

func TestRunRefusesWhenLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Sources[0], "IMG_20230510_120000.jpg"), 64)

	lock := flock.New(cfg.StatusFile + ".lock")
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer lock.Unlock()

	if _, err := runSorter(t, cfg, ""); err == nil {
		t.Fatal("run must fail while another run holds the lock")
	}
}

func TestRunDeclinedResumeCanDeleteProgress(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Sources[0], "IMG_20230510_120000.jpg"), 64)

	if _, err := runSorter(t, cfg, ""); err != nil {
		t.Fatal(err)
	}

	// Decline resume, confirm deletion, then decline the final cleanup.
	output, err := runSorter(t, cfg, "n\ny\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "Found existing progress") {
		t.Fatalf("expected the resume offer, got:\n%s", output)
	}
}
