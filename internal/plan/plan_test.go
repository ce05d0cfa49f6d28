package plan

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"mediasort/internal/config"
	"mediasort/internal/console"
	"mediasort/internal/filedate"
	"mediasort/internal/progress"
	"mediasort/internal/testsupport"
)

func newTestPlanner(t *testing.T, cfg *config.Config) (*Planner, *progress.Store) {
	t.Helper()
	printer := console.NewWithStreams(&bytes.Buffer{}, strings.NewReader(""), false, false)
	store := progress.NewStore(cfg.StatusFile, nil)
	resolver := filedate.NewResolver(cfg.NewYearCutoffHour, nil)
	return NewPlanner(cfg, resolver, store, printer, nil), store
}

func TestPlanPreservesDirectoryStructure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := cfg.Sources[0]
	testsupport.WriteFile(t, filepath.Join(source, "trips", "VID_20231215_120000.mp4"), 64)
	testsupport.WriteFile(t, filepath.Join(source, "PXL_20220610_080000000.jpg"), 32)

	planner, _ := newTestPlanner(t, cfg)
	ops, stats, err := planner.Plan(context.Background(), cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.SkippedNonMedia != 0 {
		t.Fatalf("skipped = %d, want 0", stats.SkippedNonMedia)
	}
	if len(ops) != 2 {
		t.Fatalf("operations = %d, want 2", len(ops))
	}

	wantTargets := map[string]bool{
		filepath.Join(cfg.OutputDir, "2023", "trips", "VID_20231215_120000.mp4"): false,
		filepath.Join(cfg.OutputDir, "2022", "PXL_20220610_080000000.jpg"):       false,
	}
	for _, op := range ops {
		if _, ok := wantTargets[op.Target]; !ok {
			t.Fatalf("unexpected target %s", op.Target)
		}
		wantTargets[op.Target] = true
	}
	for target, seen := range wantTargets {
		if !seen {
			t.Fatalf("missing target %s", target)
		}
	}
}

func TestPlanSkipsSystemEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := cfg.Sources[0]
	testsupport.WriteFile(t, filepath.Join(source, ".DS_Store"), 8)
	testsupport.WriteFile(t, filepath.Join(source, "Thumbs.db"), 8)
	testsupport.WriteFile(t, filepath.Join(source, ".git", "IMG_20230101_150000.jpg"), 8)
	testsupport.WriteFile(t, filepath.Join(source, "__MACOSX", "VID_20231215_120000.mp4"), 8)
	testsupport.WriteFile(t, filepath.Join(source, "keep", "VID_20231215_120000.mp4"), 8)

	planner, _ := newTestPlanner(t, cfg)
	ops, _, err := planner.Plan(context.Background(), cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 {
		t.Fatalf("operations = %d, want 1 (system entries are unconditional skips)", len(ops))
	}
	if filepath.Base(ops[0].Source) != "VID_20231215_120000.mp4" {
		t.Fatalf("unexpected survivor %s", ops[0].Source)
	}
}

func TestPlanHiddenExclusionIsOptIn(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := cfg.Sources[0]
	testsupport.WriteFile(t, filepath.Join(source, ".private", "VID_20231215_120000.mp4"), 8)

	planner, _ := newTestPlanner(t, cfg)
	ops, _, err := planner.Plan(context.Background(), cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 {
		t.Fatalf("hidden paths are included by default, got %d operations", len(ops))
	}

	cfg.ExcludeHidden = true
	planner, _ = newTestPlanner(t, cfg)
	ops, _, err = planner.Plan(context.Background(), cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 0 {
		t.Fatalf("hidden exclusion left %d operations", len(ops))
	}
}

func TestPlanMediaOnlyCountsSkips(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMediaOnly())
	source := cfg.Sources[0]
	testsupport.WriteFile(t, filepath.Join(source, "VID_20231215_120000.mp4"), 8)
	testsupport.WriteFile(t, filepath.Join(source, "notes_20231215.txt"), 8)

	planner, _ := newTestPlanner(t, cfg)
	ops, stats, err := planner.Plan(context.Background(), cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 {
		t.Fatalf("operations = %d, want 1", len(ops))
	}
	if stats.SkippedNonMedia != 1 {
		t.Fatalf("skipped = %d, want 1", stats.SkippedNonMedia)
	}
}

func TestPlanIsIdempotentAgainstProgress(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := cfg.Sources[0]
	path := filepath.Join(source, "VID_20231215_120000.mp4")
	testsupport.WriteFile(t, path, 8)

	planner, store := newTestPlanner(t, cfg)
	ops, _, err := planner.Plan(context.Background(), cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 {
		t.Fatalf("operations = %d, want 1", len(ops))
	}

	store.MarkProcessed(ops[0].Source, ops[0].Target)
	ops, _, err = planner.Plan(context.Background(), cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 0 {
		t.Fatalf("processed operation re-planned: %v", ops)
	}
}

func TestPlanStopsOnCancelledContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Sources[0], "VID_20231215_120000.mp4"), 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	planner, _ := newTestPlanner(t, cfg)
	if _, _, err := planner.Plan(ctx, cfg.OutputDir); err == nil {
		t.Fatal("expected context error from cancelled scan")
	}
}
