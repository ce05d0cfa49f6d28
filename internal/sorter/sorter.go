// Package sorter glues the pipeline together: run locking, the resume
// prompt, planning, conflict detection, execution, the summary, and
// end-of-run cleanup of the progress store.
package sorter

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mediasort/internal/config"
	"mediasort/internal/conflict"
	"mediasort/internal/console"
	"mediasort/internal/executor"
	"mediasort/internal/filedate"
	"mediasort/internal/logging"
	"mediasort/internal/plan"
	"mediasort/internal/progress"
)

// Sorter runs the whole pipeline for one invocation.
type Sorter struct {
	cfg     *config.Config
	printer *console.Printer
	logger  *slog.Logger
	store   *progress.Store
}

// New builds a sorter with default collaborators.
func New(cfg *config.Config, logger *slog.Logger) *Sorter {
	return NewWithDependencies(cfg, logger, console.New(), progress.NewStore(cfg.StatusFile, logger))
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, printer *console.Printer, store *progress.Store) *Sorter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Sorter{
		cfg:     cfg,
		printer: printer,
		logger:  logging.NewComponentLogger(logger, "sorter"),
		store:   store,
	}
}

// Run executes the pipeline. It returns ErrInterrupted after a clean
// checkpoint when the context is cancelled mid-run.
func (s *Sorter) Run(ctx context.Context) error {
	lock := flock.New(s.store.Path() + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return Wrap(ErrConfiguration, "startup", "acquire run lock", "", err)
	}
	if !locked {
		return Wrap(ErrConfiguration, "startup", "acquire run lock",
			"another mediasort run is using "+s.store.Path(), nil)
	}
	defer lock.Unlock()

	runID := uuid.NewString()
	s.logger = s.logger.With(logging.String("run_id", runID))
	s.store.SetRunID(runID)
	s.logger.Debug("run starting")

	if err := s.checkResume(); err != nil {
		return err
	}

	s.printConfiguration()

	resolver := filedate.NewResolver(s.cfg.NewYearCutoffHour, s.logger)
	planner := plan.NewPlanner(s.cfg, resolver, s.store, s.printer, s.logger)
	ops, stats, err := planner.Plan(ctx, s.cfg.OutputDir)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return s.checkpointAndExit()
		}
		return Wrap(ErrTransient, "planning", "scan sources", "", err)
	}

	if len(ops) == 0 {
		s.printer.Info("No files to process")
		return nil
	}

	conflicts, err := conflict.Detect(ops)
	if err != nil {
		return Wrap(ErrTransient, "planning", "detect conflicts", "", err)
	}

	exec := executor.New(s.cfg, s.store, conflict.NewResolver(s.printer, s.logger), s.printer, s.logger)
	res, err := exec.Run(ctx, ops, conflicts)
	if err != nil {
		return Wrap(ErrTransient, "executing", "process operations", "", err)
	}

	s.printSummary(res, stats)

	if res.Interrupted {
		return s.checkpointAndExit()
	}
	if !s.cfg.DryRun {
		if err := s.cleanupStatus(); err != nil {
			return err
		}
	}
	return nil
}

// checkResume offers to resume when prior progress exists. Declining offers
// to delete the progress file so the next scan starts clean.
func (s *Sorter) checkResume() error {
	if !s.store.HasExistingProgress() {
		return nil
	}
	if s.cfg.Resume {
		s.printer.Info("Resuming from previous operation")
		return nil
	}

	s.printer.Info("Found existing progress from previous run.")
	resume, err := s.printer.Confirm("Do you want to resume from where you left off?")
	if err != nil {
		return Wrap(ErrConfiguration, "startup", "resume prompt", "", err)
	}
	if resume {
		return nil
	}

	remove, err := s.printer.Confirm("Delete the existing progress file?")
	if err != nil {
		return Wrap(ErrConfiguration, "startup", "resume prompt", "", err)
	}
	if remove {
		if err := s.store.Cleanup(); err != nil {
			return Wrap(ErrConfiguration, "startup", "delete progress file", "", err)
		}
		s.store.Reset()
	}
	return nil
}

func (s *Sorter) checkpointAndExit() error {
	s.printer.Warn("Interrupted! Saving progress...")
	if err := s.store.Save(); err != nil {
		s.printer.Error("Could not save progress: %v", err)
	}
	return ErrInterrupted
}

func (s *Sorter) printConfiguration() {
	mode := "Copy"
	if s.cfg.Move {
		mode = "Move"
	}
	sources := ""
	for i, src := range s.cfg.Sources {
		if i > 0 {
			sources += ", "
		}
		sources += console.RelPath(src)
	}
	s.printer.Info("Media Sort Configuration:")
	s.printer.Info("\tSource directories: %s", sources)
	s.printer.Info("\tOutput directory: %s", console.RelPath(s.cfg.OutputDir))
	s.printer.Info("\tMode: %s", mode)
	s.printer.Info("\tMedia only: %s", yesNo(s.cfg.MediaOnly))
	s.printer.Info("\tHidden files: %s", includedExcluded(s.cfg.ExcludeHidden))
	s.printer.Info("\tDry run: %s", yesNo(s.cfg.DryRun))
	s.printer.Info("\tVerbose: %s", yesNo(s.cfg.Verbose))
	s.printer.Println()
}

func (s *Sorter) printSummary(res executor.Result, stats plan.Stats) {
	skipped := res.Skipped + stats.SkippedNonMedia

	s.printer.Println()
	s.printer.Table(
		[]string{"Result", "Count"},
		[][]string{
			{"Processed", strconv.Itoa(res.Processed)},
			{"Skipped", strconv.Itoa(skipped)},
			{"Failed", strconv.Itoa(s.store.FailedCount())},
		},
		[]console.Alignment{console.AlignLeft, console.AlignRight},
	)

	if failed := s.store.Failed(); len(failed) > 0 {
		s.printer.Error("Failed operations: %d", len(failed))
		for _, f := range failed {
			s.printer.Error("  %s -> %s: %s", console.RelPath(f.Source), console.RelPath(f.Target), f.Error)
		}
	}

	if s.cfg.DryRun {
		s.printer.Warn("This was a dry run - no files were actually moved/copied")
	}
}

// cleanupStatus retains the store when failures remain; otherwise it offers
// to delete the now-unneeded file.
func (s *Sorter) cleanupStatus() error {
	if s.store.FailedCount() > 0 {
		s.printer.Warn("Some operations failed. Status file kept for review.")
		return nil
	}
	if _, err := os.Stat(s.store.Path()); err != nil {
		return nil
	}
	s.printer.Println()
	remove, err := s.printer.Confirm("All operations completed successfully. Delete status file?")
	if err != nil {
		return Wrap(ErrTransient, "cleanup", "delete prompt", "", err)
	}
	if remove {
		if err := s.store.Cleanup(); err != nil {
			return Wrap(ErrTransient, "cleanup", "delete status file", "", err)
		}
		s.printer.Info("Status file deleted.")
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func includedExcluded(excluded bool) string {
	if excluded {
		return "Excluded"
	}
	return "Included"
}
