// Package executor performs the planned transfers with bounded retry,
// batched progress checkpoints and cooperative interruption.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"mediasort/internal/config"
	"mediasort/internal/conflict"
	"mediasort/internal/console"
	"mediasort/internal/fileutil"
	"mediasort/internal/logging"
	"mediasort/internal/plan"
	"mediasort/internal/progress"
)

// Result summarizes an execution pass.
type Result struct {
	Processed   int
	Skipped     int
	Interrupted bool
}

// Executor iterates operations in planned order, resolving conflicts as it
// reaches them.
type Executor struct {
	cfg      *config.Config
	store    *progress.Store
	resolver *conflict.Resolver
	printer  *console.Printer
	logger   *slog.Logger

	sleep func(time.Duration)
	bar   *progressbar.ProgressBar
}

// New wires the executor's collaborators.
func New(cfg *config.Config, store *progress.Store, resolver *conflict.Resolver, printer *console.Printer, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		printer:  printer,
		logger:   logging.NewComponentLogger(logger, "executor"),
		sleep:    time.Sleep,
	}
}

// Run executes the operations. The pending snapshot is persisted before the
// first transfer so a crash mid-run resumes from the plan instead of a
// rescan. Progress is flushed every SaveBatchSize completions, at the end,
// and when the context is cancelled.
func (e *Executor) Run(ctx context.Context, ops []plan.Operation, conflicts []conflict.Conflict) (Result, error) {
	pending := make([]progress.PendingOperation, 0, len(ops))
	for _, op := range ops {
		pending = append(pending, progress.PendingOperation{Source: op.Source, Target: op.Target})
	}
	e.store.SetPending(pending)
	if err := e.store.Save(); err != nil {
		e.printer.Warn("Could not checkpoint plan: %v", err)
	}

	conflictByKey := make(map[string]int, len(conflicts))
	for i, c := range conflicts {
		conflictByKey[c.Op.Key()] = i
	}
	if len(conflicts) > 0 {
		e.printer.Warn("Found %d conflicts", len(conflicts))
	}

	if !e.cfg.DryRun && !e.cfg.Verbose && e.printer.Interactive() {
		e.bar = progressbar.NewOptions(len(ops),
			progressbar.OptionSetDescription("transferring"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var res Result
	batch := 0
	for _, op := range ops {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}

		if idx, ok := conflictByKey[op.Key()]; ok {
			e.clearBar()
			decision, err := e.resolver.Resolve(conflicts[idx], idx, len(conflicts))
			if err != nil {
				e.flush()
				return res, err
			}
			if !decision.Action.ShouldOverwrite(conflicts[idx]) {
				res.Skipped++
				e.advanceBar()
				continue
			}
		}

		if e.cfg.DryRun {
			verb := "Would copy"
			if e.cfg.Move {
				verb = "Would move"
			}
			e.printer.Info("%s: %s -> %s", verb, console.RelPath(op.Source), console.RelPath(op.Target))
			e.advanceBar()
			continue
		}

		if err := e.transferWithRetry(op); err != nil {
			e.store.MarkFailed(op.Source, op.Target, err.Error())
			res.Skipped++
		} else {
			e.store.MarkProcessed(op.Source, op.Target)
			res.Processed++
			if e.cfg.Verbose {
				verb := "Copied"
				if e.cfg.Move {
					verb = "Moved"
				}
				e.printer.Success("%s: %s -> %s", verb, console.RelPath(op.Source), console.RelPath(op.Target))
			}
		}

		batch++
		if batch >= e.cfg.SaveBatchSize {
			e.flush()
			batch = 0
		}
		e.advanceBar()
	}

	e.finishBar()
	e.flush()
	return res, nil
}

// transferWithRetry attempts the transfer up to MaxRetryAttempts times with
// a fixed delay, absorbing transient filesystem errors.
func (e *Executor) transferWithRetry(op plan.Operation) error {
	delay := time.Duration(e.cfg.RetryDelaySeconds) * time.Second
	var lastErr error
	for attempt := 1; attempt <= e.cfg.MaxRetryAttempts; attempt++ {
		lastErr = e.transfer(op)
		if lastErr == nil {
			return nil
		}
		if attempt < e.cfg.MaxRetryAttempts {
			e.clearBar()
			e.printer.Warn("Attempt %d failed: %v. Retrying...", attempt, lastErr)
			e.sleep(delay)
		}
	}
	e.clearBar()
	e.printer.Error("Failed after %d attempts: %v", e.cfg.MaxRetryAttempts, lastErr)
	e.logger.Debug("transfer failed",
		logging.String("source", op.Source),
		logging.String("target", op.Target),
		logging.Error(lastErr))
	return lastErr
}

func (e *Executor) transfer(op plan.Operation) error {
	if err := fileutil.EnsureParentDir(op.Target); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	if e.cfg.Move {
		if err := fileutil.MoveFile(op.Source, op.Target); err != nil {
			return err
		}
	} else {
		if err := fileutil.CopyFile(op.Source, op.Target); err != nil {
			return err
		}
	}
	if _, err := os.Stat(op.Target); err != nil {
		return fmt.Errorf("target missing after transfer: %w", err)
	}
	return nil
}

func (e *Executor) flush() {
	if err := e.store.Save(); err != nil {
		e.clearBar()
		e.printer.Warn("Could not save progress: %v", err)
	}
}

func (e *Executor) advanceBar() {
	if e.bar != nil {
		_ = e.bar.Add(1)
	}
}

func (e *Executor) clearBar() {
	if e.bar != nil {
		_ = e.bar.Clear()
	}
}

func (e *Executor) finishBar() {
	if e.bar != nil {
		_ = e.bar.Finish()
	}
}
