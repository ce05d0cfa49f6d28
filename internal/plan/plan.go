// Package plan walks the source trees and turns surviving files into
// ordered transfer operations. Planning never writes to the filesystem, so
// a dry run can reuse the exact same pass.
package plan

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"

	"mediasort/internal/config"
	"mediasort/internal/console"
	"mediasort/internal/filedate"
	"mediasort/internal/logging"
	"mediasort/internal/progress"
)

// Operation is a planned (source, target) transfer. Created here, consumed
// unchanged by the executor.
type Operation struct {
	Source string
	Target string
}

// Key returns the stable resume key for the operation.
func (op Operation) Key() string {
	return progress.Key(op.Source, op.Target)
}

// Stats counts files the planner dropped for reporting purposes.
type Stats struct {
	// SkippedNonMedia counts files rejected by the media-only filter.
	SkippedNonMedia int
}

// Planner enumerates source trees and computes destination paths.
type Planner struct {
	cfg      *config.Config
	resolver *filedate.Resolver
	store    *progress.Store
	printer  *console.Printer
	logger   *slog.Logger
}

// NewPlanner wires the planner's collaborators.
func NewPlanner(cfg *config.Config, resolver *filedate.Resolver, store *progress.Store, printer *console.Printer, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Planner{
		cfg:      cfg,
		resolver: resolver,
		store:    store,
		printer:  printer,
		logger:   logging.NewComponentLogger(logger, "planner"),
	}
}

// Plan collects operations for every configured source root. Cancellation
// is sampled at each directory entry; a cancelled context returns the
// operations gathered so far together with the context error.
func (p *Planner) Plan(ctx context.Context, targetRoot string) ([]Operation, Stats, error) {
	var ops []Operation
	var stats Stats

	for _, sourceRoot := range p.cfg.Sources {
		p.printer.Info("Scanning %s...", console.RelPath(sourceRoot))

		err := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				p.printer.Warn("Cannot access %s: %v", console.RelPath(path), err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			op, counted, ok := p.planFile(path, sourceRoot, targetRoot)
			if counted {
				stats.SkippedNonMedia++
			}
			if ok {
				ops = append(ops, op)
			}
			return nil
		})
		if err != nil {
			return ops, stats, err
		}
	}

	p.logger.Debug("planning complete",
		logging.Int("operations", len(ops)),
		logging.Int("skipped_non_media", stats.SkippedNonMedia))
	return ops, stats, nil
}

// planFile applies the skip rules and resume filter to a single regular
// file. counted reports whether the file adds to the skip statistics.
func (p *Planner) planFile(path, sourceRoot, targetRoot string) (op Operation, counted, ok bool) {
	rel, err := filepath.Rel(sourceRoot, path)
	if err != nil {
		p.printer.Warn("Cannot relativize %s: %v", console.RelPath(path), err)
		return Operation{}, false, false
	}

	// Hidden and system components count only below the source root, so a
	// source living under a dot-directory still gets sorted.
	switch classifySkip(rel, p.cfg.ExcludeHidden) {
	case skipSystemFile:
		p.verbose("Skipping system file: %s", path)
		return Operation{}, false, false
	case skipSystemDirectory:
		p.verbose("Skipping system directory: %s", path)
		return Operation{}, false, false
	case skipHiddenPath:
		p.verbose("Skipping hidden path: %s", path)
		return Operation{}, false, false
	}

	res, err := p.resolver.Resolve(path, filepath.Base(path))
	if err != nil {
		p.printer.Warn("Cannot determine year for %s: %v", console.RelPath(path), err)
		return Operation{}, false, false
	}
	if res.Source == filedate.SourceCreationTime {
		p.printer.Warn("Using creation date (%s) for: %s",
			res.Creation.Format("2006-01-02 15:04:05"), console.RelPath(path))
	}

	target := filepath.Join(targetRoot, strconv.Itoa(res.Year), rel)

	if p.store.IsProcessed(progress.Key(path, target)) {
		p.verbose("Skipping already processed: %s", path)
		return Operation{}, false, false
	}

	if p.cfg.MediaOnly && !isMediaFile(path, p.cfg.ExtraMediaExtensions) {
		p.verbose("Skipping non-media file: %s", path)
		return Operation{}, true, false
	}

	return Operation{Source: path, Target: target}, false, true
}

func (p *Planner) verbose(format string, path string) {
	if p.cfg.Verbose {
		p.printer.Info(format, console.RelPath(path))
	}
}
