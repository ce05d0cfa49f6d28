// Package progress persists per-operation progress so an interrupted run
// can resume without rescanning or redoing completed transfers.
package progress

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"mediasort/internal/logging"
)

// FailedOperation records a transfer that exhausted its retries.
type FailedOperation struct {
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// PendingOperation is a planned transfer snapshotted before execution.
type PendingOperation struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// fileState is the on-disk layout of the status file.
type fileState struct {
	Processed []string                   `json:"processed"`
	Failed    map[string]FailedOperation `json:"failed"`
	Pending   []PendingOperation         `json:"pending"`
	LastRunID string                     `json:"last_run_id,omitempty"`
	Timestamp time.Time                  `json:"timestamp"`
}

// Store tracks processed, failed and pending operations and mirrors them to
// a JSON file. All mutation happens on the single control goroutine, so the
// store carries no lock. Saves are skipped when nothing changed.
type Store struct {
	path   string
	logger *slog.Logger

	processed map[string]struct{}
	failed    map[string]FailedOperation
	pending   []PendingOperation
	runID     string
	dirty     bool
}

// Key builds the stable resume key for a (source, target) pair.
func Key(source, target string) string {
	return source + "|" + target
}

// NewStore loads prior state from path. Read or parse errors degrade to an
// empty store; a missing file is a fresh start.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Store{
		path:      path,
		logger:    logging.NewComponentLogger(logger, "progress"),
		processed: make(map[string]struct{}),
		failed:    make(map[string]FailedOperation),
	}
	s.load()
	return s
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// IsProcessed reports whether the operation key completed in a prior run.
func (s *Store) IsProcessed(key string) bool {
	_, ok := s.processed[key]
	return ok
}

// MarkProcessed records a completed operation and clears any stale failure
// for the same key. The change is not flushed until Save.
func (s *Store) MarkProcessed(source, target string) {
	key := Key(source, target)
	s.processed[key] = struct{}{}
	delete(s.failed, key)
	s.dirty = true
}

// MarkFailed records a durable failure for the operation.
func (s *Store) MarkFailed(source, target, errText string) {
	key := Key(source, target)
	s.failed[key] = FailedOperation{
		Source:    source,
		Target:    target,
		Error:     errText,
		Timestamp: time.Now(),
	}
	s.dirty = true
}

// SetPending replaces the pending-operations snapshot.
func (s *Store) SetPending(ops []PendingOperation) {
	s.pending = append([]PendingOperation(nil), ops...)
	s.dirty = true
}

// SetRunID stamps the store with the current run identifier.
func (s *Store) SetRunID(id string) {
	if id == s.runID {
		return
	}
	s.runID = id
	s.dirty = true
}

// ProcessedCount returns the number of recorded completions.
func (s *Store) ProcessedCount() int { return len(s.processed) }

// FailedCount returns the number of recorded failures.
func (s *Store) FailedCount() int { return len(s.failed) }

// Failed returns the failure records sorted by key for stable presentation.
func (s *Store) Failed() []FailedOperation {
	keys := make([]string, 0, len(s.failed))
	for key := range s.failed {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]FailedOperation, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.failed[key])
	}
	return out
}

// HasExistingProgress reports whether any prior state exists; it drives the
// resume prompt before planning.
func (s *Store) HasExistingProgress() bool {
	return len(s.processed) > 0 || len(s.failed) > 0 || len(s.pending) > 0
}

// Reset drops all in-memory state, as if the store had loaded nothing.
func (s *Store) Reset() {
	s.processed = make(map[string]struct{})
	s.failed = make(map[string]FailedOperation)
	s.pending = nil
	s.dirty = false
}

// Save flushes to disk when dirty. Writes are atomic: temp file, then
// rename over the real path.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}

	state := fileState{
		Processed: make([]string, 0, len(s.processed)),
		Failed:    s.failed,
		Pending:   s.pending,
		LastRunID: s.runID,
		Timestamp: time.Now(),
	}
	for key := range s.processed {
		state.Processed = append(state.Processed, key)
	}
	sort.Strings(state.Processed)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create progress directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp progress file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp progress file: %w", err)
	}

	s.dirty = false
	s.logger.Debug("progress saved",
		logging.Int("processed", len(s.processed)),
		logging.Int("failed", len(s.failed)),
		logging.Int("pending", len(s.pending)))
	return nil
}

// Cleanup removes the backing file. Missing files are fine.
func (s *Store) Cleanup() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove progress file: %w", err)
	}
	return nil
}

// load reads prior state tolerantly; anything unreadable means empty state.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("progress file unreadable, starting empty", logging.Error(err))
		}
		return
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("progress file corrupt, starting empty", logging.Error(err))
		return
	}

	for _, key := range state.Processed {
		s.processed[key] = struct{}{}
	}
	if state.Failed != nil {
		s.failed = state.Failed
	}
	s.pending = state.Pending
	s.runID = state.LastRunID
	s.dirty = false

	s.logger.Debug("progress loaded",
		logging.Int("processed", len(s.processed)),
		logging.Int("failed", len(s.failed)),
		logging.Int("pending", len(s.pending)))
}
