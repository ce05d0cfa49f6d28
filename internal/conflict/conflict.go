// Package conflict detects destination collisions in a finished plan and
// resolves them interactively, remembering sticky choices across conflicts.
package conflict

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"mediasort/internal/filedate"
	"mediasort/internal/plan"
)

// FileRecord captures the facts a human needs to judge a collision.
type FileRecord struct {
	Path         string
	Size         int64
	Creation     time.Time
	Modification time.Time
}

// Stat builds a FileRecord from the filesystem.
func Stat(path string) (FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("stat %s: %w", path, err)
	}
	created, modified, err := filedate.FileTimes(path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("file times %s: %w", path, err)
	}
	return FileRecord{
		Path:         path,
		Size:         info.Size(),
		Creation:     created,
		Modification: modified,
	}, nil
}

// Conflict is an operation whose target already exists at plan time. The
// records are snapshots; the window between detection and transfer is an
// accepted race.
type Conflict struct {
	Op     plan.Operation
	Source FileRecord
	Target FileRecord
}

// SameSize reports whether both sides have identical sizes.
func (c Conflict) SameSize() bool { return c.Source.Size == c.Target.Size }

// SameCreation reports whether both sides share a creation timestamp.
func (c Conflict) SameCreation() bool { return c.Source.Creation.Equal(c.Target.Creation) }

// Detect classifies every operation whose target path exists. It runs only
// after the full operation list is built, never against a partial plan.
func Detect(ops []plan.Operation) ([]Conflict, error) {
	var conflicts []Conflict
	for _, op := range ops {
		if _, err := os.Stat(op.Target); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat target %s: %w", op.Target, err)
		}
		source, err := Stat(op.Source)
		if err != nil {
			return nil, err
		}
		target, err := Stat(op.Target)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, Conflict{Op: op, Source: source, Target: target})
	}
	return conflicts, nil
}
