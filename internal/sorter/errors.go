package sorter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks fatal pre-flight problems; the process exits
	// before any planning.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransient marks failures worth retrying or recording rather than
	// aborting the batch.
	ErrTransient = errors.New("transient failure")
	// ErrInterrupted marks a user interruption after a successful
	// checkpoint; it is a clean exit, not a failure.
	ErrInterrupted = errors.New("interrupted")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sorter failure"
	}
	return strings.Join(parts, ": ")
}
