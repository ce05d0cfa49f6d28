package console

import (
	"os"
	"path/filepath"
	"strings"
)

// RelPath shortens a path relative to the working directory for display.
// Paths outside the working directory are returned unchanged.
func RelPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
