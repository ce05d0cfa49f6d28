package plan

import (
	"path/filepath"
	"strings"
)

// skipDirectories are path components that disqualify a file regardless of
// settings: version control, OS trash and cache directories.
var skipDirectories = map[string]struct{}{
	".git":        {},
	".svn":        {},
	".hg":         {},
	"__MACOSX":    {},
	".Trash":      {},
	".Trashes":    {},
	"__pycache__": {},
	".cache":      {},
	".tmp":        {},
	".temp":       {},
}

// skipFiles are system metadata files that are never worth sorting.
var skipFiles = map[string]struct{}{
	".DS_Store":   {},
	"Thumbs.db":   {},
	"desktop.ini": {},
	".gitignore":  {},
	".gitkeep":    {},
}

// mediaExtensions gates the media-only filter: images, videos and animated
// formats.
var mediaExtensions = map[string]struct{}{
	// Images
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {},
	".tiff": {}, ".tif": {}, ".webp": {}, ".heic": {}, ".heif": {},
	".raw": {}, ".cr2": {}, ".nef": {}, ".arw": {}, ".dng": {}, ".svg": {},
	// Videos
	".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {}, ".flv": {},
	".mkv": {}, ".webm": {}, ".m4v": {}, ".mpg": {}, ".mpeg": {},
	".3gp": {}, ".3g2": {}, ".mts": {}, ".m2ts": {}, ".vob": {}, ".ogv": {},
}

// skipReason classifies why a path is excluded from planning; skipNone means
// it survives. The hidden check only applies when excludeHidden is set.
type skipReason int

const (
	skipNone skipReason = iota
	skipSystemFile
	skipSystemDirectory
	skipHiddenPath
)

func classifySkip(path string, excludeHidden bool) skipReason {
	if _, ok := skipFiles[filepath.Base(path)]; ok {
		return skipSystemFile
	}
	for _, part := range splitPath(path) {
		if _, ok := skipDirectories[part]; ok {
			return skipSystemDirectory
		}
	}
	if excludeHidden {
		for _, part := range splitPath(path) {
			if strings.HasPrefix(part, ".") && part != "." {
				return skipHiddenPath
			}
		}
	}
	return skipNone
}

func splitPath(path string) []string {
	return strings.Split(filepath.ToSlash(path), "/")
}

// isMediaFile reports whether the extension belongs to the media set,
// widened by any configured extra extensions.
func isMediaFile(path string, extra []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := mediaExtensions[ext]; ok {
		return true
	}
	for _, e := range extra {
		if ext == e {
			return true
		}
	}
	return false
}
