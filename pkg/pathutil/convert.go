// Package pathutil converts between absolute and relative paths.
//
// Buffer identifiers stay absolute internally so exclusion matching and
// cache keys are unambiguous. User-facing output wants short relative
// paths. This package is the conversion layer at that boundary.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/todoview/internal/types"
)

// ToRelative converts an absolute path to one relative to rootDir.
// Falls back to the original path if conversion fails, the path is already
// relative, or the path lies outside the root.
//
// Examples:
//   - ToRelative("/proj/src/main.go", "/proj") → "src/main.go"
//   - ToRelative("/elsewhere/file.go", "/proj") → "/elsewhere/file.go"
//   - ToRelative("src/main.go", "/proj") → "src/main.go"
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}

	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}

	// A ".." prefix means the file is outside the root; the absolute form
	// is clearer there.
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}

	return relPath
}

// ToRelativeOccurrences rewrites occurrence buffer paths relative to
// rootDir. Returns a new slice; the input is not modified, since the same
// occurrences may still be live in a navigator session.
func ToRelativeOccurrences(occs []types.Occurrence, rootDir string) []types.Occurrence {
	if len(occs) == 0 {
		return occs
	}

	converted := make([]types.Occurrence, len(occs))
	copy(converted, occs)

	for i := range converted {
		converted[i].Buffer = types.BufferID(ToRelative(string(converted[i].Buffer), rootDir))
	}

	return converted
}
