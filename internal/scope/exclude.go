package scope

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/todoview/internal/types"
)

// Excluder matches buffer paths against configured exclusion patterns.
//
// Two pattern flavors, decided per pattern: anything containing a star is
// a glob, tried against the full path, the root-relative path, and the
// base name; anything else matches by substring containment, so a bare
// "node_modules" rules out every path under such a directory. Invalid
// globs are skipped rather than failing the pass.
type Excluder struct {
	root     string
	patterns []string
}

// NewExcluder builds the predicate for one pass. root anchors relative
// matching and may be empty.
func NewExcluder(root string, patterns []string) *Excluder {
	return &Excluder{root: root, patterns: patterns}
}

// Match reports whether path is excluded.
func (e *Excluder) Match(id types.BufferID) bool {
	path := filepath.ToSlash(string(id))
	for _, pattern := range e.patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(pattern, "*") {
			if e.globMatch(filepath.ToSlash(pattern), path) {
				return true
			}
			continue
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

func (e *Excluder) globMatch(pattern, path string) bool {
	if matched, err := doublestar.Match(pattern, path); err == nil && matched {
		return true
	}
	if e.root != "" {
		if rel, err := filepath.Rel(e.root, path); err == nil {
			if matched, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err == nil && matched {
				return true
			}
		}
	}
	matched, err := doublestar.Match(pattern, filepath.ToSlash(filepath.Base(path)))
	return err == nil && matched
}

// Predicate adapts the excluder to the resolver's callback shape.
func (e *Excluder) Predicate() func(types.BufferID) bool {
	return e.Match
}
