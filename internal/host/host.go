// Package host declares the interfaces the scan engine needs from its
// surrounding editor, CLI, or server process. The core never reaches into
// ambient host state; everything arrives through these as explicit
// snapshots.
package host

import (
	"github.com/standardbeagle/todoview/internal/types"
)

// Settings is the per-pass configuration snapshot. The engine reads it
// once at the start of a pass and treats it as immutable for the rest of
// that pass.
type Settings struct {
	// Targets are the recognized annotation keywords, e.g. TODO, NOTE.
	Targets []string
	// Excluded are path patterns skipped under the all-files scope.
	Excluded []string
	// Root anchors relative pattern matching for filesystem hosts. Empty
	// for hosts without a directory notion.
	Root string
}

// SettingsProvider supplies the settings snapshot for each pass.
type SettingsProvider interface {
	Snapshot() Settings
}

// StaticSettings adapts a fixed Settings value to SettingsProvider, for
// hosts whose configuration cannot change mid-process.
type StaticSettings Settings

func (s StaticSettings) Snapshot() Settings { return Settings(s) }

// State exposes the host's buffer universe at a point in time.
type State interface {
	// ActiveBuffer is the focused buffer, if any.
	ActiveBuffer() (types.BufferID, bool)
	// OpenBuffers lists open buffers in the host's own order. That order
	// is meaningful and must be preserved downstream.
	OpenBuffers() []types.BufferID
	// AllBuffers enumerates every buffer the host can see, before
	// exclusion filtering.
	AllBuffers() ([]types.BufferID, error)
}

// BufferProvider reads buffer content. Implementations are read-only; the
// engine never writes through this interface.
type BufferProvider interface {
	ReadBuffer(id types.BufferID) (types.BufferContent, error)
}

// NavigationSink consumes cursor moves so the host can reveal the match
// in its UI. Fire and forget: the engine ignores any outcome.
type NavigationSink interface {
	Reveal(occ types.Occurrence)
}

// NavigationSinkFunc adapts a function to the NavigationSink interface.
type NavigationSinkFunc func(occ types.Occurrence)

func (f NavigationSinkFunc) Reveal(occ types.Occurrence) { f(occ) }
