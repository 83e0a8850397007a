// Package engine executes query passes and owns the session navigator.
//
// One pass is atomic: snapshot settings, resolve the scope, scan each
// selected buffer once, filter, and load the navigator. The engine spawns
// no goroutines of its own; a mutex serializes passes and navigation so
// hosts may call from any goroutine, with last-load-wins semantics.
package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/standardbeagle/todoview/internal/annotation"
	"github.com/standardbeagle/todoview/internal/debug"
	tverrors "github.com/standardbeagle/todoview/internal/errors"
	"github.com/standardbeagle/todoview/internal/filter"
	"github.com/standardbeagle/todoview/internal/host"
	"github.com/standardbeagle/todoview/internal/navigator"
	"github.com/standardbeagle/todoview/internal/query"
	"github.com/standardbeagle/todoview/internal/scope"
	"github.com/standardbeagle/todoview/internal/types"
)

// Engine ties the parser, scanner, filter, and navigator to one host.
type Engine struct {
	mu       sync.Mutex
	settings host.SettingsProvider
	state    host.State
	buffers  host.BufferProvider
	sink     host.NavigationSink
	nav      navigator.Navigator
}

// New wires an engine to its host collaborators.
func New(settings host.SettingsProvider, state host.State, buffers host.BufferProvider) *Engine {
	return &Engine{settings: settings, state: state, buffers: buffers}
}

// SetNavigationSink registers the consumer of cursor moves. Optional; nil
// disables reveal callbacks.
func (e *Engine) SetNavigationSink(sink host.NavigationSink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink = sink
}

// Search parses raw and runs a pass. The parse step cannot fail, so any
// returned error comes from the pass itself.
func (e *Engine) Search(raw string) (types.MatchSet, error) {
	return e.Run(query.Parse(raw))
}

// Run executes one atomic pass for q and loads the result into the
// navigator. Individual unreadable buffers are skipped and counted, never
// fatal. An error is returned only when the pass cannot run at all: an
// unusable target vocabulary or a host that cannot enumerate buffers.
func (e *Engine) Run(q types.Query) (types.MatchSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	settings := e.settings.Snapshot()

	grammar, err := annotation.Compile(settings.Targets)
	if err != nil {
		return types.MatchSet{}, tverrors.NewConfigError("targets", strings.Join(settings.Targets, ","), err)
	}

	ids, err := e.resolveScope(q.Scope, settings)
	if err != nil {
		return types.MatchSet{}, tverrors.NewScanError(q.String(), err)
	}

	stats := types.ScanStats{BuffersConsidered: len(ids)}
	occurrences := make([]types.Occurrence, 0, 64)
	for _, id := range ids {
		content, err := e.buffers.ReadBuffer(id)
		if err != nil {
			stats.BuffersUnreadable++
			debug.LogScan("skipping unreadable buffer %s: %v\n", id, err)
			continue
		}
		stats.BuffersScanned++

		sc := annotation.NewLineScanner(grammar, content)
		for {
			occ, ok := sc.Next()
			if !ok {
				break
			}
			if filter.Apply(q, occ) {
				occurrences = append(occurrences, occ)
			}
		}
		stats.LinesScanned += content.NumLines()
	}
	stats.Elapsed = time.Since(start)

	ms := types.MatchSet{Query: q, Occurrences: occurrences, Stats: stats}
	e.nav.Load(ms)
	debug.LogScan("pass %q: %d matches in %d/%d buffers (%d lines, %v)\n",
		q.String(), ms.Len(), stats.BuffersScanned, stats.BuffersConsidered,
		stats.LinesScanned, stats.Elapsed)
	return ms, nil
}

// resolveScope snapshots only the buffer lists the scope actually needs.
// The all-files universe can mean a directory walk, so it is not touched
// for active or open scopes.
func (e *Engine) resolveScope(kind types.ScopeKind, settings host.Settings) ([]types.BufferID, error) {
	var snap scope.Snapshot
	if active, ok := e.state.ActiveBuffer(); ok {
		snap.Active = active
	}
	snap.Open = e.state.OpenBuffers()

	var excluded func(types.BufferID) bool
	if kind == types.ScopeAllFiles {
		all, err := e.state.AllBuffers()
		if err != nil {
			return nil, err
		}
		snap.All = all
		excluded = scope.NewExcluder(settings.Root, settings.Excluded).Predicate()
	}

	return scope.Resolve(kind, snap, excluded), nil
}

// Next advances the session cursor and reveals the new current match.
func (e *Engine) Next() (types.Occurrence, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nav.Next()
	return e.reveal()
}

// Previous moves the session cursor back and reveals the new current match.
func (e *Engine) Previous() (types.Occurrence, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nav.Previous()
	return e.reveal()
}

// JumpTo places the cursor on index i (wrapped into range) and reveals it.
func (e *Engine) JumpTo(i int) (types.Occurrence, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nav.JumpTo(i)
	return e.reveal()
}

// Current reads the occurrence under the cursor without moving it.
func (e *Engine) Current() (types.Occurrence, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Current()
}

// Position reports the 0-based cursor index and the loaded total. The
// index round-trips through JumpTo; renderers add one for "3 of 17" style
// indicators. ok is false when no matches are loaded.
func (e *Engine) Position() (index, total int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.nav.Index()
	if !ok {
		return 0, 0, false
	}
	return idx, e.nav.Len(), true
}

// Matches returns the currently loaded match set.
func (e *Engine) Matches() types.MatchSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav.Matches()
}

// reveal pushes the current occurrence at the sink, if both exist.
// Callers hold the mutex.
func (e *Engine) reveal() (types.Occurrence, bool) {
	occ, ok := e.nav.Current()
	if ok && e.sink != nil {
		e.sink.Reveal(occ)
	}
	return occ, ok
}
