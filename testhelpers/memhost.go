// Package testhelpers provides shared in-memory doubles for exercising the
// scan engine without a filesystem.
package testhelpers

import (
	"io/fs"
	"sort"
	"sync"

	tverrors "github.com/standardbeagle/todoview/internal/errors"
	"github.com/standardbeagle/todoview/internal/host"
	"github.com/standardbeagle/todoview/internal/types"
)

// MemHost implements host.SettingsProvider, host.State, and
// host.BufferProvider over a map of named buffers. Fields are plain so a
// test can arrange state directly:
//
//	h := testhelpers.NewMemHost()
//	h.AddBuffer("a.go", "TODO: fix")
//	h.Active = "a.go"
//
// Not safe for concurrent mutation; arrange first, then hand it to an
// engine.
type MemHost struct {
	Targets      []string
	Excluded     []string
	Active       types.BufferID
	Open         []types.BufferID
	EnumerateErr error // returned by AllBuffers when set

	buffers map[types.BufferID]string
	broken  map[types.BufferID]error
}

// NewMemHost returns an empty host with a usable default target vocabulary.
func NewMemHost() *MemHost {
	return &MemHost{
		Targets: []string{"TODO", "NOTE", "FIXME"},
		buffers: make(map[types.BufferID]string),
		broken:  make(map[types.BufferID]error),
	}
}

// AddBuffer registers a readable buffer under id.
func (h *MemHost) AddBuffer(id types.BufferID, content string) {
	h.buffers[id] = content
}

// BreakBuffer registers a buffer that enumerates but fails every read
// with err.
func (h *MemHost) BreakBuffer(id types.BufferID, err error) {
	h.broken[id] = err
}

// Snapshot implements host.SettingsProvider. Root stays empty; a memory
// host has no directory notion.
func (h *MemHost) Snapshot() host.Settings {
	return host.Settings{Targets: h.Targets, Excluded: h.Excluded}
}

// ActiveBuffer implements host.State.
func (h *MemHost) ActiveBuffer() (types.BufferID, bool) {
	return h.Active, h.Active != ""
}

// OpenBuffers implements host.State.
func (h *MemHost) OpenBuffers() []types.BufferID {
	return h.Open
}

// AllBuffers implements host.State. Broken buffers enumerate too, the way
// an unreadable file still shows up in a directory listing. Order is
// lexical so passes are deterministic.
func (h *MemHost) AllBuffers() ([]types.BufferID, error) {
	if h.EnumerateErr != nil {
		return nil, h.EnumerateErr
	}
	ids := make([]types.BufferID, 0, len(h.buffers)+len(h.broken))
	for id := range h.buffers {
		ids = append(ids, id)
	}
	for id := range h.broken {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// ReadBuffer implements host.BufferProvider.
func (h *MemHost) ReadBuffer(id types.BufferID) (types.BufferContent, error) {
	if err, ok := h.broken[id]; ok {
		return types.BufferContent{}, tverrors.NewBufferError("read", id, err)
	}
	content, ok := h.buffers[id]
	if !ok {
		return types.BufferContent{}, tverrors.NewBufferError("read", id, fs.ErrNotExist)
	}
	return types.NewBufferContent(id, content), nil
}

// RecordingSink captures reveal callbacks so tests can assert on cursor
// moves. Safe for concurrent use.
type RecordingSink struct {
	mu       sync.Mutex
	revealed []types.Occurrence
}

// Reveal implements host.NavigationSink.
func (r *RecordingSink) Reveal(occ types.Occurrence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revealed = append(r.revealed, occ)
}

// Count reports how many reveals have happened.
func (r *RecordingSink) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revealed)
}

// Last returns the most recent reveal, if any.
func (r *RecordingSink) Last() (types.Occurrence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.revealed) == 0 {
		return types.Occurrence{}, false
	}
	return r.revealed[len(r.revealed)-1], true
}
