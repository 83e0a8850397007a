// Package scope turns a query scope into the ordered list of buffers a
// pass will visit.
package scope

import (
	"github.com/standardbeagle/todoview/internal/types"
)

// Snapshot is a point-in-time view of the host's buffers. Lists are taken
// as-is: a buffer that disappears after the snapshot simply scans as empty.
type Snapshot struct {
	Active types.BufferID // empty when no buffer has focus
	Open   []types.BufferID
	All    []types.BufferID
}

// Resolve selects the buffers for kind, in a stable order the navigator
// can rely on. The excluded predicate is consulted only for the all-files
// scope; active and open buffers are explicit user intent and never
// filtered. Resolve performs no I/O and does not mutate the snapshot.
func Resolve(kind types.ScopeKind, snap Snapshot, excluded func(types.BufferID) bool) []types.BufferID {
	switch kind {
	case types.ScopeActiveFile:
		if snap.Active == "" {
			return nil
		}
		return []types.BufferID{snap.Active}
	case types.ScopeOpenFiles:
		out := make([]types.BufferID, len(snap.Open))
		copy(out, snap.Open)
		return out
	default:
		out := make([]types.BufferID, 0, len(snap.All))
		for _, id := range snap.All {
			if excluded != nil && excluded(id) {
				continue
			}
			out = append(out, id)
		}
		return out
	}
}
