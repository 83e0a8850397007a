// Package filter applies a parsed query to raw occurrences.
package filter

import (
	"github.com/standardbeagle/todoview/internal/types"
)

// Apply reports whether occ satisfies the query's type and assignee
// criteria. Both must hold. A concrete assignee set requires the
// occurrence to actually carry an assignee; absent never matches a
// named filter.
func Apply(q types.Query, occ types.Occurrence) bool {
	if !q.Types.Contains(occ.Type) {
		return false
	}
	if q.Assignees.IsWildcard() {
		return true
	}
	name, ok := occ.AssigneeName()
	return ok && q.Assignees.Contains(name)
}

// All returns the occurrences that pass q, preserving input order. The
// input slice is never mutated.
func All(q types.Query, occs []types.Occurrence) []types.Occurrence {
	out := make([]types.Occurrence, 0, len(occs))
	for _, occ := range occs {
		if Apply(q, occ) {
			out = append(out, occ)
		}
	}
	return out
}
