// Package navigator holds the current result set and a cyclic cursor
// over it.
package navigator

import (
	"github.com/standardbeagle/todoview/internal/types"
)

// Navigator is the session-scoped cursor over the most recent match set.
// The zero value is ready to use and behaves as "no matches". Navigation
// wraps at both ends, so it never dead-ends. Not safe for concurrent use;
// callers serialize.
type Navigator struct {
	matches types.MatchSet
	cursor  int // meaningful only while matches is non-empty
}

// Load replaces the whole state with a new match set. The cursor always
// lands on the first match, or nowhere when the set is empty. Position is
// never carried over: the new set can have a completely different shape.
// The last Load wins unconditionally.
func (n *Navigator) Load(ms types.MatchSet) {
	n.matches = ms
	n.cursor = 0
}

// Next advances the cursor, wrapping from the last match to the first.
// No-op when there are no matches.
func (n *Navigator) Next() {
	if n.matches.Empty() {
		return
	}
	n.cursor = (n.cursor + 1) % n.matches.Len()
}

// Previous moves the cursor back, wrapping from the first match to the
// last. No-op when there are no matches.
func (n *Navigator) Previous() {
	if n.matches.Empty() {
		return
	}
	n.cursor = (n.cursor - 1 + n.matches.Len()) % n.matches.Len()
}

// JumpTo places the cursor on index i, wrapped into range modulo the set
// size. No-op when there are no matches.
func (n *Navigator) JumpTo(i int) {
	if n.matches.Empty() {
		return
	}
	size := n.matches.Len()
	n.cursor = ((i % size) + size) % size
}

// Current returns the occurrence under the cursor, or false when the set
// is empty.
func (n *Navigator) Current() (types.Occurrence, bool) {
	if n.matches.Empty() {
		return types.Occurrence{}, false
	}
	return n.matches.Occurrences[n.cursor], true
}

// Index reports the 0-based cursor position, or false when the set is
// empty.
func (n *Navigator) Index() (int, bool) {
	if n.matches.Empty() {
		return 0, false
	}
	return n.cursor, true
}

// Len is the size of the loaded set.
func (n *Navigator) Len() int { return n.matches.Len() }

// Matches returns the loaded set.
func (n *Navigator) Matches() types.MatchSet { return n.matches }
