// Package query parses the compact scope:types:assignees filter language.
//
// The grammar is three colon-separated segments. The first selects the scan
// scope, the second the annotation types, the third the assignees. Omitted
// or empty segments are wildcards, so "", "*", "*:*" and "*:*:*" all mean
// the same thing: everything, everywhere.
package query

import (
	"strings"

	"github.com/standardbeagle/todoview/internal/types"
)

// maxSegments is the number of meaningful colon-separated segments. Text
// after the third colon is ignored rather than glued onto the assignees.
const maxSegments = 3

// Parse turns a raw filter string into a Query. It never fails: anything
// unrecognizable degrades to a wildcard, never to an error.
func Parse(raw string) types.Query {
	segs := strings.SplitN(raw, ":", maxSegments+1)

	q := types.Query{Scope: parseScope(segs[0])}
	if len(segs) > 1 {
		q.Types = parseTokens(segs[1])
	}
	if len(segs) > 2 {
		q.Assignees = parseTokens(segs[2])
	}
	return q
}

// parseScope maps the first segment to a ScopeKind. Matching is
// case-insensitive; unrecognized values fall back to all files.
func parseScope(seg string) types.ScopeKind {
	switch strings.ToLower(strings.TrimSpace(seg)) {
	case "f", "file":
		return types.ScopeActiveFile
	case "o", "open":
		return types.ScopeOpenFiles
	default:
		return types.ScopeAllFiles
	}
}

// parseTokens splits a comma list into a TokenSet. Members are trimmed and
// case-sensitive; an empty list is the wildcard.
func parseTokens(seg string) types.TokenSet {
	return types.NewTokenSet(strings.Split(seg, ","))
}
