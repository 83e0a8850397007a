package types

import (
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Common system-wide constants
const (
	// File size limits
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB per buffer - standard limit for scanning
	// Rationale: Prevents memory exhaustion from large
	// generated files while covering 99.9% of source files.
	// Large files are typically binaries or generated code.

	// Binary detection threshold
	BinaryPreCheckBytes = 512 // Number of bytes to inspect for NUL bytes before loading a buffer

	// Performance limits
	DefaultMaxBufferCount = 10000 // Maximum buffers to scan in a single pass
	// Rationale: Covers most application codebases while
	// preventing runaway walks of node_modules or vendor
	// directories. Large projects can raise it in config.
)

// BufferID identifies a text buffer. For the filesystem host this is the
// file path; editor hosts may use view names or synthetic identifiers.
type BufferID string

// Wildcard is the query segment that matches everything.
const Wildcard = "*"

// ScopeKind selects which buffers a pass visits.
type ScopeKind uint8

const (
	ScopeAllFiles ScopeKind = iota // every enumerable buffer minus exclusions
	ScopeActiveFile
	ScopeOpenFiles
)

func (sk ScopeKind) String() string {
	switch sk {
	case ScopeActiveFile:
		return "file"
	case ScopeOpenFiles:
		return "open"
	case ScopeAllFiles:
		return Wildcard
	default:
		return "unknown"
	}
}

// TokenSet is one query segment: either the wildcard, which admits every
// candidate, or an ordered set of exact case-sensitive tokens. The zero
// value is the wildcard.
type TokenSet struct {
	tokens []string
}

// NewTokenSet builds a set from raw tokens. Tokens are trimmed, empties and
// lone wildcards are dropped, and duplicates keep their first position. An
// empty result is the wildcard.
func NewTokenSet(raw []string) TokenSet {
	var ts TokenSet
	seen := make(map[string]struct{}, len(raw))
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" || tok == Wildcard {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		ts.tokens = append(ts.tokens, tok)
	}
	return ts
}

// IsWildcard reports whether the set admits every candidate.
func (ts TokenSet) IsWildcard() bool { return len(ts.tokens) == 0 }

// Contains reports exact case-sensitive membership. The wildcard contains
// everything.
func (ts TokenSet) Contains(token string) bool {
	if ts.IsWildcard() {
		return true
	}
	for _, t := range ts.tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Tokens returns the members in insertion order. Nil for the wildcard.
func (ts TokenSet) Tokens() []string { return ts.tokens }

func (ts TokenSet) Len() int { return len(ts.tokens) }

func (ts TokenSet) String() string {
	if ts.IsWildcard() {
		return Wildcard
	}
	return strings.Join(ts.tokens, ",")
}

// Equal reports member-for-member equality in order.
func (ts TokenSet) Equal(other TokenSet) bool {
	if len(ts.tokens) != len(other.tokens) {
		return false
	}
	for i, t := range ts.tokens {
		if other.tokens[i] != t {
			return false
		}
	}
	return true
}

// Query is the parsed form of a scope:types:assignees filter. The zero
// value matches everything in every enumerable buffer.
type Query struct {
	Scope     ScopeKind
	Types     TokenSet
	Assignees TokenSet
}

// String renders the canonical three-segment form, e.g. "open:TODO,NOTE:alice".
func (q Query) String() string {
	return q.Scope.String() + ":" + q.Types.String() + ":" + q.Assignees.String()
}

// Equal reports segment-wise equality.
func (q Query) Equal(other Query) bool {
	return q.Scope == other.Scope &&
		q.Types.Equal(other.Types) &&
		q.Assignees.Equal(other.Assignees)
}

// Occurrence is one recognized annotation. Line and Column are 0-based;
// display layers render them 1-based. Assignee is nil when the annotation
// carried no parenthesized name.
type Occurrence struct {
	Buffer   BufferID `json:"buffer"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Type     string   `json:"type"`
	Assignee *string  `json:"assignee,omitempty"`
	Message  string   `json:"message"`
}

// AssigneeName returns the assignee and whether one is present.
func (o Occurrence) AssigneeName() (string, bool) {
	if o.Assignee == nil {
		return "", false
	}
	return *o.Assignee, true
}

// Heading renders the TYPE(assignee) label used in result listings.
func (o Occurrence) Heading() string {
	if name, ok := o.AssigneeName(); ok {
		return o.Type + "(" + name + ")"
	}
	return o.Type
}

// ScanStats records what a single pass touched. Observational only; nothing
// downstream branches on it.
type ScanStats struct {
	BuffersConsidered int           `json:"buffers_considered"`
	BuffersScanned    int           `json:"buffers_scanned"`
	BuffersUnreadable int           `json:"buffers_unreadable"`
	LinesScanned      int           `json:"lines_scanned"`
	Elapsed           time.Duration `json:"-"`
}

// MatchSet is the atomic result of one pass: the query that produced it and
// the surviving occurrences in buffer-then-line order.
type MatchSet struct {
	Query       Query
	Occurrences []Occurrence
	Stats       ScanStats
}

func (ms MatchSet) Len() int { return len(ms.Occurrences) }

func (ms MatchSet) Empty() bool { return len(ms.Occurrences) == 0 }

// BufferContent is the loaded text of one buffer plus precomputed line
// boundaries for zero-copy line slicing.
type BufferContent struct {
	ID      BufferID
	Content string
	// LineOffsets[i] is the byte offset where line i starts. Always has at
	// least one entry (0), so an empty buffer reads as one empty line.
	LineOffsets []int
	FastHash    uint64 // xxhash for quick equality checks
	Size        int64
	ModTime     time.Time
}

// NewBufferContent wraps raw text, computing line offsets and the content
// fingerprint.
func NewBufferContent(id BufferID, content string) BufferContent {
	return BufferContent{
		ID:          id,
		Content:     content,
		LineOffsets: ComputeLineOffsets(content),
		FastHash:    xxhash.Sum64String(content),
		Size:        int64(len(content)),
	}
}

// NumLines returns the line count. A trailing newline does not open a
// phantom final line.
func (bc BufferContent) NumLines() int {
	n := len(bc.LineOffsets)
	if n > 1 && bc.LineOffsets[n-1] == len(bc.Content) {
		return n - 1
	}
	return n
}

// Line returns the 0-based line i without its terminator. Out-of-range
// indexes return the empty string.
func (bc BufferContent) Line(i int) string {
	if i < 0 || i >= bc.NumLines() {
		return ""
	}
	start := bc.LineOffsets[i]
	end := len(bc.Content)
	if i+1 < len(bc.LineOffsets) {
		end = bc.LineOffsets[i+1] - 1 // drop the \n
	}
	return strings.TrimSuffix(bc.Content[start:end], "\r")
}

// ComputeLineOffsets returns the byte offset of each line start. Offset 0
// is always present; each \n opens a new line at the following byte.
func ComputeLineOffsets(content string) []int {
	offsets := make([]int, 1, 16)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
