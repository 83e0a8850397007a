package annotation

import (
	"github.com/standardbeagle/todoview/internal/types"
)

// LineScanner walks one buffer line by line and yields its annotations in
// line order. The cursor is lazy: lines past the last consumed match are
// untouched until the next call. A fresh scanner over the same content
// yields the identical sequence.
type LineScanner struct {
	grammar *Grammar
	buf     types.BufferContent
	next    int
}

// NewLineScanner starts a scan at the top of buf.
func NewLineScanner(g *Grammar, buf types.BufferContent) *LineScanner {
	return &LineScanner{grammar: g, buf: buf}
}

// Next returns the next annotation occurrence, or false when the buffer is
// exhausted. Non-matching lines are skipped silently.
func (s *LineScanner) Next() (types.Occurrence, bool) {
	for i := s.next; i < s.buf.NumLines(); i++ {
		ann, ok := s.grammar.MatchLine(s.buf.Line(i))
		if !ok {
			continue
		}
		s.next = i + 1
		return types.Occurrence{
			Buffer:   s.buf.ID,
			Line:     i,
			Column:   ann.Column,
			Type:     ann.Type,
			Assignee: ann.Assignee,
			Message:  ann.Message,
		}, true
	}
	s.next = s.buf.NumLines()
	return types.Occurrence{}, false
}

// Reset rewinds the scanner to the top of the buffer.
func (s *LineScanner) Reset() { s.next = 0 }

// LinesScanned reports how many lines the scanner has consumed so far.
func (s *LineScanner) LinesScanned() int { return s.next }

// ScanAll drains a fresh scan of buf into a slice. Buffers with no
// annotations return an empty (nil) slice, never an error.
func ScanAll(g *Grammar, buf types.BufferContent) []types.Occurrence {
	var out []types.Occurrence
	sc := NewLineScanner(g, buf)
	for {
		occ, ok := sc.Next()
		if !ok {
			return out
		}
		out = append(out, occ)
	}
}
