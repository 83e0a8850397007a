// Package annotation recognizes TODO-style markers in single lines of text
// and scans buffers for them.
//
// The recognized shape is a configured keyword at a word boundary, an
// optional parenthesized assignee, then a colon, a space, and a non-empty
// message: "TODO: fix this" or "TODO(alice): refactor". The keyword
// vocabulary comes from host configuration, never from a compiled-in list.
package annotation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Annotation is one recognized marker within a line, before it is tied to
// a buffer and line number.
type Annotation struct {
	Type     string
	Assignee *string // nil when the marker carried no name
	Message  string
	Column   int // 0-based rune offset of the keyword within the line
}

// Grammar matches configured annotation keywords against single lines.
// Compile once per pass; matching is read-only and safe for reuse.
type Grammar struct {
	targets []string
	re      *regexp.Regexp
}

// Compile builds a Grammar from the target keywords. Targets are trimmed,
// empties dropped, duplicates collapsed. At least one target must survive.
func Compile(targets []string) (*Grammar, error) {
	cleaned := make([]string, 0, len(targets))
	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		cleaned = append(cleaned, t)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("annotation grammar needs at least one target keyword")
	}

	quoted := make([]string, len(cleaned))
	for i, t := range cleaned {
		quoted[i] = regexp.QuoteMeta(t)
	}
	re, err := regexp.Compile(`\b(` + strings.Join(quoted, "|") + `)(?:\(([^)]*)\))?: (.+)$`)
	if err != nil {
		return nil, fmt.Errorf("compile annotation grammar: %w", err)
	}

	return &Grammar{targets: cleaned, re: re}, nil
}

// Targets returns the keywords this grammar recognizes, in configured order.
func (g *Grammar) Targets() []string { return g.targets }

// MatchLine reports the first annotation in line, if any. At most one
// marker is recognized per line; the leftmost keyword wins. An empty
// parenthesized name reads as no assignee.
func (g *Grammar) MatchLine(line string) (Annotation, bool) {
	m := g.re.FindStringSubmatchIndex(line)
	if m == nil {
		return Annotation{}, false
	}

	ann := Annotation{
		Type:    line[m[2]:m[3]],
		Message: strings.TrimRight(line[m[6]:m[7]], " \t"),
		Column:  utf8.RuneCountInString(line[:m[2]]),
	}
	if m[4] >= 0 && m[5] > m[4] {
		name := line[m[4]:m[5]]
		ann.Assignee = &name
	}
	return ann, true
}
