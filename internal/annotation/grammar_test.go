package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, targets ...string) *Grammar {
	t.Helper()
	g, err := Compile(targets)
	require.NoError(t, err)
	return g
}

func TestCompile(t *testing.T) {
	g := mustCompile(t, " TODO ", "NOTE", "TODO", "")
	assert.Equal(t, []string{"TODO", "NOTE"}, g.Targets(),
		"targets are trimmed, deduplicated, order-preserving")

	_, err := Compile(nil)
	assert.Error(t, err)

	_, err = Compile([]string{"", "  "})
	assert.Error(t, err)
}

func TestCompile_MetacharactersInTargets(t *testing.T) {
	g := mustCompile(t, "TODO", "FIX.ME")

	_, ok := g.MatchLine("FIX.ME: literal dot only")
	assert.True(t, ok)

	_, ok = g.MatchLine("FIXxME: must not match")
	assert.False(t, ok, "metacharacters in targets are quoted, not interpreted")
}

func TestMatchLine(t *testing.T) {
	g := mustCompile(t, "TODO", "NOTE", "FIXME")

	tests := []struct {
		name     string
		line     string
		ok       bool
		typ      string
		assignee string // "" means absent
		message  string
		column   int
	}{
		{name: "bare keyword", line: "TODO: fix this", ok: true, typ: "TODO", message: "fix this"},
		{name: "with assignee", line: "TODO(alice): refactor", ok: true, typ: "TODO", assignee: "alice", message: "refactor"},
		{name: "second keyword", line: "NOTE(bob): check", ok: true, typ: "NOTE", assignee: "bob", message: "check"},
		{name: "inside comment syntax", line: "// FIXME: handle nil", ok: true, typ: "FIXME", message: "handle nil", column: 3},
		{name: "hash comment with assignee", line: "# TODO(carol): port it", ok: true, typ: "TODO", assignee: "carol", message: "port it", column: 2},
		{name: "empty parens read as no assignee", line: "TODO(): orphaned", ok: true, typ: "TODO", message: "orphaned"},
		{name: "plain assignment line", line: "x = 1", ok: false},
		{name: "keyword without colon", line: "TODO fix this", ok: false},
		{name: "no space after colon", line: "TODO:fix", ok: false},
		{name: "empty message", line: "TODO: ", ok: false},
		{name: "keyword mid-word", line: "NOTETODO: x", ok: false},
		{name: "space before parens", line: "TODO (alice): fix", ok: false},
		{name: "lowercase keyword", line: "todo: fix", ok: false},
		{name: "unconfigured keyword", line: "HACK: around it", ok: false},
		{name: "trailing spaces trimmed", line: "TODO: fix this   ", ok: true, typ: "TODO", message: "fix this"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann, ok := g.MatchLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.typ, ann.Type)
			assert.Equal(t, tt.message, ann.Message)
			assert.Equal(t, tt.column, ann.Column)
			name, has := "", false
			if ann.Assignee != nil {
				name, has = *ann.Assignee, true
			}
			assert.Equal(t, tt.assignee != "", has)
			assert.Equal(t, tt.assignee, name)
		})
	}
}

func TestMatchLine_FirstMatchWins(t *testing.T) {
	g := mustCompile(t, "TODO", "NOTE")

	ann, ok := g.MatchLine("TODO: see NOTE: other half")
	require.True(t, ok)
	assert.Equal(t, "TODO", ann.Type)
	assert.Equal(t, "see NOTE: other half", ann.Message,
		"one annotation per line; the rest of the line is its message")

	ann, ok = g.MatchLine("NOTE: then TODO: later")
	require.True(t, ok)
	assert.Equal(t, "NOTE", ann.Type, "leftmost keyword wins regardless of target order")
}

func TestMatchLine_ColumnIsRuneOffset(t *testing.T) {
	g := mustCompile(t, "TODO")

	ann, ok := g.MatchLine("日本語 TODO: translate")
	require.True(t, ok)
	assert.Equal(t, 4, ann.Column, "column counts runes, not bytes")
}
