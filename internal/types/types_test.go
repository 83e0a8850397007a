package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenSet(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		wildcard bool
		tokens   []string
	}{
		{name: "nil is wildcard", raw: nil, wildcard: true},
		{name: "empty slice is wildcard", raw: []string{}, wildcard: true},
		{name: "lone star is wildcard", raw: []string{"*"}, wildcard: true},
		{name: "blank tokens dropped", raw: []string{"", "  ", "\t"}, wildcard: true},
		{name: "members trimmed", raw: []string{" TODO ", "NOTE"}, tokens: []string{"TODO", "NOTE"}},
		{name: "duplicates keep first position", raw: []string{"TODO", "NOTE", "TODO"}, tokens: []string{"TODO", "NOTE"}},
		{name: "star among members dropped", raw: []string{"TODO", "*"}, tokens: []string{"TODO"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenSet(tt.raw)
			assert.Equal(t, tt.wildcard, ts.IsWildcard())
			assert.Equal(t, tt.tokens, ts.Tokens())
		})
	}
}

func TestTokenSet_Contains(t *testing.T) {
	ts := NewTokenSet([]string{"TODO", "NOTE"})

	assert.True(t, ts.Contains("TODO"))
	assert.True(t, ts.Contains("NOTE"))
	assert.False(t, ts.Contains("FIXME"))
	assert.False(t, ts.Contains("todo"), "membership is case-sensitive")

	wild := NewTokenSet(nil)
	assert.True(t, wild.Contains("anything"))
	assert.True(t, wild.Contains(""))
}

func TestTokenSet_String(t *testing.T) {
	assert.Equal(t, "*", NewTokenSet(nil).String())
	assert.Equal(t, "TODO,NOTE", NewTokenSet([]string{"TODO", "NOTE"}).String())
}

func TestQuery_String(t *testing.T) {
	q := Query{
		Scope:     ScopeOpenFiles,
		Types:     NewTokenSet([]string{"TODO", "NOTE"}),
		Assignees: NewTokenSet([]string{"jdkato"}),
	}
	assert.Equal(t, "open:TODO,NOTE:jdkato", q.String())

	assert.Equal(t, "*:*:*", Query{}.String())
}

func TestOccurrence_Heading(t *testing.T) {
	alice := "alice"

	withAssignee := Occurrence{Type: "TODO", Assignee: &alice}
	assert.Equal(t, "TODO(alice)", withAssignee.Heading())

	without := Occurrence{Type: "NOTE"}
	assert.Equal(t, "NOTE", without.Heading())

	name, ok := withAssignee.AssigneeName()
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	_, ok = without.AssigneeName()
	assert.False(t, ok)
}

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		name    string
		content string
		offsets []int
	}{
		{name: "empty", content: "", offsets: []int{0}},
		{name: "single line no newline", content: "abc", offsets: []int{0}},
		{name: "two lines", content: "ab\ncd", offsets: []int{0, 3}},
		{name: "trailing newline", content: "ab\n", offsets: []int{0, 3}},
		{name: "blank interior line", content: "a\n\nb", offsets: []int{0, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offsets, ComputeLineOffsets(tt.content))
		})
	}
}

func TestBufferContent_Lines(t *testing.T) {
	bc := NewBufferContent("mem://a", "x = 1\nTODO: fix this\r\nlast")

	require.Equal(t, 3, bc.NumLines())
	assert.Equal(t, "x = 1", bc.Line(0))
	assert.Equal(t, "TODO: fix this", bc.Line(1), "carriage return is stripped")
	assert.Equal(t, "last", bc.Line(2))
	assert.Equal(t, "", bc.Line(3))
	assert.Equal(t, "", bc.Line(-1))
}

func TestBufferContent_TrailingNewline(t *testing.T) {
	bc := NewBufferContent("mem://b", "one\ntwo\n")

	assert.Equal(t, 2, bc.NumLines(), "trailing newline opens no extra line")
	assert.Equal(t, "one", bc.Line(0))
	assert.Equal(t, "two", bc.Line(1))
}

func TestBufferContent_Empty(t *testing.T) {
	bc := NewBufferContent("mem://empty", "")

	assert.Equal(t, 1, bc.NumLines())
	assert.Equal(t, "", bc.Line(0))
	assert.NotZero(t, bc.FastHash, "xxhash of empty input is a fixed nonzero seed")
}

func TestBufferContent_FastHash(t *testing.T) {
	a := NewBufferContent("mem://a", "same content")
	b := NewBufferContent("mem://b", "same content")
	c := NewBufferContent("mem://c", "different content")

	assert.Equal(t, a.FastHash, b.FastHash)
	assert.NotEqual(t, a.FastHash, c.FastHash)
}
