package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var knownTargets = []string{"TODO", "NOTE", "FIXME", "XXX", "HACK"}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{name: "close misspelling", token: "TOOD", want: "TODO", ok: true},
		{name: "lowercase variant", token: "todo", want: "TODO", ok: true},
		{name: "dropped letter", token: "FIXM", want: "FIXME", ok: true},
		{name: "exact member no hint", token: "NOTE", ok: false},
		{name: "nothing close", token: "zzzzzz", ok: false},
		{name: "empty token", token: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.token, knownTargets)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSuggest_NoCandidates(t *testing.T) {
	_, ok := Suggest("TODO", nil)
	assert.False(t, ok)
}

func TestUnknownTypes(t *testing.T) {
	assert.Nil(t, UnknownTypes(Parse("*:*:*"), knownTargets),
		"wildcard type set asks for no hints")

	unknown := UnknownTypes(Parse("*:TODO,TOOD,QUIRK:alice"), knownTargets)
	assert.Equal(t, []string{"TOOD", "QUIRK"}, unknown)
}
