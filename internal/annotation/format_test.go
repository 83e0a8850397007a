package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	long := strings.Repeat("x", 31)

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "short unchanged", in: "fix this", out: "fix this"},
		{name: "exactly at limit unchanged", in: strings.Repeat("x", 30), out: strings.Repeat("x", 30)},
		{name: "long gains ellipsis", in: long, out: long + " ..."},
		{name: "long sentence with period unchanged", in: long + ".", out: long + "."},
		{name: "long question unchanged", in: long + "?", out: long + "?"},
		{name: "long exclamation unchanged", in: long + "!", out: long + "!"},
		{name: "empty unchanged", in: "", out: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, FormatMessage(tt.in))
		})
	}
}

func TestFormatMessage_CountsRunes(t *testing.T) {
	// 30 multi-byte runes stay under the limit even though the byte count
	// is far above it.
	msg := strings.Repeat("語", 30)
	assert.Equal(t, msg, FormatMessage(msg))

	msg = strings.Repeat("語", 31)
	assert.Equal(t, msg+" ...", FormatMessage(msg))
}
