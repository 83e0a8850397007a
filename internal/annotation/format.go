package annotation

import (
	"strings"
	"unicode/utf8"
)

// messageEllipsisLen is the rune count above which a displayed message
// gains a trailing " ..." unless it already reads as a finished sentence.
const messageEllipsisLen = 30

// FormatMessage prepares a message for display. Long messages that do not
// end in sentence punctuation get an ellipsis so truncated thoughts read
// as such in result listings. Stored occurrences keep the raw message.
func FormatMessage(msg string) string {
	if utf8.RuneCountInString(msg) <= messageEllipsisLen {
		return msg
	}
	if strings.HasSuffix(msg, ".") || strings.HasSuffix(msg, "?") || strings.HasSuffix(msg, "!") {
		return msg
	}
	return msg + " ..."
}
