package query

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/todoview/internal/types"
)

// suggestThreshold is the minimum Jaro-Winkler similarity before a
// candidate counts as a plausible misspelling. Below this the hint is
// more confusing than helpful.
const suggestThreshold = 0.8

// Suggest returns the configured keyword closest to token, when one is
// close enough to look like a typo. Exact members of known never produce
// a suggestion. Scoring folds case so "todo" still points at "TODO", but
// the returned hint is the keyword as configured.
func Suggest(token string, known []string) (string, bool) {
	folded := strings.ToLower(token)
	best := ""
	bestScore := float32(0)
	for _, candidate := range known {
		if candidate == token {
			return "", false
		}
		score, err := edlib.StringsSimilarity(folded, strings.ToLower(candidate), edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}

// UnknownTypes lists the type tokens of q that name no configured keyword,
// in query order. Wildcard queries have none.
func UnknownTypes(q types.Query, known []string) []string {
	if q.Types.IsWildcard() {
		return nil
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	var unknown []string
	for _, tok := range q.Types.Tokens() {
		if _, ok := knownSet[tok]; !ok {
			unknown = append(unknown, tok)
		}
	}
	return unknown
}
