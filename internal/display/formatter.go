// Package display renders match sets for terminals and tooling. Paths are
// converted to project-relative form at this boundary; everything upstream
// works with absolute buffer IDs.
package display

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/standardbeagle/todoview/internal/annotation"
	"github.com/standardbeagle/todoview/internal/types"
	"github.com/standardbeagle/todoview/pkg/pathutil"
)

// Formatter formats match sets for display
type Formatter struct {
	options Options
}

// Options controls result formatting
type Options struct {
	Format    string // "text", "json", "compact"
	Ellipsis  bool   // Soften long unfinished messages with " ..."
	ShowStats bool   // Append a scan summary after text results
	Root      string // Project root for relative path display
}

// NewFormatter creates a new result formatter
func NewFormatter(options Options) *Formatter {
	if options.Format == "" {
		options.Format = "text"
	}
	return &Formatter{options: options}
}

// Format formats a match set for display
func (f *Formatter) Format(ms types.MatchSet) string {
	switch f.options.Format {
	case "json":
		return f.formatJSON(ms)
	case "compact":
		return f.formatCompact(ms)
	default:
		return f.formatText(ms)
	}
}

// formatText groups occurrences under their buffer. Occurrences arrive in
// buffer-then-line order, so one linear pass over contiguous runs is enough.
func (f *Formatter) formatText(ms types.MatchSet) string {
	if ms.Empty() {
		if f.options.ShowStats {
			return "no matches found\n\n" + f.formatStats(ms.Stats)
		}
		return "no matches found\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matches in %.1fms\n\n",
		ms.Len(), float64(ms.Stats.Elapsed.Microseconds())/1000.0))

	occs := ms.Occurrences
	for start := 0; start < len(occs); {
		end := start
		for end < len(occs) && occs[end].Buffer == occs[start].Buffer {
			end++
		}

		path := pathutil.ToRelative(string(occs[start].Buffer), f.options.Root)
		sb.WriteString(fmt.Sprintf("%s (%d)\n", path, end-start))
		for _, occ := range occs[start:end] {
			sb.WriteString(fmt.Sprintf("  %d:%d  %s: %s\n",
				occ.Line+1, occ.Column+1, occ.Heading(), f.message(occ)))
		}
		sb.WriteString("\n")

		start = end
	}

	if f.options.ShowStats {
		sb.WriteString(f.formatStats(ms.Stats))
	}

	return sb.String()
}

// formatCompact emits one grep-style line per occurrence
func (f *Formatter) formatCompact(ms types.MatchSet) string {
	var sb strings.Builder
	for _, occ := range ms.Occurrences {
		path := pathutil.ToRelative(string(occ.Buffer), f.options.Root)
		sb.WriteString(fmt.Sprintf("%s:%d:%d:%s: %s\n",
			path, occ.Line+1, occ.Column+1, occ.Heading(), f.message(occ)))
	}
	return sb.String()
}

// formatJSON emits the full match set as a single JSON document
func (f *Formatter) formatJSON(ms types.MatchSet) string {
	results := pathutil.ToRelativeOccurrences(ms.Occurrences, f.options.Root)
	if results == nil {
		// Tools reading the document want an empty array, not null.
		results = []types.Occurrence{}
	}

	output := map[string]interface{}{
		"query":   ms.Query.String(),
		"time_ms": float64(ms.Stats.Elapsed.Microseconds()) / 1000.0,
		"count":   ms.Len(),
		"results": results,
		"stats":   ms.Stats,
	}

	buf, err := json.Marshal(output)
	if err != nil {
		return `{"error":"failed to encode results"}` + "\n"
	}
	return string(buf) + "\n"
}

// FormatJump renders a single navigation target with its cursor position.
// index is 0-based as reported by the navigator; display is 1-based.
func (f *Formatter) FormatJump(occ types.Occurrence, index, total int) string {
	path := pathutil.ToRelative(string(occ.Buffer), f.options.Root)
	return fmt.Sprintf("%s:%d:%d %s: %s [%d/%d]",
		path, occ.Line+1, occ.Column+1, occ.Heading(), f.message(occ), index+1, total)
}

func (f *Formatter) formatStats(stats types.ScanStats) string {
	return fmt.Sprintf("Scanned %d of %d buffers (%d lines, %d unreadable)\n",
		stats.BuffersScanned, stats.BuffersConsidered, stats.LinesScanned, stats.BuffersUnreadable)
}

func (f *Formatter) message(occ types.Occurrence) string {
	if f.options.Ellipsis {
		return annotation.FormatMessage(occ.Message)
	}
	return occ.Message
}
