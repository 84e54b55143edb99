// Package match applies the active rule set to a single decoded file. It is
// pure with respect to its inputs and safe to call concurrently across files.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leakscope/leakscope/internal/classify"
	"github.com/leakscope/leakscope/internal/rules"
	"github.com/leakscope/leakscope/internal/types"
)

// maxSnippetRunes caps stored line text so one pathological line cannot
// bloat the report.
const maxSnippetRunes = 200

// Scan tests every active rule against every line of df. A rule records at
// most one match per line, however many times it fires within that line.
// Records come back line-ascending; same-line records follow the rule order
// of the given slice (configuration order).
func Scan(path string, df classify.DecodedFile, active []rules.Rule) []types.Match {
	var out []types.Match
	for i, line := range df.Lines {
		for _, r := range active {
			if !r.Enabled {
				continue
			}
			if !r.Regexp.MatchString(line) {
				continue
			}
			out = append(out, types.Match{
				Path:    path,
				Line:    i + 1,
				Rule:    r.Name,
				Risk:    r.Risk,
				Snippet: Sanitize(line),
			})
		}
	}
	return out
}

// Sanitize strips control characters from a line and caps its length for
// display. Tabs become single spaces so indented snippets stay readable.
func Sanitize(line string) string {
	line = strings.TrimSpace(line)
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		switch {
		case r == '\t':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if utf8.RuneCountInString(s) > maxSnippetRunes {
		runes := []rune(s)
		s = string(runes[:maxSnippetRunes]) + "…"
	}
	return s
}
