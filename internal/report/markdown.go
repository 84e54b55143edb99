// Package report renders aggregated scan results. Rendering is a pure
// function of the Result: it never re-reads scanned files, and identical
// results produce byte-identical documents.
package report

import (
	"fmt"
	"strings"

	"github.com/leakscope/leakscope/internal/types"
)

func riskHeading(r types.Risk) string {
	switch r {
	case types.RiskHigh:
		return "🔴 High risk"
	case types.RiskMedium:
		return "🟡 Medium risk"
	default:
		return "🟢 Low risk"
	}
}

func riskLabel(r types.Risk) string {
	switch r {
	case types.RiskHigh:
		return "High"
	case types.RiskMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// Render produces the Markdown report: statistics summary, a per-rule
// overview table, then one section per risk level with one subsection per
// rule, listing files, line numbers, and sanitized snippets. No timestamps
// or durations appear here; unchanged input renders unchanged bytes.
func Render(res *types.Result) string {
	var b strings.Builder

	b.WriteString("# Sensitive Information Scan Report\n\n")
	if res.Status == types.StatusCancelled {
		b.WriteString("> Scan was cancelled; this report covers everything processed before the stop.\n\n")
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Files scanned | %d |\n", res.Stats.FilesScanned)
	fmt.Fprintf(&b, "| Files skipped | %d |\n", res.Stats.FilesSkipped)
	fmt.Fprintf(&b, "| Unreadable files | %d |\n", res.Stats.FilesErrored)
	fmt.Fprintf(&b, "| Total matches | %d |\n", res.Stats.TotalMatches)
	for _, r := range types.RiskOrder {
		fmt.Fprintf(&b, "| %s risk matches | %d |\n", riskLabel(r), res.Stats.ByRisk[r])
	}
	b.WriteString("\n")

	if len(res.Groups) == 0 {
		b.WriteString("✅ No sensitive information found.\n")
		return b.String()
	}

	b.WriteString("## Overview\n\n")
	b.WriteString("| Rule | Risk | Matches | Description |\n")
	b.WriteString("|------|------|---------|-------------|\n")
	for _, rg := range res.Groups {
		for _, g := range rg.Rules {
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", g.Rule, riskLabel(g.Risk), len(g.Matches), g.Description)
		}
	}
	b.WriteString("\n")

	for _, rg := range res.Groups {
		fmt.Fprintf(&b, "## %s\n\n", riskHeading(rg.Risk))
		for _, g := range rg.Rules {
			fmt.Fprintf(&b, "### %s\n\n", g.Rule)
			if g.Description != "" {
				fmt.Fprintf(&b, "%s — %d match(es)\n\n", g.Description, len(g.Matches))
			} else {
				fmt.Fprintf(&b, "%d match(es)\n\n", len(g.Matches))
			}
			for _, m := range g.Matches {
				fmt.Fprintf(&b, "- `%s:%d` — `%s`\n", m.Path, m.Line, escapeSnippet(m.Snippet))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// escapeSnippet keeps backticks in matched lines from breaking the inline
// code span around them.
func escapeSnippet(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}
