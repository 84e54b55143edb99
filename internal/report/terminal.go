package report

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/leakscope/leakscope/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
}

// PrintSummary writes the human terminal summary: an overview table of the
// rules that fired, then the counters. Duration lives here, on the
// terminal, not in the rendered report.
func PrintSummary(w io.Writer, res *types.Result, opts PrintOptions) {
	if res.Status == types.StatusCancelled {
		fmt.Fprintln(w, "Scan cancelled — partial results below.")
	}
	if len(res.Groups) == 0 {
		fmt.Fprintln(w, "No sensitive information found ✅")
	} else {
		t := tablewriter.NewTable(w)
		t.Header("Rule", "Risk", "Matches", "Description")
		for _, rg := range res.Groups {
			for _, g := range rg.Rules {
				risk := riskLabel(g.Risk)
				if !opts.NoColor {
					risk = colorRisk(g.Risk)
				}
				_ = t.Append([]string{g.Rule, risk, fmt.Sprintf("%d", len(g.Matches)), g.Description})
			}
		}
		_ = t.Render()
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Matches: %d (high: %d, medium: %d, low: %d)\n",
		res.Stats.TotalMatches,
		res.Stats.ByRisk[types.RiskHigh],
		res.Stats.ByRisk[types.RiskMedium],
		res.Stats.ByRisk[types.RiskLow])
	fmt.Fprintf(w, "Files scanned: %d, skipped: %d", res.Stats.FilesScanned, res.Stats.FilesSkipped)
	if res.Stats.FilesErrored > 0 {
		fmt.Fprintf(w, " (%d unreadable)", res.Stats.FilesErrored)
	}
	fmt.Fprintln(w)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
}

func colorRisk(r types.Risk) string {
	switch r {
	case types.RiskHigh:
		return "\x1b[31mHigh\x1b[0m" // red
	case types.RiskMedium:
		return "\x1b[33mMedium\x1b[0m" // yellow
	default:
		return "\x1b[36mLow\x1b[0m" // cyan
	}
}
