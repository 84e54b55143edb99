package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leakscope/leakscope/internal/types"
)

func sampleResult() *types.Result {
	return &types.Result{
		Root:   "/tmp/tree",
		Status: types.StatusCompleted,
		Groups: []types.RiskGroup{
			{
				Risk: types.RiskHigh,
				Rules: []types.RuleGroup{
					{
						Rule: "cn_mobile", Description: "Mainland China mobile phone number", Risk: types.RiskHigh,
						Matches: []types.Match{
							{Path: "a.txt", Line: 3, Rule: "cn_mobile", Risk: types.RiskHigh, Snippet: "phone: 13800138000"},
							{Path: "b/c.txt", Line: 1, Rule: "cn_mobile", Risk: types.RiskHigh, Snippet: "13900139000"},
						},
					},
				},
			},
			{
				Risk: types.RiskLow,
				Rules: []types.RuleGroup{
					{
						Rule: "url", Description: "URL", Risk: types.RiskLow,
						Matches: []types.Match{
							{Path: "a.txt", Line: 9, Rule: "url", Risk: types.RiskLow, Snippet: "see `https://internal.example.com`"},
						},
					},
				},
			},
		},
		Stats: types.Stats{
			FilesScanned: 4,
			FilesSkipped: 1,
			TotalMatches: 3,
			ByRisk:       map[types.Risk]int{types.RiskHigh: 2, types.RiskLow: 1},
		},
	}
}

func TestRender_Deterministic(t *testing.T) {
	res := sampleResult()
	first := Render(res)
	second := Render(res)
	if first != second {
		t.Fatal("identical input must render identical bytes")
	}
}

func TestRender_SectionsAndContent(t *testing.T) {
	doc := Render(sampleResult())

	highIdx := strings.Index(doc, "## 🔴 High risk")
	lowIdx := strings.Index(doc, "## 🟢 Low risk")
	if highIdx < 0 || lowIdx < 0 {
		t.Fatalf("missing risk sections:\n%s", doc)
	}
	if highIdx > lowIdx {
		t.Fatal("high-risk section must precede low-risk section")
	}
	if !strings.Contains(doc, "`a.txt:3` — `phone: 13800138000`") {
		t.Fatalf("missing match line:\n%s", doc)
	}
	if !strings.Contains(doc, "| Files scanned | 4 |") {
		t.Fatal("missing stats row")
	}
	// backticks in snippets must not break the code span
	if strings.Contains(doc, "``https") {
		t.Fatal("snippet backticks not escaped")
	}
}

func TestRender_CancelledNote(t *testing.T) {
	res := sampleResult()
	res.Status = types.StatusCancelled
	doc := Render(res)
	if !strings.Contains(doc, "cancelled") {
		t.Fatal("cancelled scans must be called out in the report")
	}
}

func TestRender_NoMatches(t *testing.T) {
	res := &types.Result{
		Status: types.StatusCompleted,
		Stats:  types.Stats{FilesScanned: 2, ByRisk: map[types.Risk]int{}},
	}
	doc := Render(res)
	if !strings.Contains(doc, "No sensitive information found") {
		t.Fatalf("expected empty-result message:\n%s", doc)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleResult(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "Matches: 3 (high: 2, medium: 0, low: 1)") {
		t.Fatalf("missing counters:\n%s", out)
	}
	if !strings.Contains(out, "cn_mobile") {
		t.Fatalf("missing rule row:\n%s", out)
	}
}
