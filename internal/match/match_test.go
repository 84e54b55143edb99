package match

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leakscope/leakscope/internal/classify"
	"github.com/leakscope/leakscope/internal/rules"
	"github.com/leakscope/leakscope/internal/types"
)

func mustRules(t *testing.T, src string) []rules.Rule {
	t.Helper()
	reg, err := rules.Load([]byte(src))
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	return reg.ActiveRules()
}

func TestScan_OneRecordPerMatchingLine(t *testing.T) {
	active := mustRules(t, "phone:\n  regex: '\\b1[3456789]\\d{9}\\b'\n  risk_level: high\n")

	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, fmt.Sprintf("contact %d: 1380013800%d", i, i))
	}
	df := classify.DecodedFile{Lines: lines, Encoding: "utf-8"}

	got := Scan("a.txt", df, active)
	if len(got) != 5 {
		t.Fatalf("expected 5 records, got %d", len(got))
	}
	for i, m := range got {
		if m.Line != i+1 {
			t.Fatalf("record %d: line %d, want %d", i, m.Line, i+1)
		}
		if m.Rule != "phone" || m.Risk != types.RiskHigh || m.Path != "a.txt" {
			t.Fatalf("record %d: unexpected fields %+v", i, m)
		}
	}
}

func TestScan_RepeatedHitsOnOneLineCollapse(t *testing.T) {
	active := mustRules(t, "phone:\n  regex: '\\b1[3456789]\\d{9}\\b'\n  risk_level: high\n")
	df := classify.DecodedFile{Lines: []string{"13800138000 and 13900139000 on one line"}}

	got := Scan("a.txt", df, active)
	if len(got) != 1 {
		t.Fatalf("expected 1 record for two hits on one line, got %d", len(got))
	}
}

func TestScan_MultipleRulesSameLineInConfigOrder(t *testing.T) {
	// both rules match the line; zz_rule comes first in config order despite
	// sorting last lexically and matching later in the line
	active := mustRules(t, "zz_rule:\n  regex: 'beta'\n  risk_level: low\naa_rule:\n  regex: 'alpha'\n  risk_level: high\n")
	df := classify.DecodedFile{Lines: []string{"alpha then beta"}}

	got := Scan("a.txt", df, active)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Rule != "zz_rule" || got[1].Rule != "aa_rule" {
		t.Fatalf("records out of config order: %s, %s", got[0].Rule, got[1].Rule)
	}
}

func TestScan_DisabledRuleNeverFires(t *testing.T) {
	reg, err := rules.Load([]byte("off:\n  regex: '.'\n  risk_level: high\n  enabled: false\non:\n  regex: 'x'\n  risk_level: low\n"))
	if err != nil {
		t.Fatal(err)
	}
	df := classify.DecodedFile{Lines: []string{"x everywhere"}}

	got := Scan("a.txt", df, reg.ActiveRules())
	for _, m := range got {
		if m.Rule == "off" {
			t.Fatalf("disabled rule produced a record: %+v", m)
		}
	}
	if len(got) != 1 {
		t.Fatalf("expected only the enabled rule to fire, got %d records", len(got))
	}
}

func TestScan_EmptyFile(t *testing.T) {
	active := mustRules(t, "any:\n  regex: '.'\n  risk_level: low\n")
	got := Scan("empty.txt", classify.DecodedFile{}, active)
	if len(got) != 0 {
		t.Fatalf("expected no records for empty file, got %d", len(got))
	}
}

func TestSanitize(t *testing.T) {
	in := "\tkey =\x00 value\x07  "
	got := Sanitize(in)
	if got != "key = value" {
		t.Fatalf("Sanitize(%q) = %q", in, got)
	}

	long := strings.Repeat("a", 500)
	capped := Sanitize(long)
	if len([]rune(capped)) != maxSnippetRunes+1 { // cap plus ellipsis
		t.Fatalf("expected capped snippet, got %d runes", len([]rune(capped)))
	}
}
