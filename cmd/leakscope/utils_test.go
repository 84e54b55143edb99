package leakscope

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestPickString_Precedence(t *testing.T) {
	if got := pickString("cli", strptr("local"), strptr("global")); got != "cli" {
		t.Errorf("cli should win, got %q", got)
	}
	if got := pickString("", strptr("local"), strptr("global")); got != "local" {
		t.Errorf("local should beat global, got %q", got)
	}
	if got := pickString("", nil, strptr("global")); got != "global" {
		t.Errorf("global should apply last, got %q", got)
	}
	if got := pickString("", nil, nil); got != "" {
		t.Errorf("expected empty fallback, got %q", got)
	}
}

func TestPickBool(t *testing.T) {
	if !pickBool(true, boolptr(false), nil) {
		t.Error("a set CLI flag must win")
	}
	if !pickBool(false, boolptr(true), boolptr(false)) {
		t.Error("local config should beat global")
	}
	if pickBool(false, nil, nil) {
		t.Error("expected false fallback")
	}
}

func TestPickBoolDefault(t *testing.T) {
	// an explicitly set flag always wins, even when it matches the default
	if pickBoolDefault(true, false, boolptr(true), nil, true) {
		t.Error("set flag must override config")
	}
	// config files apply when the flag was left alone
	if pickBoolDefault(false, true, boolptr(false), nil, true) {
		t.Error("local config false must be honored")
	}
	if pickBoolDefault(false, true, nil, boolptr(false), true) {
		t.Error("global config false must be honored")
	}
	// nothing set anywhere: the default stands
	if !pickBoolDefault(false, true, nil, nil, true) {
		t.Error("expected the default to apply")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" .tpl, .conf2 ,,")
	want := []string{".tpl", ".conf2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList = %v, want %v", got, want)
	}
	if splitList("") != nil {
		t.Error("empty input should yield nil")
	}
}

func TestResolveRules(t *testing.T) {
	root := t.TempDir()

	// Nothing configured: built-in set.
	reg, source, err := resolveRules(root, "")
	if err != nil {
		t.Fatalf("resolveRules: %v", err)
	}
	if len(reg.ActiveRules()) == 0 || source != "built-in rules" {
		t.Fatalf("expected built-in rules, got %q with %d rules", source, len(reg.ActiveRules()))
	}

	// A leakscope_rules.yml in the root is picked up automatically.
	local := filepath.Join(root, localRulesName)
	yml := "phone:\n  regex: \"\\\\d{11}\"\n  risk_level: high\n"
	if err := os.WriteFile(local, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, source, err = resolveRules(root, "")
	if err != nil {
		t.Fatalf("resolveRules with local file: %v", err)
	}
	if source != localRulesName || len(reg.ActiveRules()) != 1 {
		t.Fatalf("expected the local file to win, got %q with %d rules", source, len(reg.ActiveRules()))
	}

	// An explicit path beats everything and its errors are fatal.
	if _, _, err := resolveRules(root, filepath.Join(root, "missing.yml")); err == nil {
		t.Fatal("expected an error for a missing explicit rules file")
	}
}
