package rules

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/leakscope/leakscope/internal/types"
)

// Rule is a single named pattern with its risk classification. Rules are
// immutable once loaded; a reload builds a whole new set.
type Rule struct {
	Name        string
	Regexp      *regexp.Regexp
	Description string
	Risk        types.Risk
	Enabled     bool
}

// ConfigError reports an invalid rule source. A load either succeeds in full
// or fails with ConfigError; a partially-applied rule set never escapes.
type ConfigError struct {
	Rule string // offending rule name, empty for document-level problems
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("rules: rule %q: %s", e.Rule, e.Msg)
	}
	return "rules: " + e.Msg
}

// ErrScanActive is returned by Reload while a scan holds the registry.
var ErrScanActive = errors.New("rules: reload refused while a scan is active")

// Registry holds the loaded rule set. The set is swapped atomically by
// Reload, which is refused while any scan is in flight.
type Registry struct {
	mu     sync.Mutex
	active int
	rules  []Rule
}

// ruleSpec is the on-disk shape of one rule. Unknown fields are ignored.
type ruleSpec struct {
	Regex       *string `yaml:"regex"`
	Description string  `yaml:"description"`
	RiskLevel   *string `yaml:"risk_level"`
	Enabled     *bool   `yaml:"enabled"`
}

// Load parses a YAML mapping of rule name to rule spec. Document order is
// preserved so that ActiveRules, and therefore report grouping, is stable
// across runs with identical configuration.
func Load(data []byte) (*Registry, error) {
	rs, err := parse(data)
	if err != nil {
		return nil, err
	}
	return &Registry{rules: rs}, nil
}

// LoadFile reads and parses a rule file.
func LoadFile(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("read %s: %v", path, err)}
	}
	return Load(b)
}

func parse(data []byte) ([]Rule, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Msg: "invalid YAML: " + err.Error()}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil // empty source, empty registry
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ConfigError{Msg: "rule source must be a mapping of name to rule"}
	}

	var out []Rule
	seen := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if name == "" {
			return nil, &ConfigError{Msg: "rule with empty name"}
		}
		if seen[name] {
			return nil, &ConfigError{Rule: name, Msg: "duplicate rule name"}
		}
		seen[name] = true

		var spec ruleSpec
		if err := root.Content[i+1].Decode(&spec); err != nil {
			return nil, &ConfigError{Rule: name, Msg: "invalid rule entry: " + err.Error()}
		}
		if spec.Regex == nil || *spec.Regex == "" {
			return nil, &ConfigError{Rule: name, Msg: "missing required field: regex"}
		}
		if spec.RiskLevel == nil || *spec.RiskLevel == "" {
			return nil, &ConfigError{Rule: name, Msg: "missing required field: risk_level"}
		}
		risk, ok := parseRisk(*spec.RiskLevel)
		if !ok {
			return nil, &ConfigError{Rule: name, Msg: fmt.Sprintf("unknown risk_level %q", *spec.RiskLevel)}
		}
		re, err := regexp.Compile(*spec.Regex)
		if err != nil {
			return nil, &ConfigError{Rule: name, Msg: "regex does not compile: " + err.Error()}
		}
		enabled := true
		if spec.Enabled != nil {
			enabled = *spec.Enabled
		}
		out = append(out, Rule{
			Name:        name,
			Regexp:      re,
			Description: spec.Description,
			Risk:        risk,
			Enabled:     enabled,
		})
	}
	return out, nil
}

// parseRisk accepts both the English levels and the legacy Chinese values
// (高/中/低) found in older rule files.
func parseRisk(s string) (types.Risk, bool) {
	switch s {
	case "high", "High", "高":
		return types.RiskHigh, true
	case "medium", "Medium", "中":
		return types.RiskMedium, true
	case "low", "Low", "低":
		return types.RiskLow, true
	}
	return "", false
}

// ActiveRules returns the enabled rules in configuration order. The slice is
// a copy; callers may hold it across a whole scan.
func (r *Registry) ActiveRules() []Rule {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Rule, 0, len(r.rules))
	for _, ru := range r.rules {
		if ru.Enabled {
			out = append(out, ru)
		}
	}
	return out
}

// AllRules returns every loaded rule, disabled ones included, in
// configuration order.
func (r *Registry) AllRules() []Rule {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Reload atomically replaces the rule set. It fails with ErrScanActive while
// any scan started through BeginScan has not finished, and with ConfigError
// if the new source is invalid (the old set stays in place).
func (r *Registry) Reload(data []byte) error {
	rs, err := parse(data)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active > 0 {
		return ErrScanActive
	}
	r.rules = rs
	return nil
}

// BeginScan marks the registry as in use and returns the release func.
// The engine calls this for the duration of Run so Reload cannot swap rules
// under a running scan.
func (r *Registry) BeginScan() func() {
	r.mu.Lock()
	r.active++
	r.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			r.active--
			r.mu.Unlock()
		})
	}
}
