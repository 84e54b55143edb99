package types

// Risk is the sensitivity classification attached to a pattern rule and to
// every match it produces.
type Risk string

const (
	RiskHigh   Risk = "high"
	RiskMedium Risk = "medium"
	RiskLow    Risk = "low"
)

// RiskOrder lists risk levels from most to least severe. Report sections and
// grouped results follow this order.
var RiskOrder = []Risk{RiskHigh, RiskMedium, RiskLow}

// Match is one occurrence of a rule firing against a line of a file. There is
// at most one Match per (path, line, rule); repeated hits of the same rule
// within a line collapse into a single record.
type Match struct {
	Path    string `json:"path"`
	Line    int    `json:"line"` // 1-based
	Rule    string `json:"rule"`
	Risk    Risk   `json:"risk"`
	Snippet string `json:"snippet"` // sanitized line text
}

// SkipReason says why a file was not scanned.
type SkipReason string

const (
	SkipBinary      SkipReason = "binary"
	SkipUndecodable SkipReason = "undecodable"
	SkipUnreadable  SkipReason = "unreadable"
	SkipTooLarge    SkipReason = "too_large"
)

// Stats are running scan counters. They are mutated only by the aggregator;
// observers receive copies.
type Stats struct {
	FilesScanned int          `json:"files_scanned"`
	FilesSkipped int          `json:"files_skipped"`
	FilesErrored int          `json:"files_errored"` // unreadable, subset-style counter alongside FilesSkipped
	TotalMatches int          `json:"total_matches"`
	ByRisk       map[Risk]int `json:"by_risk"`
}

// Clone returns an independent copy safe to hand to observers.
func (s Stats) Clone() Stats {
	out := s
	out.ByRisk = make(map[Risk]int, len(s.ByRisk))
	for k, v := range s.ByRisk {
		out.ByRisk[k] = v
	}
	return out
}

// Status is the terminal state of a scan. Cancelled is a valid outcome, not
// an error: the result still carries everything aggregated up to that point.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// RuleGroup collects the matches of a single rule, ordered by path then line.
type RuleGroup struct {
	Rule        string  `json:"rule"`
	Description string  `json:"description"`
	Risk        Risk    `json:"risk"`
	Matches     []Match `json:"matches"`
}

// RiskGroup is one report section: all rule groups of a risk level, in rule
// configuration order.
type RiskGroup struct {
	Risk  Risk        `json:"risk"`
	Rules []RuleGroup `json:"rules"`
}

// Result is the terminal aggregate of a scan, produced once by the
// aggregator's Finalize and immutable afterwards.
type Result struct {
	Root   string      `json:"root"`
	Status Status      `json:"status"`
	Groups []RiskGroup `json:"groups"`
	Stats  Stats       `json:"stats"`
}

// AllMatches flattens the grouped records in report order.
func (r *Result) AllMatches() []Match {
	var out []Match
	for _, rg := range r.Groups {
		for _, g := range rg.Rules {
			out = append(out, g.Matches...)
		}
	}
	return out
}
