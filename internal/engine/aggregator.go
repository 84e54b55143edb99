package engine

import (
	"sort"
	"sync"

	"github.com/leakscope/leakscope/internal/rules"
	"github.com/leakscope/leakscope/internal/types"
)

// Aggregator is the single shared mutable piece of a running scan. All
// mutation goes through one mutex so statistics counters and the match
// collection always move together: an observer never sees a counter without
// its records, or the reverse.
type Aggregator struct {
	mu      sync.Mutex
	matches []types.Match
	stats   types.Stats
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		stats: types.Stats{ByRisk: map[types.Risk]int{}},
	}
}

// Record appends the records of one scanned file and bumps the scanned
// counter in the same critical section.
func (a *Aggregator) Record(ms []types.Match) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.FilesScanned++
	a.stats.TotalMatches += len(ms)
	for _, m := range ms {
		a.stats.ByRisk[m.Risk]++
	}
	a.matches = append(a.matches, ms...)
}

// RecordSkip counts one skipped file.
func (a *Aggregator) RecordSkip(reason types.SkipReason) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.FilesSkipped++
	if reason == types.SkipUnreadable {
		a.stats.FilesErrored++
	}
}

// Snapshot returns a consistent point-in-time copy of the counters, safe to
// call while workers are still recording.
func (a *Aggregator) Snapshot() types.Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats.Clone()
}

// Finalize groups everything recorded so far into the terminal Result:
// sections by risk (high, medium, low), rules within a section in registry
// configuration order, matches within a rule sorted by path then line.
// Grouping happens after aggregation, so the outcome is independent of
// worker scheduling. Call it once, after all workers have joined.
func (a *Aggregator) Finalize(root string, status types.Status, active []rules.Rule) *types.Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	byRule := map[string][]types.Match{}
	for _, m := range a.matches {
		byRule[m.Rule] = append(byRule[m.Rule], m)
	}

	res := &types.Result{
		Root:   root,
		Status: status,
		Stats:  a.stats.Clone(),
	}
	for _, risk := range types.RiskOrder {
		rg := types.RiskGroup{Risk: risk}
		for _, r := range active {
			if r.Risk != risk {
				continue
			}
			ms := byRule[r.Name]
			if len(ms) == 0 {
				continue
			}
			sort.Slice(ms, func(i, j int) bool {
				if ms[i].Path != ms[j].Path {
					return ms[i].Path < ms[j].Path
				}
				return ms[i].Line < ms[j].Line
			})
			rg.Rules = append(rg.Rules, types.RuleGroup{
				Rule:        r.Name,
				Description: r.Description,
				Risk:        risk,
				Matches:     ms,
			})
		}
		if len(rg.Rules) > 0 {
			res.Groups = append(res.Groups, rg)
		}
	}
	return res
}
