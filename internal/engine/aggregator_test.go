package engine

import (
	"sync"
	"testing"

	"github.com/leakscope/leakscope/internal/rules"
	"github.com/leakscope/leakscope/internal/types"
)

func TestAggregator_ConcurrentRecording(t *testing.T) {
	agg := NewAggregator()

	const workers = 8
	const perWorker = 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if i%10 == 0 {
					agg.RecordSkip(types.SkipBinary)
					continue
				}
				agg.Record([]types.Match{
					{Path: "f.txt", Line: i + 1, Rule: "r", Risk: types.RiskHigh, Snippet: "s"},
				})
			}
		}(w)
	}
	wg.Wait()

	s := agg.Snapshot()
	wantScanned := workers * perWorker * 9 / 10
	wantSkipped := workers * perWorker / 10
	if s.FilesScanned != wantScanned {
		t.Fatalf("FilesScanned=%d want %d", s.FilesScanned, wantScanned)
	}
	if s.FilesSkipped != wantSkipped {
		t.Fatalf("FilesSkipped=%d want %d", s.FilesSkipped, wantSkipped)
	}
	if s.TotalMatches != wantScanned {
		t.Fatalf("TotalMatches=%d want %d", s.TotalMatches, wantScanned)
	}
	if s.ByRisk[types.RiskHigh] != wantScanned {
		t.Fatalf("ByRisk[high]=%d want %d", s.ByRisk[types.RiskHigh], wantScanned)
	}
}

func TestAggregator_SnapshotConsistency(t *testing.T) {
	agg := NewAggregator()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			agg.Record([]types.Match{
				{Path: "f", Line: i + 1, Rule: "r", Risk: types.RiskLow, Snippet: "s"},
			})
		}
		close(stop)
	}()

	// Matches and counters must move together and never regress.
	prev := 0
	for {
		s := agg.Snapshot()
		if s.TotalMatches < prev {
			t.Fatalf("snapshot regressed: %d -> %d", prev, s.TotalMatches)
		}
		if s.TotalMatches != s.ByRisk[types.RiskLow] {
			t.Fatalf("counters out of sync: total=%d byRisk=%d", s.TotalMatches, s.ByRisk[types.RiskLow])
		}
		prev = s.TotalMatches
		select {
		case <-stop:
			wg.Wait()
			if got := agg.Snapshot().TotalMatches; got != 1000 {
				t.Fatalf("final total %d, want 1000", got)
			}
			return
		default:
		}
	}
}

func TestFinalize_GroupingOrder(t *testing.T) {
	reg, err := rules.Load([]byte(`low_first:
  regex: 'x'
  risk_level: low
high_one:
  regex: 'x'
  risk_level: high
high_two:
  regex: 'x'
  risk_level: high
`))
	if err != nil {
		t.Fatal(err)
	}
	active := reg.ActiveRules()

	agg := NewAggregator()
	// recorded deliberately out of order
	agg.Record([]types.Match{
		{Path: "z.txt", Line: 9, Rule: "high_two", Risk: types.RiskHigh},
		{Path: "a.txt", Line: 2, Rule: "high_two", Risk: types.RiskHigh},
	})
	agg.Record([]types.Match{{Path: "m.txt", Line: 1, Rule: "low_first", Risk: types.RiskLow}})
	agg.Record([]types.Match{{Path: "a.txt", Line: 5, Rule: "high_one", Risk: types.RiskHigh}})

	res := agg.Finalize("/root", types.StatusCompleted, active)
	if len(res.Groups) != 2 {
		t.Fatalf("expected 2 risk groups, got %d", len(res.Groups))
	}
	high := res.Groups[0]
	if high.Risk != types.RiskHigh {
		t.Fatal("high risk group must come first")
	}
	// registry order within the risk level, not alphabetical or insert order
	if high.Rules[0].Rule != "high_one" || high.Rules[1].Rule != "high_two" {
		t.Fatalf("rule order wrong: %s, %s", high.Rules[0].Rule, high.Rules[1].Rule)
	}
	// path then line within a rule
	ht := high.Rules[1].Matches
	if ht[0].Path != "a.txt" || ht[1].Path != "z.txt" {
		t.Fatalf("match order wrong: %+v", ht)
	}
}
