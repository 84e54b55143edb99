package core

import (
	"context"

	"github.com/leakscope/leakscope/internal/engine"
	"github.com/leakscope/leakscope/internal/report"
	"github.com/leakscope/leakscope/internal/rules"
	"github.com/leakscope/leakscope/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Result = engine.Result
type Match = types.Match
type Stats = types.Stats

// Scan is the stable entrypoint for other programs. The context cancels the
// scan; a cancelled scan still returns its partial result.
func Scan(ctx context.Context, cfg Config) (Result, error) {
	return engine.Run(ctx, cfg)
}

// LoadRules parses a YAML rule source for use in Config.Rules. An invalid
// source fails the whole load.
func LoadRules(data []byte) (*rules.Registry, error) {
	return rules.Load(data)
}

// DefaultRules returns the built-in rule set.
func DefaultRules() *rules.Registry {
	return rules.Default()
}

// RenderMarkdown renders a finished result as the Markdown report. The
// output is deterministic for a given result.
func RenderMarkdown(res *Result) string {
	return report.Render(&res.Result)
}
