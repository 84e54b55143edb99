// Package core provides a small, stable facade over Leakscope's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so other tools can depend on a stable import path without exposing
// internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: ".", Threads: 4}
//	res, err := core.Scan(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalMatches(os.Stdout, res.AllMatches())
package core
