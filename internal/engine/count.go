package engine

import (
	"context"
	"path/filepath"

	"github.com/leakscope/leakscope/internal/ignore"
)

// CountTargets estimates how many files a scan of cfg will visit. It mirrors
// the traversal's selection logic without reading file contents, so progress
// displays get a denominator cheaply. Content-based skips (binary sniff,
// decode failures) still count as visited files here.
func CountTargets(cfg Config) int {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	n := 0
	walk(context.Background(), cfg, ign, func(string) bool {
		n++
		return true
	})
	return n
}
