package engine

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/leakscope/leakscope/internal/cache"
	"github.com/leakscope/leakscope/internal/ignore"
)

// walk traverses the tree under cfg.Root and calls enqueue for every
// eligible file path. enqueue returning false (cancellation) stops the walk.
func walk(ctx context.Context, cfg Config, ign ignore.Matcher, enqueue func(path string) bool) {
	cancelled := false
	_ = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if cancelled || ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			return nil // unreadable entries are not fatal to the walk
		}
		if d.IsDir() {
			if p != cfg.Root && cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		// never scan our own cache artifact
		if name := d.Name(); name == cache.FileName || name == cache.GitFileName {
			return nil
		}
		rel, relErr := filepath.Rel(cfg.Root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel), d.Name()) {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		if !enqueue(p) {
			cancelled = true
			return filepath.SkipAll
		}
		return nil
	})
}

// allowedByGlobs applies the include/exclude glob configuration. Includes
// are comma-separated and act as a positive filter when present; excludes
// are subtracted last. Matching uses forward-slash semantics.
func allowedByGlobs(rel string, cfg Config) bool {
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rel, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rel, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
