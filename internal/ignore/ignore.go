// Package ignore loads .leakscopeignore files: one glob per line, # comments,
// trailing slash anchors a whole directory.
package ignore

import (
	"os"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the per-tree ignore file looked up at the scan root.
const FileName = ".leakscopeignore"

// Matcher tests relative paths against the loaded patterns. The zero value
// matches nothing.
type Matcher struct {
	dirs  []string // directory prefixes (patterns ending in /)
	globs []string
}

// Load reads an ignore file. A missing file yields an empty matcher and no
// error: not having one is the common case.
func Load(path string) (Matcher, error) {
	var m Matcher
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, err
	}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, "/") {
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
			continue
		}
		m.globs = append(m.globs, line)
	}
	return m, nil
}

// Match reports whether the relative (slash-separated) path is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, d := range m.dirs {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}
