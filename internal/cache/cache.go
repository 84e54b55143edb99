// Package cache persists per-file scan outcomes keyed by content hash, so a
// rescan of an unchanged tree replays results without re-reading content.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/leakscope/leakscope/internal/types"
)

// Entry is the cached outcome for one file at one content hash. Either the
// file was skipped (with a reason) or it was scanned and produced Matches.
type Entry struct {
	Hash    string           `json:"hash"`
	Skipped bool             `json:"skipped,omitempty"`
	Skip    types.SkipReason `json:"skip,omitempty"`
	Matches []types.Match    `json:"matches,omitempty"`
}

type DB struct {
	// digest of the rule set that produced the entries; outcomes are only
	// valid for the exact rules that computed them
	Rules string `json:"rules,omitempty"`
	// relative path -> cached outcome
	Entries map[string]Entry `json:"entries"`
}

// FileName and GitFileName are the on-disk cache names; the walker skips
// them unconditionally so the cache never scans its own snippets.
const (
	FileName    = ".leakscope_cache.json"
	GitFileName = "leakscope_cache.json"
)

func defaultPath(root string) string {
	// Prefer storing under .git to keep the cache out of accidental commits;
	// fall back to a dotfile in the root.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, GitFileName)
	}
	return filepath.Join(root, FileName)
}

func Load(root string) (DB, error) {
	var db DB
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}

// Hash returns a short stable content hash used as the cache key.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
