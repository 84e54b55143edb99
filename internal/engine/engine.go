package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/leakscope/leakscope/internal/cache"
	"github.com/leakscope/leakscope/internal/classify"
	"github.com/leakscope/leakscope/internal/ignore"
	"github.com/leakscope/leakscope/internal/match"
	"github.com/leakscope/leakscope/internal/rules"
	"github.com/leakscope/leakscope/internal/types"
)

// queueDepth bounds the work queue. The producer blocks when workers fall
// behind, which keeps peak memory flat on very large trees.
const queueDepth = 256

// Threads is the set of supported worker counts.
var Threads = []int{2, 4, 8, 16}

// DefaultThreads is used when the caller passes 0.
const DefaultThreads = 4

// Observer receives one update per completed file: a consistent statistics
// snapshot plus the path just finished. It is invoked from worker
// goroutines; marshaling onto a presentation loop is the observer's job.
type Observer func(path string, stats types.Stats)

// Config controls a scan: scope, rule registry, performance, and filters.
type Config struct {
	Root            string
	Rules           *rules.Registry
	IncludeGlobs    string // comma-separated, positive filter when set
	ExcludeGlobs    string // comma-separated, subtracted last
	MaxBytes        int64  // skip larger files (0 = no limit)
	Threads         int    // one of Threads, 0 = DefaultThreads
	DefaultExcludes bool   // built-in dir/file exclude lists
	NoCache         bool   // disable the incremental results cache
	AllowExtensions []string
	DenyExtensions  []string
	Progress        Observer
}

// RootPathError means the scan target is missing or not a directory. It is
// the only fatal condition once the registry has loaded; it is returned
// before any worker starts.
type RootPathError struct {
	Path   string
	Reason string
}

func (e *RootPathError) Error() string {
	return fmt.Sprintf("scan root %s: %s", e.Path, e.Reason)
}

// Result pairs the terminal scan state with wall-clock duration. Duration is
// reported on the terminal, never embedded in rendered reports.
type Result struct {
	types.Result
	Duration time.Duration
}

// Run executes a scan: one traversal producer and cfg.Threads workers over a
// bounded queue. Cancel ctx to stop: the producer quits enqueuing, in-flight
// workers finish their current file, and the partial result comes back with
// StatusCancelled. A single file failing to read or decode is a skip, never
// an abort.
func Run(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	started := time.Now()

	st, err := os.Stat(cfg.Root)
	if err != nil {
		return result, &RootPathError{Path: cfg.Root, Reason: "does not exist"}
	}
	if !st.IsDir() {
		return result, &RootPathError{Path: cfg.Root, Reason: "not a directory"}
	}
	if cfg.Rules == nil {
		cfg.Rules = rules.Default()
	}
	threads := cfg.Threads
	if threads == 0 {
		threads = DefaultThreads
	}
	if !validThreads(threads) {
		return result, fmt.Errorf("engine: unsupported worker count %d (choose one of %v)", threads, Threads)
	}

	// The registry is read-only for the whole scan; Reload is refused until
	// release runs.
	release := cfg.Rules.BeginScan()
	defer release()
	active := cfg.Rules.ActiveRules()

	w := &worker{
		cfg:        cfg,
		classifier: classify.New(cfg.AllowExtensions, cfg.DenyExtensions),
		active:     active,
		agg:        NewAggregator(),
		digest:     rulesDigest(active),
		updated:    map[string]cache.Entry{},
	}
	if !cfg.NoCache {
		db, _ := cache.Load(cfg.Root)
		if db.Rules != w.digest {
			// entries computed under other rules would replay wrong
			// outcomes; discard and rescan everything
			db.Entries = map[string]cache.Entry{}
		}
		w.db = db
	}

	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))

	jobs := make(chan string, queueDepth)
	go func() {
		defer close(jobs)
		walk(ctx, cfg, ign, func(p string) bool {
			select {
			case jobs <- p:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				// cancellation is honored between files, never mid-file
				if ctx.Err() != nil {
					return
				}
				w.processFile(p)
			}
		}()
	}
	wg.Wait()

	status := types.StatusCompleted
	if ctx.Err() != nil {
		status = types.StatusCancelled
	}
	result.Result = *w.agg.Finalize(cfg.Root, status, active)
	result.Duration = time.Since(started)

	// A partial scan must not overwrite cache entries for files it never
	// reached with an incomplete picture; only completed scans persist.
	if !cfg.NoCache && status == types.StatusCompleted {
		w.saveCache()
	}
	return result, nil
}

func validThreads(n int) bool {
	for _, t := range Threads {
		if n == t {
			return true
		}
	}
	return false
}

// worker holds the per-scan state shared by all pool goroutines. The
// aggregator and the updated-cache map are the only mutable shared pieces;
// both are guarded.
type worker struct {
	cfg        Config
	classifier *classify.Classifier
	active     []rules.Rule
	agg        *Aggregator
	digest     string

	db      cache.DB
	cacheMu sync.Mutex
	updated map[string]cache.Entry
}

// rulesDigest fingerprints the active rule set, in order, for the cache.
func rulesDigest(active []rules.Rule) string {
	h := xxhash.New()
	for _, r := range active {
		_, _ = h.WriteString(r.Name)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(r.Regexp.String())
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(string(r.Risk))
		_, _ = h.WriteString("\x00")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func (w *worker) processFile(p string) {
	rel, err := filepath.Rel(w.cfg.Root, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)

	data, err := os.ReadFile(p)
	if err != nil {
		w.agg.RecordSkip(types.SkipUnreadable)
		w.notify(rel)
		return
	}
	if w.cfg.MaxBytes > 0 && int64(len(data)) > w.cfg.MaxBytes {
		w.agg.RecordSkip(types.SkipTooLarge)
		w.notify(rel)
		return
	}

	h := cache.Hash(data)
	if !w.cfg.NoCache {
		if e, ok := w.db.Entries[rel]; ok && e.Hash == h {
			w.replay(rel, e)
			w.notify(rel)
			return
		}
	}

	entry := cache.Entry{Hash: h}
	switch {
	case !w.classifier.IsScannable(rel, data):
		entry.Skipped = true
		entry.Skip = types.SkipBinary
		w.agg.RecordSkip(types.SkipBinary)
	default:
		df, err := w.classifier.Decode(rel, data)
		if err != nil {
			entry.Skipped = true
			entry.Skip = types.SkipUndecodable
			w.agg.RecordSkip(types.SkipUndecodable)
			break
		}
		entry.Matches = match.Scan(rel, df, w.active)
		w.agg.Record(entry.Matches)
	}

	if !w.cfg.NoCache {
		w.cacheMu.Lock()
		w.updated[rel] = entry
		w.cacheMu.Unlock()
	}
	w.notify(rel)
}

// replay feeds a cached per-file outcome into the aggregator so unchanged
// trees produce results identical to a fresh scan.
func (w *worker) replay(rel string, e cache.Entry) {
	if e.Skipped {
		w.agg.RecordSkip(e.Skip)
	} else {
		w.agg.Record(e.Matches)
	}
	w.cacheMu.Lock()
	w.updated[rel] = e
	w.cacheMu.Unlock()
}

func (w *worker) notify(rel string) {
	if w.cfg.Progress != nil {
		w.cfg.Progress(rel, w.agg.Snapshot())
	}
}

// saveCache writes only entries seen this scan, so deleted files fall out.
func (w *worker) saveCache() {
	w.cacheMu.Lock()
	defer w.cacheMu.Unlock()
	if len(w.updated) == 0 {
		return
	}
	_ = cache.Save(w.cfg.Root, cache.DB{Rules: w.digest, Entries: w.updated})
}
