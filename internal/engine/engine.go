package engine

import (
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/corelint/corelint/internal/cache"
	"github.com/corelint/corelint/internal/policy"
	"github.com/corelint/corelint/internal/rules"
	"github.com/corelint/corelint/internal/types"
)

// Config controls one scan: scope, filters, and performance knobs.
type Config struct {
	Root           string
	IncludeModules bool
	IncludeGlobs   string
	ExcludeGlobs   string
	MaxBytes       int64
	Threads        int
	NoCache        bool
	Progress       func()
}

// Result is the outcome of one scan. Violations and Hits are sorted
// deterministically regardless of worker scheduling.
type Result struct {
	Violations   []types.Violation
	Hits         []types.AllowlistHit
	FilesScanned int
	FilesCached  int
	Duration     time.Duration
}

type job struct {
	rel  string
	data []byte
}

// Scan runs every rule over every discovered file and returns the merged,
// sorted result. Per-file evaluation is stateless, so files are processed by
// a bounded worker pool and the results merged afterwards.
func Scan(cfg Config, pol *policy.Config) (Result, error) {
	var res Result
	started := time.Now()

	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}

	db := cache.DB{Entries: map[string]string{}}
	if !cfg.NoCache {
		db = cache.Load(cfg.Root)
	}

	var jobs []job
	err := Walk(cfg, pol, func(rel string, data []byte) {
		if !cfg.NoCache && db.Entries[rel] == cache.Hash(data) {
			res.FilesCached++
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return
		}
		jobs = append(jobs, job{rel: rel, data: data})
	})
	if err != nil {
		return res, err
	}

	var mu sync.Mutex
	cleanHashes := map[string]string{}

	var g errgroup.Group
	g.SetLimit(cfg.Threads)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			src := rules.NewSource(j.rel, j.data, pol)
			rep := rules.RunAll(src, pol)

			mu.Lock()
			res.FilesScanned++
			res.Violations = append(res.Violations, rep.Violations...)
			res.Hits = append(res.Hits, rep.Hits...)
			if len(rep.Violations) == 0 && len(rep.Hits) == 0 {
				cleanHashes[j.rel] = cache.Hash(j.data)
			}
			if cfg.Progress != nil {
				cfg.Progress()
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	types.SortViolations(res.Violations)
	types.SortHits(res.Hits)
	res.Duration = time.Since(started)

	if !cfg.NoCache && len(cleanHashes) > 0 {
		for k, v := range cleanHashes {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}
	return res, nil
}

// RuleIDs lists the rule families the engine evaluates.
func RuleIDs() []string { return rules.IDs() }

// allowedByGlobs applies the comma-separated include/exclude glob filters.
// Include globs, when present, act as a positive filter; excludes are
// subtracted last. Matching uses forward-slash semantics.
func allowedByGlobs(rel string, cfg Config) bool {
	rp := strings.ReplaceAll(rel, "\\", "/")
	includes := parseGlobList(cfg.IncludeGlobs)
	excludes := parseGlobList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
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
