package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/corelint/corelint/internal/policy"
)

// Walk traverses the configured source subtrees and invokes handle for each
// eligible code file with its root-relative forward-slash path and raw bytes.
// Unreadable files are skipped; a single bad file never aborts discovery.
func Walk(cfg Config, pol *policy.Config, handle func(rel string, data []byte)) error {
	roots := []string{strings.TrimSuffix(pol.CoreSubtree, "/")}
	if cfg.IncludeModules {
		roots = append(roots, strings.TrimSuffix(pol.ModulesSubtree, "/"))
	}

	for _, sub := range roots {
		base := filepath.Join(cfg.Root, filepath.FromSlash(sub))
		if st, err := os.Stat(base); err != nil || !st.IsDir() {
			continue
		}
		err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if isExcludedDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			rel, relErr := filepath.Rel(cfg.Root, p)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)
			if !pol.CodeExtensions[strings.ToLower(filepath.Ext(rel))] {
				return nil
			}
			if !allowedByGlobs(rel, cfg) {
				return nil
			}
			if cfg.MaxBytes > 0 {
				if info, err := d.Info(); err == nil && info.Size() > cfg.MaxBytes {
					return nil
				}
			}
			b, readErr := os.ReadFile(p)
			if readErr != nil {
				return nil
			}
			handle(rel, b)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

var excludedDirs = map[string]bool{
	".git":        true,
	".svn":        true,
	".vs":         true,
	"build":       true,
	"out":         true,
	"bin":         true,
	"obj":         true,
	"__pycache__": true,
}

func isExcludedDir(name string) bool {
	return excludedDirs[name] || strings.HasPrefix(name, "cmake-build")
}
