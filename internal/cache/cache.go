package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
)

// DB maps repository-relative paths to the content hash of the file the last
// time it scanned fully clean (no violations, no allowlist hits). An
// unchanged clean file can be skipped on the next run without changing the
// report.
type DB struct {
	Entries map[string]string `json:"entries"`
}

func defaultPath(root string) string {
	// Keep the cache under .git when present so it never gets committed.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "corelintcache.json")
	}
	return filepath.Join(root, ".corelintcache.json")
}

// Load reads the cache for the given repository root. A missing or corrupt
// cache is an empty cache, never an error the caller has to handle.
func Load(root string) DB {
	db := DB{Entries: map[string]string{}}
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return db
	}
	if err := json.Unmarshal(b, &db); err != nil || db.Entries == nil {
		return DB{Entries: map[string]string{}}
	}
	return db
}

// Save persists the cache for the given repository root.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}

// Hash returns a short stable content hash used as the cache value.
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
