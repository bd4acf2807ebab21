// Package audit appends one JSONL record per scan so CI history can be
// inspected without re-running old revisions.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ScanRecord summarizes one completed scan.
type ScanRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Root         string    `json:"root"`
	Mode         string    `json:"mode"`
	Violations   int       `json:"violations"`
	AllowlistUse int       `json:"allowlist_hits"`
	FilesScanned int       `json:"files_scanned"`
	FilesCached  int       `json:"files_cached"`
	Duration     string    `json:"duration"`
	Failed       bool      `json:"failed"`
}

func logPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "corelint_audit.jsonl")
	}
	return filepath.Join(root, ".corelint_audit.jsonl")
}

// Append writes one record to the audit log, creating it if needed.
func Append(root string, rec ScanRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	f, err := os.OpenFile(logPath(root), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// History returns past records, newest first. A missing log is not an error.
func History(root string) ([]ScanRecord, error) {
	f, err := os.Open(logPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec ScanRecord
		if err := dec.Decode(&rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
