package types

import "sort"

// Violation is a policy rule match that no allowlist covers. Line numbers are
// 1-based and always refer to a line that exists in the original file.
type Violation struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Message string `json:"message"`
	RuleID  string `json:"rule"`
}

// AllowlistHit records a rule match that was suppressed by an allowlist entry
// instead of becoming a Violation. Reason is a stable tag such as
// "token:throw", "core:malloc" or "include:regex".
type AllowlistHit struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// SortViolations orders violations lexicographically by (path, line, message).
// This is the reporting order and must be deterministic regardless of how the
// scan was scheduled.
func SortViolations(vs []Violation) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].Path != vs[j].Path {
			return vs[i].Path < vs[j].Path
		}
		if vs[i].Line != vs[j].Line {
			return vs[i].Line < vs[j].Line
		}
		return vs[i].Message < vs[j].Message
	})
}

// SortHits orders allowlist hits by (path, line, reason).
func SortHits(hs []AllowlistHit) {
	sort.Slice(hs, func(i, j int) bool {
		if hs[i].Path != hs[j].Path {
			return hs[i].Path < hs[j].Path
		}
		if hs[i].Line != hs[j].Line {
			return hs[i].Line < hs[j].Line
		}
		return hs[i].Reason < hs[j].Reason
	})
}
