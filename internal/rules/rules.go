package rules

import (
	"regexp"
	"sync"

	"github.com/corelint/corelint/internal/policy"
	"github.com/corelint/corelint/internal/sanitize"
	"github.com/corelint/corelint/internal/types"
)

// Source is one file prepared for rule evaluation: the raw bytes plus the two
// sanitized views, and whether the path falls under the restricted core
// subtree. Paths are forward-slash relative to the repository root.
type Source struct {
	Path   string
	Raw    []byte
	Views  sanitize.Views
	IsCore bool
}

// NewSource sanitizes raw content once for all rules.
func NewSource(path string, raw []byte, pol *policy.Config) Source {
	return Source{
		Path:   path,
		Raw:    raw,
		Views:  sanitize.File(string(raw)),
		IsCore: pol.IsCorePath(path),
	}
}

// Report accumulates the outcome of rule evaluation for one file.
type Report struct {
	Violations []types.Violation
	Hits       []types.AllowlistHit
}

func (r *Report) merge(other Report) {
	r.Violations = append(r.Violations, other.Violations...)
	r.Hits = append(r.Hits, other.Hits...)
}

// verdict is the tagged result of checking one line against one rule.
type verdict struct {
	kind    verdictKind
	message string // set when kind == violated
	reason  string // set when kind == allowlisted
}

type verdictKind int

const (
	clean verdictKind = iota
	violated
	allowlisted
)

func violation(msg string) verdict  { return verdict{kind: violated, message: msg} }
func allowed(reason string) verdict { return verdict{kind: allowlisted, reason: reason} }

// record folds a per-line verdict into the report.
func (r *Report) record(ruleID, path string, line int, v verdict) {
	switch v.kind {
	case violated:
		r.Violations = append(r.Violations, types.Violation{
			Path: path, Line: line, Message: v.message, RuleID: ruleID,
		})
	case allowlisted:
		r.Hits = append(r.Hits, types.AllowlistHit{
			Path: path, Line: line, Reason: v.reason,
		})
	}
}

// Rule evaluates one file against one rule family. Rules are pure: they share
// no state and their outcomes never affect one another.
type Rule func(src Source, pol *policy.Config) Report

var all = []Rule{ForbiddenTokens, RawAllocation, HeavyIncludes, ASCIIPurity, CoreOnly}

// IDs lists the rule families in evaluation order.
func IDs() []string {
	return []string{"forbidden_tokens", "raw_alloc", "heavy_includes", "ascii_purity", "core_only"}
}

// RunAll evaluates every rule against the file and concatenates the results.
func RunAll(src Source, pol *policy.Config) Report {
	var out Report
	for _, rule := range all {
		out.merge(rule(src, pol))
	}
	return out
}

// wordPattern returns a cached \btoken\b matcher. Token sets are small and
// fixed per scan, so the cache never grows past a handful of entries.
func wordPattern(token string) *regexp.Regexp {
	if p, ok := wordPatterns.Load(token); ok {
		return p.(*regexp.Regexp)
	}
	p := regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
	actual, _ := wordPatterns.LoadOrStore(token, p)
	return actual.(*regexp.Regexp)
}

var wordPatterns sync.Map
