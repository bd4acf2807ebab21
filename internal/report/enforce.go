package report

import (
	"fmt"
	"io"

	"github.com/corelint/corelint/internal/policy"
	"github.com/corelint/corelint/internal/types"
)

// Mode selects how allowlist usage affects the process result. The three
// modes are mutually exclusive per invocation.
type Mode int

const (
	// ModeDefault fails on violations; allowlist hits are warnings.
	ModeDefault Mode = iota
	// ModeStrict additionally fails on any allowlist hit outside the
	// blessed set.
	ModeStrict
	// ModeNoAllowlists fails before scanning if any allowlist map is
	// non-empty. A cleanup gate driving allowlists toward zero.
	ModeNoAllowlists
)

// Unblessed returns the hits strict mode does not tolerate.
func Unblessed(hits []types.AllowlistHit, pol *policy.Config) []types.AllowlistHit {
	var out []types.AllowlistHit
	for _, h := range hits {
		if !pol.IsBlessed(h.Path, h.Reason) {
			out = append(out, h)
		}
	}
	return out
}

// CheckAllowlistGate implements the no-allowlists precondition. It returns
// false, after printing the offending maps, when any allowlist is configured.
func CheckAllowlistGate(w io.Writer, pol *policy.Config) bool {
	nonEmpty := pol.AllowlistSummary()
	if len(nonEmpty) == 0 {
		return true
	}
	fmt.Fprintln(w, "--no-allowlists: allowlists present -> fail")
	for _, entry := range nonEmpty {
		fmt.Fprintf(w, "  %s\n", entry)
	}
	return false
}

// Render prints the full scan report for the chosen mode and reports whether
// the run failed. Violations always fail; strict mode also fails on any
// unblessed hit.
func Render(w io.Writer, mode Mode, vs []types.Violation, hits []types.AllowlistHit, pol *policy.Config) bool {
	failed := false

	if len(vs) > 0 {
		PrintViolations(w, vs)
		failed = true
	}

	switch mode {
	case ModeStrict:
		if unblessed := Unblessed(hits, pol); len(unblessed) > 0 {
			PrintUnblessed(w, unblessed)
			failed = true
		} else if len(hits) > 0 {
			fmt.Fprintln(w, "Strict mode: only blessed allowlist entries were used.")
		}
	default:
		PrintHitsWarning(w, hits)
	}

	if !failed {
		fmt.Fprintln(w, "corelint: OK")
	}
	return failed
}
