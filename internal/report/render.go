package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/corelint/corelint/internal/types"
)

// PrintViolations writes one `path:line: message` line per violation plus the
// trailing count line. Callers pass violations already sorted by the engine.
// All output is plain ASCII so the tool satisfies its own purity rule.
func PrintViolations(w io.Writer, vs []types.Violation) {
	for _, v := range vs {
		fmt.Fprintf(w, "%s:%d: %s\n", v.Path, v.Line, v.Message)
	}
	fmt.Fprintf(w, "\n%d violation(s) found.\n", len(vs))
}

// PrintHitsWarning writes the non-strict allowlist usage block.
func PrintHitsWarning(w io.Writer, hits []types.AllowlistHit) {
	if len(hits) == 0 {
		return
	}
	fmt.Fprintln(w, "Warning: allowlist entries were used (non-strict mode):")
	for _, h := range hits {
		fmt.Fprintf(w, "  %s:%d: allowlisted %s\n", h.Path, h.Line, h.Reason)
	}
}

// PrintUnblessed writes the strict-mode failure block for allowlist usages
// outside the blessed set.
func PrintUnblessed(w io.Writer, unblessed []types.AllowlistHit) {
	fmt.Fprintln(w, "Strict mode: unblessed allowlist entries were used:")
	for _, h := range unblessed {
		fmt.Fprintf(w, "  %s:%d: allowlisted %s\n", h.Path, h.Line, h.Reason)
	}
}

// PrintRuleSummary renders a per-rule violation count table.
func PrintRuleSummary(w io.Writer, vs []types.Violation, ruleIDs []string) {
	counts := map[string]int{}
	for _, v := range vs {
		counts[v.RuleID]++
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rule", "Violations"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, id := range ruleIDs {
		table.Append([]string{id, strconv.Itoa(counts[id])})
	}
	table.SetFooter([]string{"total", strconv.Itoa(len(vs))})
	table.Render()
}
