// Package engine discovers source files and orchestrates rule evaluation:
// walk, sanitize, run rules per file in parallel, and merge results into one
// deterministic, sorted report. It is internal; external consumers should use
// the stable facade in pkg/core.
package engine
