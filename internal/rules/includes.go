package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/corelint/corelint/internal/policy"
)

// Matches both #include <...> and #include "...".
var reInclude = regexp.MustCompile(`^\s*#\s*include\s*[<"]([^">]+)[">]`)

// HeavyIncludes flags banned STL headers. It runs on the comments-only view
// because the header path inside #include "..." is a string literal and must
// stay visible. Matching is by full header path or basename.
func HeavyIncludes(src Source, pol *policy.Config) Report {
	var out Report
	for i, line := range src.Views.NoComments {
		header, ok := includeTarget(line)
		if !ok {
			continue
		}
		base := header
		if j := strings.LastIndex(header, "/"); j >= 0 {
			base = header[j+1:]
		}

		var hit string
		switch {
		case pol.HeavyIncludes[header]:
			hit = header
		case pol.HeavyIncludes[base]:
			hit = base
		default:
			continue
		}

		v := violation(fmt.Sprintf("heavy STL include '%s' is not allowed", header))
		if pol.IncludeAllowed(src.Path, hit) {
			v = allowed("include:" + header)
		}
		out.record("heavy_includes", src.Path, i+1, v)
	}
	return out
}

func includeTarget(line string) (string, bool) {
	m := reInclude.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
