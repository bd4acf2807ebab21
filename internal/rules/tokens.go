package rules

import (
	"fmt"

	"github.com/corelint/corelint/internal/policy"
)

// ForbiddenTokens flags exception and RTTI keywords anywhere in code. It runs
// on the fully stripped view, so tokens inside comments or literals never
// match. A per-path allowlist entry downgrades the match to a hit.
func ForbiddenTokens(src Source, pol *policy.Config) Report {
	var out Report
	for _, token := range pol.ForbiddenTokens {
		pattern := wordPattern(token)
		for i, line := range src.Views.Stripped {
			if !pattern.MatchString(line) {
				continue
			}
			v := violation(fmt.Sprintf("forbidden token '%s'", token))
			if pol.TokenAllowed(src.Path, token) {
				v = allowed("token:" + token)
			}
			out.record("forbidden_tokens", src.Path, i+1, v)
		}
	}
	return out
}
