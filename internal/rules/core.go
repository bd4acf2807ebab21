package rules

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/corelint/corelint/internal/policy"
)

var (
	reUsingNamespace = regexp.MustCompile(`\busing\s+namespace\b`)
	reSharedPtr      = regexp.MustCompile(`std::shared_ptr\b`)
	reWeakPtr        = regexp.MustCompile(`std::weak_ptr\b`)
	reAssertCall     = regexp.MustCompile(`\bassert\s*\(`)
)

// CoreOnly applies the ownership and allocation rules reserved for the
// restricted core subtree: no direct CRT allocation calls, no using
// namespace, no reference-counted pointers, no bare assert(), and no
// relative include paths. Files outside the core subtree are untouched.
func CoreOnly(src Source, pol *policy.Config) Report {
	var out Report
	if !src.IsCore {
		return out
	}

	for i, line := range src.Views.Stripped {
		lineno := i + 1

		for _, fn := range pol.CoreAllocCalls {
			if !hasDirectCall(line, fn) {
				continue
			}
			v := violation(fmt.Sprintf("forbidden token '%s' in Core; use engine allocators", fn))
			if pol.CoreCallAllowed(src.Path, fn) {
				v = allowed("core:" + fn)
			}
			out.record("core_only", src.Path, lineno, v)
		}

		if reUsingNamespace.MatchString(line) {
			out.record("core_only", src.Path, lineno,
				violation("'using namespace' is banned in Core"))
		}
		if reSharedPtr.MatchString(line) {
			out.record("core_only", src.Path, lineno,
				violation("std::shared_ptr is banned in Core"))
		}
		if reWeakPtr.MatchString(line) {
			out.record("core_only", src.Path, lineno,
				violation("std::weak_ptr is banned in Core"))
		}
		if reAssertCall.MatchString(line) {
			out.record("core_only", src.Path, lineno,
				violation("use CORE_ASSERT/CORE_CHECK instead of assert() in Core"))
		}
	}

	// Relative includes need the literal header path, so this sub-check runs
	// on the comments-only view.
	for i, line := range src.Views.NoComments {
		header, ok := includeTarget(line)
		if !ok {
			continue
		}
		header = strings.ReplaceAll(header, "\\", "/")
		if strings.HasPrefix(header, "../") || strings.HasPrefix(header, "./") ||
			strings.Contains(header, "/../") || strings.Contains(header, "/./") {
			out.record("core_only", src.Path, i+1,
				violation("relative include is banned in Core"))
		}
	}
	return out
}

// hasDirectCall reports whether line contains a direct call to fn. Member
// calls of the same name (obj.free(), obj->free()) are not direct calls; Go
// regexps have no lookbehind, so the preceding bytes are inspected by hand.
func hasDirectCall(line, fn string) bool {
	pattern := callPattern(fn)
	for _, loc := range pattern.FindAllStringIndex(line, -1) {
		start := loc[0]
		if start >= 1 && line[start-1] == '.' {
			continue
		}
		if start >= 2 && line[start-2] == '-' && line[start-1] == '>' {
			continue
		}
		return true
	}
	return false
}

var callPatterns sync.Map

func callPattern(fn string) *regexp.Regexp {
	if p, ok := callPatterns.Load(fn); ok {
		return p.(*regexp.Regexp)
	}
	p := regexp.MustCompile(`\b` + regexp.QuoteMeta(fn) + `\s*\(`)
	actual, _ := callPatterns.LoadOrStore(fn, p)
	return actual.(*regexp.Regexp)
}
