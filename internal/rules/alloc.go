package rules

import (
	"regexp"
	"strings"

	"github.com/corelint/corelint/internal/policy"
)

var (
	reNewWord     = regexp.MustCompile(`\bnew\b`)
	reDeleteWord  = regexp.MustCompile(`\bdelete\b`)
	reDeletedFunc = regexp.MustCompile(`=\s*delete\b`)
)

// RawAllocation flags bare new/delete expressions on the fully stripped view.
// Plain placement new is tolerated; aligned and nothrow placement forms still
// bypass the engine allocator and are flagged.
func RawAllocation(src Source, pol *policy.Config) Report {
	var out Report
	for i, line := range src.Views.Stripped {
		if isRawNewLine(line) {
			out.record("raw_alloc", src.Path, i+1,
				violation("raw new expression; use engine allocator or placement new"))
		}
		if isRawDeleteLine(line) {
			out.record("raw_alloc", src.Path, i+1,
				violation("raw delete expression; ownership should use engine allocators"))
		}
	}
	return out
}

// isRawNewLine mirrors the historical line-level heuristic: the "new ("
// substring is taken as placement syntax without any expression parsing. That
// can miss macro-generated calls whose argument list opens on the same line;
// tightening it needs a corpus regression pass first.
func isRawNewLine(line string) bool {
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#include") {
		return false
	}
	if strings.Contains(line, "operator new") {
		return false
	}
	if strings.Contains(line, "new (") {
		_, inner, _ := strings.Cut(line, "new")
		if strings.Contains(inner, "nothrow") || strings.Contains(inner, "align_val") {
			return true
		}
		return false
	}
	return reNewWord.MatchString(line)
}

func isRawDeleteLine(line string) bool {
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#include") {
		return false
	}
	if strings.Contains(line, "operator delete") {
		return false
	}
	// Deleted special member functions are not deallocation.
	if reDeletedFunc.MatchString(line) {
		return false
	}
	return reDeleteWord.MatchString(line)
}
