package rules

import (
	"strings"
	"testing"

	"github.com/corelint/corelint/internal/policy"
)

func TestRawNewFlagged(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "int* p = new int[4];\n", pol)
	rep := RawAllocation(src, pol)
	if len(rep.Violations) != 1 || !strings.Contains(rep.Violations[0].Message, "raw new") {
		t.Fatalf("expected raw new violation, got %+v", rep.Violations)
	}
}

func TestNewInsideStringLiteralIgnored(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", `log("allocated with new");`+"\n", pol)
	rep := RawAllocation(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("literal content must not trigger: %+v", rep.Violations)
	}
}

func TestPlacementNewAllowed(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "T* t = new (buf) T();\n", pol)
	rep := RawAllocation(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("plain placement new is allowed: %+v", rep.Violations)
	}
}

func TestAlignedAndNothrowPlacementFlagged(t *testing.T) {
	pol := policy.Default()
	for _, line := range []string{
		"T* t = new (std::align_val_t(64)) T();",
		"T* t = new (std::nothrow) T();",
	} {
		src := srcFor(t, "Source/Core/A.cpp", line+"\n", pol)
		rep := RawAllocation(src, pol)
		if len(rep.Violations) != 1 {
			t.Fatalf("%q must be flagged, got %+v", line, rep.Violations)
		}
	}
}

func TestOperatorNewAndIncludeLinesSkipped(t *testing.T) {
	pol := policy.Default()
	text := "void* operator new(std::size_t n);\n" +
		"#include <new>\n" +
		"void operator delete(void* p) noexcept;\n"
	src := srcFor(t, "Source/Core/Memory/GlobalNewDelete.cpp", text, pol)
	rep := RawAllocation(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("operator declarations and includes are exempt: %+v", rep.Violations)
	}
}

func TestDeleteForms(t *testing.T) {
	pol := policy.Default()
	cases := []struct {
		line string
		want int
	}{
		{"delete p;", 1},
		{"delete[] p;", 1},
		{"Widget(const Widget&) = delete;", 0},
		{"Widget(Widget&&) =delete;", 0},
	}
	for _, tc := range cases {
		src := srcFor(t, "Source/Core/A.cpp", tc.line+"\n", pol)
		rep := RawAllocation(src, pol)
		if len(rep.Violations) != tc.want {
			t.Fatalf("%q: expected %d violations, got %+v", tc.line, tc.want, rep.Violations)
		}
	}
}

// The placement detection is textual: "new (" anywhere after unrelated code
// can suppress a genuine raw allocation on the same line. Documented
// limitation; do not tighten without a corpus regression check.
func TestPlacementHeuristicKnownFalseNegative(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "int* a = new int; f(new (buf) T());\n", pol)
	rep := RawAllocation(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("heuristic behavior changed; expected the raw new to be masked, got %+v", rep.Violations)
	}
}
