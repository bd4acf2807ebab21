package rules

import (
	"strings"
	"testing"

	"github.com/corelint/corelint/internal/policy"
)

func TestHeavyIncludeAngleAndQuote(t *testing.T) {
	pol := policy.Default()
	text := "#include <regex>\n#include \"iostream\"\n#include <vector>\n"
	src := srcFor(t, "Source/Modules/A.cpp", text, pol)
	rep := HeavyIncludes(src, pol)
	if len(rep.Violations) != 2 {
		t.Fatalf("expected regex and iostream flagged, got %+v", rep.Violations)
	}
	if rep.Violations[0].Line != 1 || rep.Violations[1].Line != 2 {
		t.Fatalf("wrong lines: %+v", rep.Violations)
	}
}

func TestHeavyIncludeBasenameMatch(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "#include <tr1/regex>\n", pol)
	rep := HeavyIncludes(src, pol)
	if len(rep.Violations) != 1 || !strings.Contains(rep.Violations[0].Message, "'tr1/regex'") {
		t.Fatalf("basename match must report full header, got %+v", rep.Violations)
	}
}

func TestHeavyIncludeAllowlisted(t *testing.T) {
	pol := policy.Default()
	pol.HeavyIncludeAllowlist["Source/Core/Log.cpp"] = map[string]bool{"iostream": true}
	src := srcFor(t, "Source/Core/Log.cpp", "#include <iostream>\n", pol)
	rep := HeavyIncludes(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("allowlisted header must not violate: %+v", rep.Violations)
	}
	if len(rep.Hits) != 1 || rep.Hits[0].Reason != "include:iostream" {
		t.Fatalf("expected include hit, got %+v", rep.Hits)
	}
}

func TestIncludeInCommentIgnored(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "// #include <regex>\n/* #include <iostream> */\n", pol)
	rep := HeavyIncludes(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("commented includes must be invisible: %+v", rep.Violations)
	}
}

func TestIncludeSpacingVariants(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "  #  include   <locale>\n", pol)
	rep := HeavyIncludes(src, pol)
	if len(rep.Violations) != 1 {
		t.Fatalf("preprocessor spacing must be tolerated: %+v", rep.Violations)
	}
}
