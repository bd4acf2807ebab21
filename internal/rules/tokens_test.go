package rules

import (
	"testing"

	"github.com/corelint/corelint/internal/policy"
)

func srcFor(t *testing.T, path, text string, pol *policy.Config) Source {
	t.Helper()
	return NewSource(path, []byte(text), pol)
}

func TestForbiddenTokensInCode(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Modules/A.cpp", "x = 1; throw y;\n", pol)
	rep := ForbiddenTokens(src, pol)
	if len(rep.Violations) != 1 {
		t.Fatalf("expected exactly one violation, got %+v", rep.Violations)
	}
	v := rep.Violations[0]
	if v.Line != 1 || v.Message != "forbidden token 'throw'" {
		t.Fatalf("unexpected violation %+v", v)
	}
}

func TestForbiddenTokenInCommentIsIgnored(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "// throw something\nint x;\n", pol)
	rep := ForbiddenTokens(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("comment text must not match: %+v", rep.Violations)
	}
}

func TestForbiddenTokenSubstringDoesNotMatch(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "int trying = catchall;\n", pol)
	rep := ForbiddenTokens(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("word boundary must hold: %+v", rep.Violations)
	}
}

func TestForbiddenTokenAllowlisted(t *testing.T) {
	pol := policy.Default()
	pol.TokenAllowlist["Source/Core/Except.cpp"] = map[string]bool{"throw": true}
	src := srcFor(t, "Source/Core/Except.cpp", "throw Panic();\n", pol)
	rep := ForbiddenTokens(src, pol)
	if len(rep.Violations) != 0 {
		t.Fatalf("allowlisted token must not violate: %+v", rep.Violations)
	}
	if len(rep.Hits) != 1 || rep.Hits[0].Reason != "token:throw" {
		t.Fatalf("expected one token hit, got %+v", rep.Hits)
	}
}

func TestRTTITokens(t *testing.T) {
	pol := policy.Default()
	src := srcFor(t, "Source/Core/A.cpp", "auto* d = dynamic_cast<D*>(b);\nauto& ti = typeid(x);\n", pol)
	rep := ForbiddenTokens(src, pol)
	if len(rep.Violations) != 2 {
		t.Fatalf("expected dynamic_cast and typeid violations, got %+v", rep.Violations)
	}
}
