// Package selftest guards against regressions where sanitization or rule
// logic silently stops catching the violations it exists to catch. It plants
// a fixture with a known banned construct into a synthetic core tree and
// requires the production scan entry point to fail on it.
package selftest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/corelint/corelint/internal/engine"
	"github.com/corelint/corelint/internal/policy"
	"github.com/corelint/corelint/internal/report"
)

// fixture deliberately violates the exception-token policy. A string literal
// decoy is included so a broken sanitizer that starts matching literal
// content would change the violation count and trip the line assertions.
const fixture = `// Planted policy violation used by the scanner self-test.
static const char* kDecoy = "throw inside a literal is fine";

int provoke() {
    try {
        throw 1;
    } catch (...) {
        return -1;
    }
    return 0;
}
`

const fixtureRelPath = "Source/Core/PolicyViolations/policy_violation_throw.cpp"

// Run executes the self-test and returns an error only when the scanner
// FAILS to detect the planted violation. Diagnostic output goes to w.
func Run(w io.Writer) error {
	tmp, err := os.MkdirTemp("", "corelint-selftest-")
	if err != nil {
		return fmt.Errorf("create temp tree: %w", err)
	}
	defer os.RemoveAll(tmp)

	dst := filepath.Join(tmp, filepath.FromSlash(fixtureRelPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create fixture dir: %w", err)
	}
	if err := os.WriteFile(dst, []byte(fixture), 0644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	pol := policy.Default()
	res, err := engine.Scan(engine.Config{Root: tmp, NoCache: true}, pol)
	if err != nil {
		return fmt.Errorf("self-test scan: %w", err)
	}

	var out bytes.Buffer
	failed := report.Render(&out, report.ModeStrict, res.Violations, res.Hits, pol)
	_, _ = w.Write(out.Bytes())

	if !failed {
		return fmt.Errorf("self-test FAILED: expected a violation but scan reported success")
	}
	if !strings.Contains(out.String(), "throw") {
		return fmt.Errorf("self-test FAILED: violation output did not mention 'throw'")
	}
	fmt.Fprintln(w, "corelint self-test: OK (violation detected as expected)")
	return nil
}
