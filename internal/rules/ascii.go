package rules

import (
	"bytes"
	"fmt"

	"github.com/corelint/corelint/internal/policy"
)

// ASCIIPurity flags the first byte >= 0x80 in the raw file content. It does
// not use a sanitized view: non-ASCII bytes are banned even inside comments
// and literals. Only the first offending byte per file is reported.
func ASCIIPurity(src Source, _ *policy.Config) Report {
	var out Report
	for idx, b := range src.Raw {
		if b <= 0x7F {
			continue
		}
		line := bytes.Count(src.Raw[:idx], []byte{'\n'}) + 1
		col := idx + 1
		if lastNL := bytes.LastIndexByte(src.Raw[:idx], '\n'); lastNL >= 0 {
			col = idx - lastNL
		}
		out.record("ascii_purity", src.Path, line,
			violation(fmt.Sprintf("non-ASCII byte 0x%02X at column %d", b, col)))
		break
	}
	return out
}
