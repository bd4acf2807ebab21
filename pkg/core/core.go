package core

import (
	"github.com/corelint/corelint/internal/engine"
	"github.com/corelint/corelint/internal/policy"
	"github.com/corelint/corelint/internal/types"
)

// Re-export selected internal types as a stable public API surface. These are
// type aliases so external consumers can depend on a stable path; they can be
// replaced with decoupled structs later without breaking callers.
type Config = engine.Config
type Policy = policy.Config
type Result = engine.Result
type Violation = types.Violation
type AllowlistHit = types.AllowlistHit

// DefaultPolicy returns the built-in rule tables.
func DefaultPolicy() *Policy { return policy.Default() }

// LoadPolicy overlays a YAML policy file onto the built-in defaults.
func LoadPolicy(path string) (*Policy, error) { return policy.LoadFile(path) }

// Scan is the stable scan entrypoint for other programs.
func Scan(cfg Config, pol *Policy) (Result, error) {
	return engine.Scan(cfg, pol)
}

// RuleIDs returns the rule families the engine evaluates.
func RuleIDs() []string { return engine.RuleIDs() }
