// Package rules implements the policy rule families corelint enforces. Each
// rule consumes one sanitized view (or the raw bytes) of a source file and
// reports violations and allowlist hits independently of every other rule.
package rules
