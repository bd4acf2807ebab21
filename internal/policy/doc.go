// Package policy defines the immutable rule configuration for a scan:
// banned token and header sets, per-path allowlists, and the blessed set
// strict mode tolerates. Defaults are built in and may be overlaid from a
// YAML policy file.
package policy
