// Package corelint provides the command-line interface for the corelint
// tool. It configures subcommands (scan, selftest, rules, config, ci,
// history), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/corelint/corelint/cmd/corelint"
//	func main() { corelint.Execute() }
package corelint
