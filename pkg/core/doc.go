// Package core is the stable public facade over corelint's internal scan
// engine for programs that embed the scanner instead of shelling out to the
// CLI.
package core
