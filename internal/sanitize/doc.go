// Package sanitize turns raw C/C++ source text into line- and
// column-preserving views with comments and/or literals blanked to spaces.
// It is deliberately not a parser: no macro expansion, no preprocessor
// evaluation, just a small byte-level state machine.
package sanitize
