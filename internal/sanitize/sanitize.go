package sanitize

import "strings"

// Views holds two line-aligned renderings of one source file. Both have
// exactly the same number of lines, and every line has exactly the same
// length, as the original text: sanitization only ever replaces characters
// with spaces.
//
// Stripped blanks comment and string/char literal content and is the input
// for token and allocation rules. NoComments blanks comments only, keeping
// literal content intact so include rules can read header paths inside
// #include "..." lines.
type Views struct {
	Stripped   []string
	NoComments []string
}

type state int

const (
	stNormal state = iota
	stLineComment
	stBlockComment
	stString
	stChar
)

// File runs the sanitizer over raw source text. It is a single left-to-right
// pass per line; block comment and literal state carries across line
// boundaries. An unterminated construct at end of input simply blanks to the
// end, it is not an error.
func File(text string) Views {
	lines := SplitLines(text)
	v := Views{
		Stripped:   make([]string, 0, len(lines)),
		NoComments: make([]string, 0, len(lines)),
	}

	st := stNormal
	var delim byte

	for _, line := range lines {
		var strip, nocom strings.Builder
		strip.Grow(len(line))
		nocom.Grow(len(line))

		// Line comments never span lines.
		if st == stLineComment {
			st = stNormal
		}

		i := 0
		for i < len(line) {
			ch := line[i]
			var nxt byte
			if i+1 < len(line) {
				nxt = line[i+1]
			}

			switch st {
			case stLineComment:
				strip.WriteByte(' ')
				nocom.WriteByte(' ')
				i++

			case stBlockComment:
				if ch == '*' && nxt == '/' {
					st = stNormal
					strip.WriteString("  ")
					nocom.WriteString("  ")
					i += 2
				} else {
					strip.WriteByte(' ')
					nocom.WriteByte(' ')
					i++
				}

			case stString, stChar:
				if ch == '\\' {
					// Escape pair: blank both characters without letting the
					// escaped one terminate the literal.
					strip.WriteByte(' ')
					nocom.WriteByte(ch)
					if i+1 < len(line) {
						strip.WriteByte(' ')
						nocom.WriteByte(nxt)
					}
					i += 2
					break
				}
				if ch == delim {
					st = stNormal
				}
				strip.WriteByte(' ')
				nocom.WriteByte(ch)
				i++

			default: // stNormal
				if ch == '/' && nxt == '/' {
					st = stLineComment
					strip.WriteString("  ")
					nocom.WriteString("  ")
					i += 2
					break
				}
				if ch == '/' && nxt == '*' {
					st = stBlockComment
					strip.WriteString("  ")
					nocom.WriteString("  ")
					i += 2
					break
				}
				if ch == '"' || ch == '\'' {
					if ch == '"' {
						st = stString
					} else {
						st = stChar
					}
					delim = ch
					strip.WriteByte(' ')
					nocom.WriteByte(ch)
					i++
					break
				}
				strip.WriteByte(ch)
				nocom.WriteByte(ch)
				i++
			}
		}

		v.Stripped = append(v.Stripped, strip.String())
		v.NoComments = append(v.NoComments, nocom.String())
	}
	return v
}

// SplitLines splits text into physical lines. The trailing newline, if any,
// does not produce an extra empty line, matching how editors and compilers
// number lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
