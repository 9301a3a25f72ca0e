package tui

import (
	"strings"
	"unicode"
)

// Sanitize strips control characters from document text before it reaches
// a terminal. Newlines and tabs become spaces so table cells stay on one line.
// ANSI escapes, NUL and BEL are removed.
func Sanitize(s string) string {
	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteRune(' ')
		case !unicode.IsControl(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
