// Package inlineparser implements the engine's inline-level grammar (spec
// §4.2): within a block's raw text region, produces an ordered sequence of
// ast.Node inline nodes with spans. Like pkg/blockparser it never fails --
// unrecognised constructs degrade to a single consumed text character.
package inlineparser

import "unicode"

func isASCIIPunct(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	}
	return false
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isASCIIAlnum(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c)
}

// runeBefore/runeAfter classify the Unicode rune immediately preceding or
// following byte offset i in s, used for the flanking-delimiter rules.
// Out-of-range positions count as whitespace (CommonMark treats the start
// and end of the block as whitespace for this purpose).
func runeBefore(s string, i int) rune {
	if i <= 0 {
		return ' '
	}
	r, _ := lastRune(s[:i])
	return r
}

func runeAfter(s string, i int) rune {
	if i >= len(s) {
		return ' '
	}
	r, _ := firstRune(s[i:])
	return r
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return ' ', 0
}

func lastRune(s string) (rune, int) {
	rs := []rune(s)
	if len(rs) == 0 {
		return ' ', 0
	}
	r := rs[len(rs)-1]
	return r, len(string(r))
}

func isUnicodeWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

func isUnicodePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
