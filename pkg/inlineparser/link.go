package inlineparser

import (
	"strings"

	"github.com/marcoeng/marco/pkg/ast"
)

// scanBracket finds the matching ']' for an opening '[' at s[i] (s[i] must
// be '['), honoring nested brackets and backslash escapes. Returns the
// byte offset just after the opening '[' through just before the matching
// ']', and the offset of the character after ']'.
func scanBracket(s string, i int) (textStart, textEnd, after int, ok bool) {
	depth := 0
	j := i + 1
	for j < len(s) {
		c := s[j]
		if c == '\\' && j+1 < len(s) {
			j += 2
			continue
		}
		if c == '[' {
			depth++
		}
		if c == ']' {
			if depth == 0 {
				return i + 1, j, j + 1, true
			}
			depth--
		}
		j++
	}
	return 0, 0, 0, false
}

// scanInlineLinkTail parses the "(...)" tail of an inline link/image
// immediately following a "]" at s[i] (s[i] must be '('), returning the
// destination, title and offset just past the closing ')'.
func scanInlineLinkTail(s string, i int) (dest, title string, hasTitle bool, next int, ok bool) {
	j := i + 1
	j = skipSpacesAndOneBreak(s, j)
	if j < len(s) && s[j] == ')' {
		return "", "", false, j + 1, true
	}
	d, rest, ok2 := scanDestination(s[j:])
	if !ok2 {
		return "", "", false, 0, false
	}
	j += len(s[j:]) - len(rest)
	before := j
	j = skipSpacesAndOneBreak(s, j)
	if j < len(s) && (s[j] == '"' || s[j] == '\'' || s[j] == '(') {
		t, rem, ok3 := scanTitle(s[j:])
		if ok3 {
			title, hasTitle = t, true
			j += len(s[j:]) - len(rem)
			j = skipSpacesAndOneBreak(s, j)
		} else {
			j = before
		}
	}
	if j >= len(s) || s[j] != ')' {
		return "", "", false, 0, false
	}
	return d, title, hasTitle, j + 1, true
}

func skipSpacesAndOneBreak(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

func scanDestination(s string) (dest string, rest string, ok bool) {
	if len(s) > 0 && s[0] == '<' {
		var b strings.Builder
		i := 1
		for i < len(s) {
			c := s[i]
			if c == '\\' && i+1 < len(s) {
				b.WriteByte(s[i+1])
				i += 2
				continue
			}
			if c == '>' {
				return b.String(), s[i+1:], true
			}
			if c == '\n' || c == '<' {
				return "", s, false
			}
			b.WriteByte(c)
			i++
		}
		return "", s, false
	}
	var b strings.Builder
	depth := 0
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' {
			break
		}
		if c < 0x20 {
			break
		}
		if c == '(' {
			depth++
		}
		if c == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
		b.WriteByte(c)
		i++
	}
	if b.Len() == 0 {
		return "", s, false
	}
	return b.String(), s[i:], true
}

func scanTitle(s string) (title, rest string, ok bool) {
	if len(s) == 0 {
		return "", s, false
	}
	open := s[0]
	var closeCh byte
	switch open {
	case '"':
		closeCh = '"'
	case '\'':
		closeCh = '\''
	case '(':
		closeCh = ')'
	default:
		return "", s, false
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == closeCh {
			return b.String(), s[i+1:], true
		}
		if c == '(' && open == '(' {
			return "", s, false
		}
		b.WriteByte(c)
		i++
	}
	return "", s, false
}

// scanLinkOrImage attempts to resolve a link/image starting at s[start],
// where s[start] is '[' (link) or the '[' following a consumed '!'
// (image). textStart is the offset just after '[' used for the label's
// plain-text fallback if resolution fails entirely.
//
// On success it returns the destination, title, and the raw label text
// (for reference-form lookups and image alt), plus the offset just past
// the construct.
func scanLinkOrImage(s string, start int, refs *ast.RefTable) (dest, title string, labelText string, next int, ok bool) {
	textStart, textEnd, after, ok2 := scanBracket(s, start)
	if !ok2 {
		return "", "", "", 0, false
	}
	label := s[textStart:textEnd]

	if after < len(s) && s[after] == '(' {
		dest, title, _, n, ok3 := scanInlineLinkTail(s, after)
		if ok3 {
			return dest, title, label, n, true
		}
	}

	// Reference forms: full [text][ref], collapsed [text][], shortcut [text].
	if after < len(s) && s[after] == '[' {
		refTextStart, refTextEnd, refAfter, ok4 := scanBracket(s, after)
		if ok4 {
			refLabel := s[refTextStart:refTextEnd]
			if refLabel == "" {
				refLabel = label
			}
			if def, found := refs.Lookup(refLabel); found {
				return def.Destination, def.Title, label, refAfter, true
			}
			return "", "", "", 0, false
		}
	}
	if def, found := refs.Lookup(label); found {
		return def.Destination, def.Title, label, after, true
	}
	return "", "", "", 0, false
}
