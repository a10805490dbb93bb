package blockparser

import "strings"

// parsedRefDef is a successfully parsed reference definition, plus how many
// source lines it consumed.
type parsedRefDef struct {
	Label       string
	Destination string
	Title       string
	HasTitle    bool
	LinesUsed   int
}

// tryParseRefDef attempts to parse a reference definition starting at
// lines[idx]. It may consume up to 3 physical lines (label+dest on one
// line, optional title on the next). Returns ok=false if lines[idx] is not
// a reference definition, leaving the caller to fall back to paragraph
// parsing.
func tryParseRefDef(lines []physLine, idx int) (parsedRefDef, bool) {
	if idx >= len(lines) || !isRefDefStart(lines[idx].Text) {
		return parsedRefDef{}, false
	}

	// Join up to 3 lines worth of text to give the scanner enough lookahead
	// for destination+title that wrap onto following lines.
	joined := lines[idx].Text
	maxJoin := idx + 3
	if maxJoin > len(lines) {
		maxJoin = len(lines)
	}
	for i := idx + 1; i < maxJoin; i++ {
		joined += "\n" + lines[i].Text
	}

	rest, _, _ := stripUpTo3Spaces(joined)
	if len(rest) == 0 || rest[0] != '[' {
		return parsedRefDef{}, false
	}

	label, after, ok := scanBracketLabel(rest[1:])
	if !ok {
		return parsedRefDef{}, false
	}
	if strings.TrimSpace(label) == "" {
		return parsedRefDef{}, false
	}
	after = strings.TrimLeft(after, " \t")
	if !strings.HasPrefix(after, ":") {
		return parsedRefDef{}, false
	}
	after = after[1:]
	after = skipLineBreaks(strings.TrimLeft(after, " \t"))

	dest, after, ok := scanLinkDestination(after)
	if !ok {
		return parsedRefDef{}, false
	}

	// Determine how many source lines were consumed so far.
	consumedText := joined[:len(joined)-len(after)]
	linesUsed := strings.Count(consumedText, "\n") + 1

	// Optional title: must be separated from destination by whitespace
	// (possibly a line break), and must be alone on its line(s) or followed
	// only by trailing whitespace before end of input/next block.
	trimmed := strings.TrimLeft(after, " \t")
	hadBreakOrSpace := trimmed != after || strings.HasPrefix(trimmed, "\n")
	after = trimmed
	titleStart := after
	if strings.HasPrefix(titleStart, "\n") {
		titleStart = strings.TrimLeft(titleStart[1:], " \t")
	}

	title, hasTitle := "", false
	if hadBreakOrSpace && len(titleStart) > 0 && (titleStart[0] == '"' || titleStart[0] == '\'' || titleStart[0] == '(') {
		if t, rem, ok := scanLinkTitle(titleStart); ok {
			// Title must be followed only by blank/whitespace to end of line.
			restOfLine := rem
			if nl := strings.IndexByte(restOfLine, '\n'); nl >= 0 {
				restOfLine = restOfLine[:nl]
			}
			if strings.TrimSpace(restOfLine) == "" {
				title, hasTitle = t, true
				consumedText = joined[:len(joined)-len(rem)]
				linesUsed = strings.Count(consumedText, "\n") + 1
				// consume to end of that line
				if nl := strings.IndexByte(rem, '\n'); nl >= 0 {
					linesUsed = strings.Count(joined[:len(joined)-len(rem)+nl], "\n") + 1
				}
			}
		}
	} else {
		// No title: the destination line itself must have nothing else
		// trailing (besides whitespace) for it to be a clean single/][-line
		// def; CommonMark actually allows trailing garbage to fail the
		// whole def, but we take the common-case reading here.
		restOfLine := after
		if nl := strings.IndexByte(restOfLine, '\n'); nl >= 0 {
			restOfLine = restOfLine[:nl]
		}
		if strings.TrimSpace(restOfLine) != "" {
			return parsedRefDef{}, false
		}
	}

	if linesUsed > maxJoin-idx {
		linesUsed = maxJoin - idx
	}

	return parsedRefDef{
		Label: label, Destination: dest, Title: title, HasTitle: hasTitle,
		LinesUsed: linesUsed,
	}, true
}

func skipLineBreaks(s string) string {
	return strings.TrimLeft(s, "\n \t")
}

// scanBracketLabel scans a `...]` label body (s is text after the opening
// '['), honoring backslash escapes, returning the label text and the
// remainder starting just after the closing ']'.
func scanBracketLabel(s string) (label string, rest string, ok bool) {
	var b strings.Builder
	i := 0
	depth := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == '[' {
			depth++
		}
		if c == ']' {
			if depth == 0 {
				return b.String(), s[i+1:], true
			}
			depth--
		}
		b.WriteByte(c)
		i++
	}
	return "", s, false
}

// scanLinkDestination scans a link destination, either <...> form or a bare
// non-whitespace run with balanced parens, returning the destination text
// (unwrapped, unescaped left literal) and remainder.
func scanLinkDestination(s string) (dest string, rest string, ok bool) {
	if len(s) > 0 && s[0] == '<' {
		i := 1
		var b strings.Builder
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
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' {
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
	return unescapePunct(b.String()), s[i:], true
}

// scanLinkTitle scans a "...", '...', or (...) title, returning the
// unescaped title text and remainder after the closing delimiter.
func scanLinkTitle(s string) (title string, rest string, ok bool) {
	if len(s) == 0 {
		return "", s, false
	}
	open := s[0]
	var close byte
	switch open {
	case '"':
		close = '"'
	case '\'':
		close = '\''
	case '(':
		close = ')'
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
		if c == close {
			return b.String(), s[i+1:], true
		}
		if c == '(' && open == '(' {
			return "", s, false // unescaped ( inside ( ) title is invalid
		}
		b.WriteByte(c)
		i++
	}
	return "", s, false
}

// unescapePunct resolves backslash-escapes of ASCII punctuation (spec
// §4.2 point 2, also applied to bare link destinations).
func unescapePunct(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

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
