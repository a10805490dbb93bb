package blockparser

import (
	"strings"

	"github.com/marcoeng/marco/pkg/ast"
)

// stripUpTo3Spaces returns s with up to 3 leading spaces removed, and
// whether it had more than 3 (in which case it is not eligible for the
// construct that called this -- CommonMark's "0-3 leading spaces" rule).
func stripUpTo3Spaces(s string) (rest string, indent int, ok bool) {
	i := 0
	for i < len(s) && i < 4 && s[i] == ' ' {
		i++
	}
	if i == 4 {
		return s, 4, false
	}
	return s[i:], i, true
}

// isThematicBreak reports whether line (0-3 leading spaces already
// tolerated) is a thematic break: >=3 of the same character among -, _, *,
// optionally separated by spaces/tabs.
func isThematicBreak(line string) bool {
	rest, _, ok := stripUpTo3Spaces(line)
	if !ok {
		return false
	}
	var marker byte
	count := 0
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch c {
		case ' ', '\t', '\r':
			continue
		case '-', '_', '*':
			if marker == 0 {
				marker = c
			} else if c != marker {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// atxHeading recognises an ATX heading line.
func atxHeading(line string) (level int, content string, ok bool) {
	rest, _, ok2 := stripUpTo3Spaces(line)
	if !ok2 {
		return 0, "", false
	}
	i := 0
	for i < len(rest) && rest[i] == '#' {
		i++
	}
	if i == 0 || i > 6 {
		return 0, "", false
	}
	level = i
	if i == len(rest) {
		return level, "", true
	}
	if rest[i] != ' ' && rest[i] != '\t' {
		return 0, "", false
	}
	content = strings.Trim(rest[i:], " \t")
	// Strip optional trailing sequence of #'s (preceded by a space, or the
	// whole remainder is #'s).
	trimmed := strings.TrimRight(content, " \t")
	j := len(trimmed)
	for j > 0 && trimmed[j-1] == '#' {
		j--
	}
	if j < len(trimmed) && (j == 0 || trimmed[j-1] == ' ' || trimmed[j-1] == '\t') {
		content = strings.TrimRight(trimmed[:j], " \t")
	} else if j == 0 {
		content = ""
	}
	return level, content, true
}

// setextUnderline recognises a setext underline line (a run of = or -,
// 0-3 leading spaces, optional trailing spaces).
func setextUnderline(line string) (level int, ok bool) {
	rest, _, ok2 := stripUpTo3Spaces(line)
	if !ok2 || rest == "" {
		return 0, false
	}
	trimmed := strings.TrimRight(rest, " \t")
	if trimmed == "" {
		return 0, false
	}
	marker := trimmed[0]
	if marker != '=' && marker != '-' {
		return 0, false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != marker {
			return 0, false
		}
	}
	if marker == '=' {
		return 1, true
	}
	return 2, true
}

// fenceOpen recognises an opening code fence.
func fenceOpen(line string) (ch byte, length int, info string, indent int, ok bool) {
	rest, ind, ok2 := stripUpTo3Spaces(line)
	if !ok2 {
		return 0, 0, "", 0, false
	}
	if rest == "" {
		return 0, 0, "", 0, false
	}
	marker := rest[0]
	if marker != '`' && marker != '~' {
		return 0, 0, "", 0, false
	}
	i := 0
	for i < len(rest) && rest[i] == marker {
		i++
	}
	if i < 3 {
		return 0, 0, "", 0, false
	}
	rawInfo := strings.TrimSpace(rest[i:])
	if marker == '`' && strings.ContainsRune(rawInfo, '`') {
		return 0, 0, "", 0, false
	}
	return marker, i, rawInfo, ind, true
}

// fenceClose reports whether line closes a fence opened with ch/length.
func fenceClose(line string, ch byte, length int) bool {
	rest, _, ok := stripUpTo3Spaces(line)
	if !ok {
		return false
	}
	i := 0
	for i < len(rest) && rest[i] == ch {
		i++
	}
	if i < length {
		return false
	}
	return strings.TrimSpace(rest[i:]) == ""
}

// blockquoteMarker strips a single level of blockquote marker ("> " or ">")
// from line, returning the remainder and whether it matched.
func blockquoteMarker(line string) (rest string, ok bool) {
	s, _, within := stripUpTo3Spaces(line)
	if !within || s == "" || s[0] != '>' {
		return "", false
	}
	s = s[1:]
	if len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	} else if len(s) > 0 && s[0] == '\t' {
		s = "   " + s[1:] // tab after > expands; keep it simple: 3 spaces padding
	}
	return s, true
}

// listMarker describes a recognised list item marker.
type listMarker struct {
	Ordered    bool
	Char       byte // unordered bullet char, or ordered delimiter '.'/')'
	Start      int  // ordered start number
	MarkerLen  int  // length of the marker text itself (e.g. "1." = 2, "-" = 1)
	Indent     int  // leading spaces before the marker
	AfterWidth int  // effective columns consumed by marker+following space(s)
}

// parseListMarker recognises a list item marker at the start of line.
func parseListMarker(line string) (m listMarker, contentOffset int, ok bool) {
	rest, indent, within := stripUpTo3Spaces(line)
	if !within {
		return listMarker{}, 0, false
	}
	if rest == "" {
		return listMarker{}, 0, false
	}
	i := 0
	switch rest[0] {
	case '-', '+', '*':
		// Reject thematic breaks masquerading as bullets handled by caller
		// ordering (thematic break checked first).
		m = listMarker{Ordered: false, Char: rest[0], MarkerLen: 1, Indent: indent}
		i = 1
	default:
		if rest[0] < '0' || rest[0] > '9' {
			return listMarker{}, 0, false
		}
		j := 0
		for j < len(rest) && j < 9 && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j >= len(rest) || (rest[j] != '.' && rest[j] != ')') {
			return listMarker{}, 0, false
		}
		num := 0
		for k := 0; k < j; k++ {
			num = num*10 + int(rest[k]-'0')
		}
		m = listMarker{Ordered: true, Char: rest[j], Start: num, MarkerLen: j + 1, Indent: indent}
		i = j + 1
	}
	if i >= len(rest) {
		// Marker at end of line with no content: still valid, content starts
		// at marker+1 column (empty item).
		m.AfterWidth = m.Indent + i + 1
		return m, len(line), true
	}
	if rest[i] != ' ' && rest[i] != '\t' {
		return listMarker{}, 0, false
	}
	// Consume up to 4 spaces of padding after the marker (CommonMark: 1 to
	// 4 spaces; >4 means the rest is an indented-code continuation at
	// marker-width+1).
	spaces := 0
	k := i
	for k < len(rest) && spaces < 5 && (rest[k] == ' ' || rest[k] == '\t') {
		spaces++
		k++
	}
	if spaces == 0 || spaces == 5 {
		spaces = 1
	}
	contentOffset = (len(line) - len(rest)) + i + spaces
	if contentOffset > len(line) {
		contentOffset = len(line)
	}
	m.AfterWidth = indent + m.MarkerLen + spaces
	return m, contentOffset, true
}

// tableDelimiterRow parses a delimiter row like "|---|:--:|" into column
// alignments. Returns ok=false if the line is not a valid delimiter row.
func tableDelimiterRow(line string) ([]ast.Alignment, bool) {
	rest, _, within := stripUpTo3Spaces(line)
	if !within {
		return nil, false
	}
	cells := splitTableRow(rest)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]ast.Alignment, 0, len(cells))
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		body := c
		if left {
			body = body[1:]
		}
		if right && len(body) > 0 {
			body = body[:len(body)-1]
		}
		if body == "" || strings.Trim(body, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns = append(aligns, ast.AlignCenter)
		case left:
			aligns = append(aligns, ast.AlignLeft)
		case right:
			aligns = append(aligns, ast.AlignRight)
		default:
			aligns = append(aligns, ast.AlignNone)
		}
	}
	return aligns, true
}

// splitTableRow splits a pipe-delimited row into cell strings, honoring
// backslash-escaped pipes and stripping one leading/trailing unescaped pipe.
func splitTableRow(line string) []string {
	if !strings.Contains(line, "|") {
		return nil
	}
	trimmed := strings.TrimSpace(line)
	var cells []string
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if escaped {
			cur.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			cur.WriteByte(c)
			escaped = true
			continue
		}
		if c == '|' {
			cells = append(cells, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	cells = append(cells, cur.String())

	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// isRefDefStart is a cheap pre-check for a reference definition: up to 3
// spaces then "[". The "label]:" part is checked by tryParseRefDef.
func isRefDefStart(line string) bool {
	rest, _, within := stripUpTo3Spaces(line)
	if !within || len(rest) == 0 || rest[0] != '[' {
		return false
	}
	return true
}
