package inlineparser

import "strings"

// scanInlineHTML recognises one of CommonMark's inline HTML productions
// (open tag, close tag, comment, processing instruction, declaration,
// CDATA) starting at s[i] (s[i] must be '<'). Returns the raw HTML text
// and offset just past it.
func scanInlineHTML(s string, i int) (raw string, next int, ok bool) {
	rest := s[i:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		if end := strings.Index(rest[4:], "-->"); end >= 0 {
			n := 4 + end + 3
			return rest[:n], i + n, true
		}
		return "", 0, false
	case strings.HasPrefix(rest, "<?"):
		if end := strings.Index(rest[2:], "?>"); end >= 0 {
			n := 2 + end + 2
			return rest[:n], i + n, true
		}
		return "", 0, false
	case strings.HasPrefix(rest, "<![CDATA["):
		if end := strings.Index(rest[9:], "]]>"); end >= 0 {
			n := 9 + end + 3
			return rest[:n], i + n, true
		}
		return "", 0, false
	case strings.HasPrefix(rest, "<!"):
		if end := strings.IndexByte(rest[2:], '>'); end >= 0 {
			n := 2 + end + 1
			return rest[:n], i + n, true
		}
		return "", 0, false
	}
	return scanHTMLTag(rest, i)
}

// scanHTMLTag recognises a plain open or close tag: <tagname attrs*> or
// <tagname attrs*/> or </tagname>.
func scanHTMLTag(rest string, baseOffset int) (raw string, next int, ok bool) {
	j := 1
	if j < len(rest) && rest[j] == '/' {
		j++
	}
	start := j
	if j >= len(rest) || !isASCIILetter(rest[j]) {
		return "", 0, false
	}
	for j < len(rest) && (isASCIIAlnum(rest[j]) || rest[j] == '-') {
		j++
	}
	if j == start {
		return "", 0, false
	}
	for j < len(rest) {
		for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t' || rest[j] == '\n') {
			j++
		}
		if j < len(rest) && rest[j] == '/' {
			j++
			continue
		}
		if j < len(rest) && rest[j] == '>' {
			return rest[:j+1], baseOffset + j + 1, true
		}
		// attribute name
		attrStart := j
		for j < len(rest) && (isASCIIAlnum(rest[j]) || rest[j] == '-' || rest[j] == '_' || rest[j] == ':') {
			j++
		}
		if j == attrStart {
			return "", 0, false
		}
		for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t' || rest[j] == '\n') {
			j++
		}
		if j < len(rest) && rest[j] == '=' {
			j++
			for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t' || rest[j] == '\n') {
				j++
			}
			if j >= len(rest) {
				return "", 0, false
			}
			switch rest[j] {
			case '"':
				end := strings.IndexByte(rest[j+1:], '"')
				if end < 0 {
					return "", 0, false
				}
				j = j + 1 + end + 1
			case '\'':
				end := strings.IndexByte(rest[j+1:], '\'')
				if end < 0 {
					return "", 0, false
				}
				j = j + 1 + end + 1
			default:
				vs := j
				for j < len(rest) && rest[j] != ' ' && rest[j] != '\t' && rest[j] != '\n' && rest[j] != '>' {
					j++
				}
				if j == vs {
					return "", 0, false
				}
			}
		}
	}
	return "", 0, false
}
