package blockparser

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/marcoeng/marco/pkg/ast"
)

// htmlBlockEndCond describes how an HTML block (CommonMark types 1-7)
// decides where it ends, mirroring the seven condition classes of the
// CommonMark HTML-block rule.
type htmlBlockEndCond int

const (
	endBlankLine htmlBlockEndCond = iota // types 6-7 (known tag name): first blank line after start
	endCloseTag                          // unused start class; ends at the first blank line, like endBlankLine
	endScriptEnd                         // types 1-5: line containing "</script>"-style closer, "-->", "?>", ">" or "]]>" depending on opener
)

var rawTextOpeners = map[string]string{
	"<script": "</script>",
	"<pre":    "</pre>",
	"<style":  "</style>",
	"<textarea": "</textarea>",
}

// isKnownHTMLTag reports whether name may start a type-6/7 HTML block: any
// known HTML5 element name, validated via golang.org/x/net/html/atom rather
// than a hand-maintained list.
func isKnownHTMLTag(name string) bool {
	return atom.Lookup([]byte(strings.ToLower(name))) != atom.Atom(0)
}

// consumeHTMLBlock recognises an HTML block starting at lines[start] per
// spec §4.1's HTML-block rule (types 1-7 collapsed into three termination
// classes) and returns the consumed block plus the next line index.
func consumeHTMLBlock(lines []physLine, start int) (*Block, int, bool) {
	line := lines[start]
	rest, _, ok := stripUpTo3Spaces(line.Text)
	if !ok || !strings.HasPrefix(rest, "<") {
		return nil, 0, false
	}
	lower := strings.ToLower(rest)

	cond := endCloseTag
	var closer string
	switch {
	case strings.HasPrefix(lower, "<!--"):
		cond, closer = endScriptEnd, "-->"
	case strings.HasPrefix(lower, "<?"):
		cond, closer = endScriptEnd, "?>"
	case strings.HasPrefix(lower, "<![cdata["):
		cond, closer = endScriptEnd, "]]>"
	case strings.HasPrefix(lower, "<!"):
		cond, closer = endScriptEnd, ">"
	default:
		tagClosed := false
		for prefix, close := range rawTextOpeners {
			if strings.HasPrefix(lower, prefix) {
				n := len(prefix)
				if n >= len(lower) || lower[n] == ' ' || lower[n] == '\t' || lower[n] == '>' || lower[n] == '\n' {
					cond, closer, tagClosed = endScriptEnd, close, true
				}
			}
		}
		if !tagClosed {
			name, bare := extractTagName(rest)
			if name == "" || !isKnownHTMLTag(name) {
				return nil, 0, false
			}
			_ = bare
			cond = endBlankLine
			if isInlineOnlyStart(lower, name) {
				cond = endCloseTag
			}
		}
	}

	i := start
	var raw []string
	for i < len(lines) {
		raw = append(raw, lines[i].Text)
		switch cond {
		case endScriptEnd:
			if strings.Contains(lines[i].Text, closer) {
				i++
				goto done
			}
		case endBlankLine:
			if i > start && isBlank(lines[i].Text) {
				raw = raw[:len(raw)-1]
				goto done
			}
		case endCloseTag:
			if i > start && isBlank(lines[i].Text) {
				raw = raw[:len(raw)-1]
				goto done
			}
		}
		i++
	}
done:
	b := newBlock(ast.KindHTMLBlock)
	b.HTML = strings.Join(raw, "\n")
	if len(raw) > 0 {
		b.HTML += "\n"
	}
	b.Span = rangeSpan(lines, start, i)
	return b, i, true
}

// extractTagName pulls the tag name out of a line beginning with "<" or
// "</", e.g. "<div class=\"x\">" -> "div".
func extractTagName(s string) (name string, isClose bool) {
	i := 1
	if i < len(s) && s[i] == '/' {
		isClose = true
		i++
	}
	start := i
	for i < len(s) && (isASCIILetter(s[i]) || (i > start && (s[i] == '-' || isASCIIDigit(s[i])))) {
		i++
	}
	return s[start:i], isClose
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isInlineOnlyStart is the hook for telling a type-7 HTML block's opening
// line ("just" a tag with nothing else) apart from other tag openers. It
// always returns false: every known-tag opener uses the blank-line
// termination class, and the separate branch is kept only for clarity.
func isInlineOnlyStart(lowerLine, tagName string) bool {
	return false
}
