package inlineparser

import (
	"strings"

	"github.com/marcoeng/marco/internal/emoji"
	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/span"
)

// extMarkers pairs each Marco delimiter marker with the node kind it produces,
// tried longest-marker-first so "~~" is not shadowed by "~".
var extMarkers = []struct {
	marker string
	kind   ast.Kind
}{
	{"~~", ast.KindStrikethrough},
	{"==", ast.KindMark},
	{"˅", ast.KindSubscript},
	{"^", ast.KindSuperscript},
	{"~", ast.KindSubscript},
}

// Options controls context-sensitive inline behavior.
type Options struct {
	// InListItem marks the content as a list item's first line, so a
	// leading task-checkbox marker is lifted to TaskCheckbox instead of
	// TaskCheckboxInline (spec §4.2 point 11).
	InListItem bool
}

// Parse tokenizes text (the raw inline-content region of a single block)
// into a sequence of ast.Node inlines. base anchors byte offsets in text
// back to the original source; text is assumed to occupy base.StartOffset
// contiguous bytes of the source (true for block regions built by
// pkg/blockparser, modulo CRLF line-ending collapse).
func Parse(text string, base span.Span, refs *ast.RefTable, opts Options) []*ast.Node {
	items := scan(text, base, refs, opts)
	items = resolveEmphasis(items)
	out := make([]*ast.Node, 0, len(items))
	for _, it := range items {
		out = append(out, it.node)
	}
	return out
}

func mkSpan(base span.Span, start, end int) span.Span {
	return span.Span{
		StartOffset: base.StartOffset + start, EndOffset: base.StartOffset + end,
		StartLine: base.StartLine, StartColumn: base.StartColumn + start,
		EndLine: base.StartLine, EndColumn: base.StartColumn + end,
	}
}

func textItem(s string, base span.Span, start, end int) *item {
	return &item{node: &ast.Node{Kind: ast.KindText, Text: s[start:end], Span: mkSpan(base, start, end)}}
}

func scan(s string, base span.Span, refs *ast.RefTable, opts Options) []*item {
	var items []*item
	var textStart int
	i := 0
	flushText := func(end int) {
		if end > textStart {
			items = append(items, textItem(s, base, textStart, end))
		}
	}
	atLineStart := true

	for i < len(s) {
		c := s[i]

		switch {
		case c == '`':
			flushText(i)
			if content, next, ok := scanCodeSpan(s, i); ok {
				items = append(items, &item{node: &ast.Node{Kind: ast.KindCodeSpan, Text: content, Span: mkSpan(base, i, next)}})
				i = next
				textStart = i
				atLineStart = false
				continue
			}
			// An unmatched opening run becomes one literal text node, so a
			// shorter tail of the same run is not rescanned as an opener.
			j := i
			for j < len(s) && s[j] == '`' {
				j++
			}
			items = append(items, textItem(s, base, i, j))
			i = j
			textStart = i
			atLineStart = false
			continue

		case c == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]):
			flushText(i)
			items = append(items, textItem(s, base, i+1, i+2))
			i += 2
			textStart = i
			atLineStart = false
			continue

		case c == '\\' && i+1 < len(s) && s[i+1] == '\n':
			flushText(i)
			items = append(items, &item{node: &ast.Node{Kind: ast.KindHardBreak, Span: mkSpan(base, i, i+2)}})
			i += 2
			textStart = i
			atLineStart = true
			continue

		case c == '*' || c == '_':
			flushText(i)
			j := i
			for j < len(s) && s[j] == c {
				j++
			}
			n := j - i
			leftFlanking, rightFlanking := flanking(s, i, n)
			canOpen, canClose := canOpenClose(c, s, i, n, leftFlanking, rightFlanking)
			d := &delimRun{char: c, count: n, origLen: n, canOpen: canOpen, canClose: canClose}
			items = append(items, &item{node: &ast.Node{Kind: ast.KindText, Text: s[i:j], Span: mkSpan(base, i, j)}, delim: d})
			i = j
			textStart = i
			atLineStart = false
			continue

		case c == '<':
			flushText(i)
			if url, isEmail, next, ok := scanStrictAutolink(s, i); ok {
				dest := url
				if isEmail {
					dest = "mailto:" + url
				}
				items = append(items, &item{node: &ast.Node{Kind: ast.KindLink, URL: dest, Children: []*ast.Node{
					{Kind: ast.KindText, Text: url, Span: mkSpan(base, i, next)},
				}, Span: mkSpan(base, i, next)}})
				i = next
				textStart = i
				atLineStart = false
				continue
			}
			if raw, next, ok := scanInlineHTML(s, i); ok {
				items = append(items, &item{node: &ast.Node{Kind: ast.KindInlineHTML, HTML: raw, Span: mkSpan(base, i, next)}})
				i = next
				textStart = i
				atLineStart = false
				continue
			}
			textStart = i

		case c == '!' && i+1 < len(s) && s[i+1] == '[':
			flushText(i)
			if dest, title, label, next, ok := scanLinkOrImage(s, i+1, refs); ok {
				alt := plainTextOf(label, base, refs)
				img := &ast.Node{Kind: ast.KindImage, URL: dest, Title: title, Alt: alt, Span: mkSpan(base, i, next)}
				items = append(items, &item{node: img})
				i = next
				textStart = i
				atLineStart = false
				continue
			}
			textStart = i

		case c == '[':
			flushText(i)
			if dest, title, label, next, ok := scanLinkOrImage(s, i, refs); ok {
				children := Parse(label, span.Span{}, refs, Options{})
				adjustChildSpans(children, base, i+1)
				link := &ast.Node{Kind: ast.KindLink, URL: dest, Title: title, Children: children, Span: mkSpan(base, i, next)}
				items = append(items, &item{node: link})
				i = next
				textStart = i
				atLineStart = false
				continue
			}
			if checked, next, ok := scanTaskCheckbox(s, i); ok && atLineStart {
				kind := ast.KindTaskCheckboxInline
				if opts.InListItem && i == 0 {
					kind = ast.KindTaskCheckbox
				}
				items = append(items, &item{node: &ast.Node{Kind: kind, Checked: checked, Span: mkSpan(base, i, next)}})
				i = next
				textStart = i
				atLineStart = false
				continue
			}
			textStart = i

		case c == ' ' && trailingHardBreak(s, i):
			flushText(i)
			end := i
			for end < len(s) && s[end] == ' ' {
				end++
			}
			end++ // consume the newline
			items = append(items, &item{node: &ast.Node{Kind: ast.KindHardBreak, Span: mkSpan(base, i, end)}})
			i = end
			textStart = i
			atLineStart = true
			continue

		case c == '\n':
			flushText(i)
			items = append(items, &item{node: &ast.Node{Kind: ast.KindSoftBreak, Span: mkSpan(base, i, i+1)}})
			i++
			textStart = i
			atLineStart = true
			continue

		case c == '~' || c == '=' || c == '^' || strings.HasPrefix(s[i:], "˅"):
			flushText(i)
			matched := false
			for _, em := range extMarkers {
				if strings.HasPrefix(s[i:], em.marker) {
					if inner, next, ok := scanExtDelim(s, i, em.marker); ok {
						children := Parse(inner, span.Span{}, refs, Options{})
						adjustChildSpans(children, base, i+len(em.marker))
						items = append(items, &item{node: &ast.Node{Kind: em.kind, Children: children, Span: mkSpan(base, i, next)}})
						i = next
						textStart = i
						atLineStart = false
						matched = true
					}
					break
				}
			}
			if matched {
				continue
			}
			textStart = i

		case c == ':':
			if name, next, ok := scanEmojiShortcode(s, i); ok {
				if glyph, found := emoji.Lookup(name); found {
					flushText(i)
					items = append(items, &item{node: &ast.Node{Kind: ast.KindText, Text: glyph, Span: mkSpan(base, i, next)}})
					i = next
					textStart = i
					atLineStart = false
					continue
				}
			}

		case isGFMAutolinkStart(s, i):
			flushText(i)
			if url, isEmail, next, ok := scanGFMAutolinkLiteral(s, i); ok {
				dest := url
				if isEmail {
					dest = "mailto:" + url
				}
				items = append(items, &item{node: &ast.Node{Kind: ast.KindLink, URL: dest, Children: []*ast.Node{
					{Kind: ast.KindText, Text: url, Span: mkSpan(base, i, next)},
				}, Span: mkSpan(base, i, next)}})
				i = next
				textStart = i
				atLineStart = false
				continue
			}
			textStart = i
		}

		if c != ' ' && c != '\t' {
			atLineStart = false
		}
		i++
	}
	flushText(len(s))
	return items
}

// trailingHardBreak reports whether position i begins a run of >=2 spaces
// immediately followed by a newline (spec §4.2 point 8).
func trailingHardBreak(s string, i int) bool {
	j := i
	for j < len(s) && s[j] == ' ' {
		j++
	}
	return j-i >= 2 && j < len(s) && s[j] == '\n'
}

func scanEmojiShortcode(s string, i int) (name string, next int, ok bool) {
	j := i + 1
	start := j
	for j < len(s) && (isASCIIAlnum(s[j]) || s[j] == '_' || s[j] == '+' || s[j] == '-') {
		j++
	}
	if j == start || j >= len(s) || s[j] != ':' {
		return "", 0, false
	}
	return s[start:j], j + 1, true
}

func isGFMAutolinkStart(s string, i int) bool {
	rest := s[i:]
	if strings.HasPrefix(rest, "www.") || hasKnownSchemePrefix(rest) {
		return true
	}
	// Bare email literal: only attempt when the preceding char isn't
	// already consumed as part of a word (cheap heuristic: start of run).
	c := s[i]
	return isASCIIAlnum(c) && emailLikelyAt(s, i)
}

func emailLikelyAt(s string, i int) bool {
	if i > 0 && (isASCIIAlnum(s[i-1]) || s[i-1] == '.' || s[i-1] == '_' || s[i-1] == '-') {
		return false
	}
	_, ok := scanBareEmail(s[i:])
	return ok
}

// plainTextOf renders label (image alt text source) through the inline
// tokenizer and collapses it to plain text per spec §4.5.
func plainTextOf(label string, base span.Span, refs *ast.RefTable) string {
	nodes := Parse(label, span.Span{}, refs, Options{})
	doc := &ast.Node{Kind: ast.KindParagraph, Children: nodes}
	return ast.TextContent(doc)
}

// adjustChildSpans rebases spans produced by a nested Parse call (which
// used a zero base, so its nodes carry offsets local to the nested text)
// onto the real source position: base's start plus the given byte offset
// of the nested text within the parent text.
func adjustChildSpans(nodes []*ast.Node, base span.Span, offset int) {
	rebaseSpans(nodes, base.StartOffset+offset, base.StartColumn+offset, base.StartLine)
}

func rebaseSpans(nodes []*ast.Node, offsetShift, columnShift, line int) {
	for _, n := range nodes {
		n.Span.StartOffset += offsetShift
		n.Span.EndOffset += offsetShift
		n.Span.StartColumn += columnShift
		n.Span.EndColumn += columnShift
		n.Span.StartLine = line
		n.Span.EndLine = line
		rebaseSpans(n.Children, offsetShift, columnShift, line)
	}
}
