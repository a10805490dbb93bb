package extensions

import (
	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/span"
)

// applyMentions walks the whole tree rewriting "@handle"/"@platform:handle"
// text runs into Link nodes wherever the handle resolves against the fixed
// platform table (spec §4.4 point 3).
func applyMentions(doc *ast.Document) {
	rewriteMentionsIn(doc.Root)
}

func rewriteMentionsIn(n *ast.Node) {
	if n.Kind == ast.KindText {
		return // handled by the parent via splitMentions below
	}
	var out []*ast.Node
	for _, c := range n.Children {
		if c.Kind == ast.KindLink {
			// Already-resolved mentions (and ordinary links) are left alone:
			// their Text child can still look like "@handle" and must not be
			// re-split on a second Apply.
			out = append(out, c)
			continue
		}
		if c.Kind == ast.KindText {
			out = append(out, splitMentions(c)...)
			continue
		}
		rewriteMentionsIn(c)
		out = append(out, c)
	}
	n.Children = out
}

// splitMentions splits one Text node into a sequence of Text/Link nodes
// around any resolvable mentions it contains.
func splitMentions(n *ast.Node) []*ast.Node {
	matches := mentionRegex.FindAllStringSubmatchIndex(n.Text, -1)
	if matches == nil {
		return []*ast.Node{n}
	}

	var out []*ast.Node
	last := 0
	for _, m := range matches {
		// m layout: [0]=whole start,end [2]=prefix(ws) [4]=platform [6]=handle
		fullStart, fullEnd := m[0], m[1]
		prefixStart, prefixEnd := m[2], m[3]
		platform := defaultMentionPlatform
		if m[4] >= 0 {
			platform = n.Text[m[4]:m[5]]
		}
		handle := n.Text[m[6]:m[7]]

		url, ok := profileURL(platform, handle)
		if !ok {
			continue
		}

		if fullStart > last {
			out = append(out, textSlice(n, last, fullStart))
		}
		if prefixEnd > prefixStart {
			out = append(out, textSlice(n, prefixStart, prefixEnd))
		}
		atStart := prefixEnd
		link := &ast.Node{
			Kind: ast.KindLink,
			URL:  url,
			Span: subSpan(n.Span, atStart, fullEnd),
			Children: []*ast.Node{
				{Kind: ast.KindText, Text: n.Text[atStart:fullEnd], Span: subSpan(n.Span, atStart, fullEnd)},
			},
		}
		out = append(out, link)
		last = fullEnd
	}
	if last < len(n.Text) {
		out = append(out, textSlice(n, last, len(n.Text)))
	}
	if len(out) == 0 {
		return []*ast.Node{n}
	}
	return out
}

func textSlice(n *ast.Node, start, end int) *ast.Node {
	return &ast.Node{Kind: ast.KindText, Text: n.Text[start:end], Span: subSpan(n.Span, start, end)}
}

// subSpan approximates the span of n.Text[start:end] assuming (as
// pkg/inlineparser's mkSpan does, placing every inline span on its block's
// first line) that n's span covers a single source line with
// StartOffset/StartColumn aligned to byte 0 of n.Text.
func subSpan(parent span.Span, start, end int) span.Span {
	return span.Span{
		StartOffset: parent.StartOffset + start, EndOffset: parent.StartOffset + end,
		StartLine: parent.StartLine, EndLine: parent.StartLine,
		StartColumn: parent.StartColumn + start, EndColumn: parent.StartColumn + end,
	}
}
