package htmlrender

import (
	"strconv"
	"strings"

	"github.com/marcoeng/marco/pkg/ast"
)

// Render serialises doc to HTML per the element-mapping table in spec §4.5.
// It never fails on a well-formed AST (Failure semantics): a link whose URL
// is empty is rendered as its plain content without an <a> element, and a
// node kind the tree walk doesn't recognise contributes only its children's
// output rather than causing an error.
func Render(doc *ast.Document, opts Options) string {
	var b strings.Builder
	for _, child := range doc.Root.Children {
		renderBlock(&b, child, opts)
	}
	return b.String()
}

func renderBlock(b *strings.Builder, n *ast.Node, opts Options) {
	switch n.Kind {
	case ast.KindParagraph:
		b.WriteString("<p>")
		renderInlines(b, n.Children, opts)
		b.WriteString("</p>\n")
	case ast.KindHeading:
		tag := "h" + strconv.Itoa(n.Level)
		b.WriteString("<" + tag + ">")
		renderInlines(b, n.Children, opts)
		b.WriteString("</" + tag + ">\n")
	case ast.KindCodeBlock:
		b.WriteString("<pre><code")
		if n.Lang != "" {
			b.WriteString(` class="language-`)
			b.WriteString(escapeAttr(canonicalLangClass(n.Lang)))
			b.WriteString(`"`)
		}
		b.WriteString(">")
		b.WriteString(escapeText(n.Code))
		b.WriteString("</code></pre>\n")
	case ast.KindHTMLBlock:
		writeRawHTML(b, n.HTML, opts)
	case ast.KindBlockquote:
		b.WriteString("<blockquote>\n")
		renderChildren(b, n.Children, opts)
		b.WriteString("</blockquote>\n")
	case ast.KindList:
		renderList(b, n, opts)
	case ast.KindThematicBreak:
		b.WriteString("<hr/>\n")
	case ast.KindTable:
		renderTable(b, n, opts)
	case ast.KindAdmonition:
		renderAdmonition(b, n, opts)
	default:
		renderChildren(b, n.Children, opts)
	}
}

func renderChildren(b *strings.Builder, children []*ast.Node, opts Options) {
	for _, c := range children {
		renderBlock(b, c, opts)
	}
}

func renderList(b *strings.Builder, n *ast.Node, opts Options) {
	if n.Ordered {
		if n.Start != 1 {
			b.WriteString(`<ol start="`)
			b.WriteString(strconv.Itoa(n.Start))
			b.WriteString("\">\n")
		} else {
			b.WriteString("<ol>\n")
		}
	} else {
		b.WriteString("<ul>\n")
	}
	for _, item := range n.Children {
		renderListItem(b, item, n.Tight, opts)
	}
	if n.Ordered {
		b.WriteString("</ol>\n")
	} else {
		b.WriteString("</ul>\n")
	}
}

func renderListItem(b *strings.Builder, item *ast.Node, tight bool, opts Options) {
	b.WriteString("<li>")
	for _, child := range item.Children {
		if tight && child.Kind == ast.KindParagraph {
			renderInlines(b, child.Children, opts)
			continue
		}
		renderBlock(b, child, opts)
	}
	b.WriteString("</li>\n")
}

func renderTable(b *strings.Builder, n *ast.Node, opts Options) {
	b.WriteString("<table>\n")
	var body []*ast.Node
	wroteHead := false
	for _, row := range n.Children {
		if row.Header && !wroteHead {
			b.WriteString("<thead>\n")
			renderTableRow(b, row, opts)
			b.WriteString("</thead>\n")
			wroteHead = true
			continue
		}
		body = append(body, row)
	}
	b.WriteString("<tbody>\n")
	for _, row := range body {
		renderTableRow(b, row, opts)
	}
	b.WriteString("</tbody>\n")
	b.WriteString("</table>\n")
}

func renderTableRow(b *strings.Builder, row *ast.Node, opts Options) {
	b.WriteString("<tr>")
	for _, cell := range row.Children {
		tag := "td"
		if cell.Header {
			tag = "th"
		}
		b.WriteString("<" + tag)
		switch cell.CellAlignment {
		case ast.AlignLeft:
			b.WriteString(` align="left"`)
		case ast.AlignCenter:
			b.WriteString(` align="center"`)
		case ast.AlignRight:
			b.WriteString(` align="right"`)
		}
		b.WriteString(">")
		renderInlines(b, cell.Children, opts)
		b.WriteString("</" + tag + ">")
	}
	b.WriteString("</tr>\n")
}

func renderAdmonition(b *strings.Builder, n *ast.Node, opts Options) {
	kindClass := n.AdmonitionKind
	if kindClass == "" {
		kindClass = n.AdmonitionIcon
	}
	b.WriteString(`<div class="admonition`)
	if kindClass != "" {
		b.WriteString(" admonition-")
		b.WriteString(escapeAttr(kindClass))
	}
	b.WriteString(" admonition-")
	b.WriteString(n.AdmonitionStyle.String())
	b.WriteString("\">\n")

	title := n.AdmonitionTitle
	if n.AdmonitionStyle == ast.AdmonitionAlert && title == "" && n.AdmonitionKind != "" {
		title = strings.ToUpper(n.AdmonitionKind[:1]) + n.AdmonitionKind[1:]
	}
	if title != "" {
		b.WriteString(`<p class="admonition-title">`)
		b.WriteString(escapeText(title))
		b.WriteString("</p>\n")
	}
	renderChildren(b, n.Children, opts)
	b.WriteString("</div>\n")
}

func writeRawHTML(b *strings.Builder, raw string, opts Options) {
	if !opts.HTMLPassthrough {
		b.WriteString(escapeText(raw))
		return
	}
	if opts.Tagfilter {
		raw = applyTagfilter(raw)
	}
	b.WriteString(raw)
}
