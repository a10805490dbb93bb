package htmlrender

import (
	"strings"

	"github.com/marcoeng/marco/pkg/ast"
)

func renderInlines(b *strings.Builder, nodes []*ast.Node, opts Options) {
	for _, n := range nodes {
		renderInline(b, n, opts)
	}
}

func renderInline(b *strings.Builder, n *ast.Node, opts Options) {
	switch n.Kind {
	case ast.KindText:
		b.WriteString(escapeText(n.Text))
	case ast.KindEmphasis:
		wrap(b, "em", n.Children, opts)
	case ast.KindStrong, ast.KindStrongEmphasis:
		wrap(b, "strong", n.Children, opts)
	case ast.KindStrikethrough:
		wrap(b, "del", n.Children, opts)
	case ast.KindMark:
		wrap(b, "mark", n.Children, opts)
	case ast.KindSuperscript:
		wrap(b, "sup", n.Children, opts)
	case ast.KindSubscript:
		wrap(b, "sub", n.Children, opts)
	case ast.KindCodeSpan:
		b.WriteString("<code>")
		b.WriteString(escapeText(n.Text))
		b.WriteString("</code>")
	case ast.KindLink:
		renderLink(b, n, opts)
	case ast.KindImage:
		renderImage(b, n)
	case ast.KindInlineHTML:
		writeRawHTML(b, n.HTML, opts)
	case ast.KindSoftBreak:
		b.WriteString("\n")
	case ast.KindHardBreak:
		b.WriteString(opts.hardBreak())
		b.WriteString("\n")
	case ast.KindTaskCheckbox, ast.KindTaskCheckboxInline:
		renderTaskCheckbox(b, n)
	default:
		renderInlines(b, n.Children, opts)
	}
}

func wrap(b *strings.Builder, tag string, children []*ast.Node, opts Options) {
	b.WriteString("<" + tag + ">")
	renderInlines(b, children, opts)
	b.WriteString("</" + tag + ">")
}

func renderLink(b *strings.Builder, n *ast.Node, opts Options) {
	if n.URL == "" {
		renderInlines(b, n.Children, opts)
		return
	}
	b.WriteString(`<a href="`)
	b.WriteString(escapeURL(n.URL))
	b.WriteString(`"`)
	if n.Title != "" {
		b.WriteString(` title="`)
		b.WriteString(escapeAttr(n.Title))
		b.WriteString(`"`)
	}
	if opts.ExternalLinkTarget == TargetBlank && isExternalURL(n.URL) {
		b.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	b.WriteString(">")
	renderInlines(b, n.Children, opts)
	b.WriteString("</a>")
}

func renderImage(b *strings.Builder, n *ast.Node) {
	b.WriteString(`<img src="`)
	b.WriteString(escapeURL(n.URL))
	b.WriteString(`" alt="`)
	b.WriteString(escapeAttr(n.Alt))
	b.WriteString(`"`)
	if n.Title != "" {
		b.WriteString(` title="`)
		b.WriteString(escapeAttr(n.Title))
		b.WriteString(`"`)
	}
	b.WriteString(" />")
}

// isExternalURL reports whether url names another origin rather than a
// document-relative path/fragment (spec §4.5: "non-relative links").
func isExternalURL(url string) bool {
	if url == "" {
		return false
	}
	if strings.HasPrefix(url, "#") || strings.HasPrefix(url, "/") {
		return false
	}
	return strings.Contains(url, "://") || strings.HasPrefix(url, "mailto:")
}

// renderTaskCheckbox emits the inline SVG-span form of a checkbox marker
// (spec §4.5). The rendered span carries enough class state (checked vs.
// unchecked) for stylesheet-only theming; no JS behaviour is implied.
func renderTaskCheckbox(b *strings.Builder, n *ast.Node) {
	state := "unchecked"
	if n.Checked {
		state = "checked"
	}
	b.WriteString(`<span class="task-list-item-checkbox task-list-item-checkbox-`)
	b.WriteString(state)
	b.WriteString(`">`)
	b.WriteString(taskCheckboxSVG(n.Checked))
	b.WriteString(`</span>`)
}

func taskCheckboxSVG(checked bool) string {
	if checked {
		return `<svg aria-hidden="true" viewBox="0 0 16 16"><path d="M13.78 4.22a.75.75 0 0 1 0 1.06l-7.25 7.25a.75.75 0 0 1-1.06 0L2.22 9.28a.75.75 0 0 1 1.06-1.06L6 10.94l6.72-6.72a.75.75 0 0 1 1.06 0Z"/></svg>`
	}
	return `<svg aria-hidden="true" viewBox="0 0 16 16"><rect x="1" y="1" width="14" height="14" rx="2" fill="none" stroke="currentColor"/></svg>`
}
