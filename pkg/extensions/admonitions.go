package extensions

import (
	"regexp"
	"strings"

	"github.com/marcoeng/marco/pkg/ast"
)

// alertMarker matches one of the five GFM alert markers, case-insensitive.
var alertMarker = regexp.MustCompile(`(?i)^\[!(NOTE|TIP|IMPORTANT|WARNING|CAUTION)\]$`)

// customMarker matches Marco's custom-bracket quote-admonition header: a
// leading run of non-whitespace, non-']' characters up to the first space
// is the icon token, the remainder up to ']' is the title (spec §4.4 point
// 1, grounded on the teacher's admonitions.go regex-driven header parsing
// and made concrete per the icon-token grammar carried over from
// original_source's gfm_admonitions.rs).
var customMarker = regexp.MustCompile(`^\[(\S+)\s+(.+)\]$`)

// applyAdmonitions rewrites top-level Blockquotes whose first Paragraph
// begins with a bracketed marker into Admonition nodes (spec §4.4 point 1).
func applyAdmonitions(doc *ast.Document) {
	for _, top := range doc.Root.Children {
		if top.Kind != ast.KindBlockquote {
			continue
		}
		rewriteAdmonition(top)
	}
}

func rewriteAdmonition(bq *ast.Node) {
	if len(bq.Children) == 0 || bq.Children[0].Kind != ast.KindParagraph {
		return
	}
	para := bq.Children[0]

	text, consumed, ok := leadingTextRun(para.Children)
	if !ok {
		return
	}

	if m := alertMarker.FindStringSubmatch(text); m != nil {
		bq.Kind = ast.KindAdmonition
		bq.AdmonitionStyle = ast.AdmonitionAlert
		bq.AdmonitionKind = strings.ToLower(m[1])
		para.Children = para.Children[consumed:]
		return
	}

	if m := customMarker.FindStringSubmatch(text); m != nil {
		bq.Kind = ast.KindAdmonition
		bq.AdmonitionStyle = ast.AdmonitionQuote
		bq.AdmonitionIcon = m[1]
		bq.AdmonitionTitle = strings.TrimSpace(m[2])
		para.Children = para.Children[consumed:]
		return
	}
}

// leadingTextRun concatenates plain-Text children from the start of
// children up to (and consuming) the first soft/hard break, returning
// false if a non-Text, non-break node appears first (the marker must be
// unstyled bracket text).
func leadingTextRun(children []*ast.Node) (text string, consumed int, ok bool) {
	var b strings.Builder
	for i, c := range children {
		switch c.Kind {
		case ast.KindText:
			b.WriteString(c.Text)
		case ast.KindSoftBreak, ast.KindHardBreak:
			return b.String(), i + 1, true
		default:
			return "", 0, false
		}
	}
	return b.String(), len(children), true
}
