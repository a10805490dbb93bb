// Package highlight walks a parsed ast.Document and emits the ordered
// { tag, span } sequence an editor uses to colour source text (spec §4.7).
// It is a separate tree walk from pkg/htmlrender: the two consume the same
// ast.Document but serve unrelated concerns (spec §9 Design Notes,
// "Highlight extractor is separate from renderer"), grounded in the
// fixed tag vocabulary the original implementation's editor integration
// shares between its `core::lsp::HighlightTag` producer and its GTK
// TextTag consumer (original_source/marco/src/ui/css/syntax.rs's
// LSP_TAG_NAMES).
package highlight

import (
	"sort"

	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/span"
)

// Tag is one of the fixed highlight-tag vocabulary entries (spec §4.7).
type Tag string

const (
	TagHeading1      Tag = "heading1"
	TagHeading2      Tag = "heading2"
	TagHeading3      Tag = "heading3"
	TagHeading4      Tag = "heading4"
	TagHeading5      Tag = "heading5"
	TagHeading6      Tag = "heading6"
	TagEmphasis      Tag = "emphasis"
	TagStrong        Tag = "strong"
	TagStrikethrough Tag = "strikethrough"
	TagMark          Tag = "mark"
	TagSuperscript   Tag = "superscript"
	TagSubscript     Tag = "subscript"
	TagLink          Tag = "link"
	TagImage         Tag = "image"
	TagCodeSpan      Tag = "code-span"
	TagCodeBlock     Tag = "code-block"
	TagInlineHTML    Tag = "inline-html"
	TagHardBreak     Tag = "hard-break"
	TagSoftBreak     Tag = "soft-break"
	TagThematicBreak Tag = "thematic-break"
	TagBlockquote    Tag = "blockquote"
	TagHTMLBlock     Tag = "html-block"
	TagList          Tag = "list"
	TagListItem      Tag = "list-item"
)

var headingTags = [...]Tag{TagHeading1, TagHeading2, TagHeading3, TagHeading4, TagHeading5, TagHeading6}

// Highlight is one emitted { tag, span } record.
type Highlight struct {
	Tag  Tag
	Span span.Span
}

// Compute walks doc and returns every highlight record, sorted by start
// offset then by end offset descending (spec §4.7: "outer tags first").
// The walk is pure with respect to the AST: it never mutates doc.
func Compute(doc *ast.Document) []Highlight {
	var out []Highlight
	ast.Walk(doc.Root, func(n *ast.Node, _ int) bool {
		if tag, ok := tagFor(n); ok {
			out = append(out, Highlight{Tag: tag, Span: n.Span})
		}
		// StrongEmphasis carries both the emphasis and strong tags over the
		// same span (it is CommonMark's nested Emphasis-wrapping-Strong
		// collapsed to one node, spec §4.2 point 3's simplification -- the
		// editor still wants both styles applied).
		if n.Kind == ast.KindStrongEmphasis {
			out = append(out, Highlight{Tag: TagEmphasis, Span: n.Span})
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Span, out[j].Span
		if a.StartOffset != b.StartOffset {
			return a.StartOffset < b.StartOffset
		}
		return a.EndOffset > b.EndOffset
	})
	return out
}

func tagFor(n *ast.Node) (Tag, bool) {
	switch n.Kind {
	case ast.KindHeading:
		if n.Level >= 1 && n.Level <= 6 {
			return headingTags[n.Level-1], true
		}
		return "", false
	case ast.KindEmphasis:
		return TagEmphasis, true
	case ast.KindStrong, ast.KindStrongEmphasis:
		return TagStrong, true
	case ast.KindStrikethrough:
		return TagStrikethrough, true
	case ast.KindMark:
		return TagMark, true
	case ast.KindSuperscript:
		return TagSuperscript, true
	case ast.KindSubscript:
		return TagSubscript, true
	case ast.KindLink:
		return TagLink, true
	case ast.KindImage:
		return TagImage, true
	case ast.KindCodeSpan:
		return TagCodeSpan, true
	case ast.KindCodeBlock:
		return TagCodeBlock, true
	case ast.KindInlineHTML:
		return TagInlineHTML, true
	case ast.KindHardBreak:
		return TagHardBreak, true
	case ast.KindSoftBreak:
		return TagSoftBreak, true
	case ast.KindThematicBreak:
		return TagThematicBreak, true
	case ast.KindBlockquote, ast.KindAdmonition:
		// Admonition replaces Blockquote post-extension (spec §4.4 point 1);
		// the tag vocabulary has no separate admonition entry, so it keeps
		// the blockquote tag it had before the rewrite.
		return TagBlockquote, true
	case ast.KindHTMLBlock:
		return TagHTMLBlock, true
	case ast.KindList:
		return TagList, true
	case ast.KindListItem:
		return TagListItem, true
	default:
		return "", false
	}
}
