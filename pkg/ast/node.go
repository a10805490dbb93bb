// Package ast defines the engine's tagged-variant syntax tree: a single
// Node type carrying a Kind discriminator, children, a source Span, and
// kind-specific payload fields. The shape follows the teacher's node-kind
// pattern (compare the goldmark-derived plugins under the teacher's
// pkg/plugins, e.g. admonitions.go's ast.NodeKind/Dump convention) adapted
// to a tree we build ourselves rather than one a foreign parser hands us.
package ast

import "github.com/marcoeng/marco/pkg/span"

// Kind discriminates Node variants.
type Kind int

const (
	KindInvalid Kind = iota

	// Block kinds.
	KindDocument
	KindParagraph
	KindHeading
	KindCodeBlock
	KindHTMLBlock
	KindBlockquote
	KindList
	KindListItem
	KindThematicBreak
	KindTable
	KindTableRow
	KindTableCell
	KindAdmonition

	// Inline kinds.
	KindText
	KindEmphasis
	KindStrong
	KindStrongEmphasis
	KindStrikethrough
	KindMark
	KindSuperscript
	KindSubscript
	KindCodeSpan
	KindLink
	KindImage
	KindInlineHTML
	KindSoftBreak
	KindHardBreak
	KindTaskCheckbox
	KindTaskCheckboxInline
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Invalid"
}

var kindNames = map[Kind]string{
	KindDocument:           "Document",
	KindParagraph:          "Paragraph",
	KindHeading:            "Heading",
	KindCodeBlock:          "CodeBlock",
	KindHTMLBlock:          "HtmlBlock",
	KindBlockquote:         "Blockquote",
	KindList:               "List",
	KindListItem:           "ListItem",
	KindThematicBreak:      "ThematicBreak",
	KindTable:              "Table",
	KindTableRow:           "TableRow",
	KindTableCell:          "TableCell",
	KindAdmonition:         "Admonition",
	KindText:               "Text",
	KindEmphasis:           "Emphasis",
	KindStrong:             "Strong",
	KindStrongEmphasis:     "StrongEmphasis",
	KindStrikethrough:      "Strikethrough",
	KindMark:               "Mark",
	KindSuperscript:        "Superscript",
	KindSubscript:          "Subscript",
	KindCodeSpan:           "CodeSpan",
	KindLink:               "Link",
	KindImage:              "Image",
	KindInlineHTML:         "InlineHtml",
	KindSoftBreak:          "SoftBreak",
	KindHardBreak:          "HardBreak",
	KindTaskCheckbox:       "TaskCheckbox",
	KindTaskCheckboxInline: "TaskCheckboxInline",
}

// Alignment is a table column alignment (spec §3).
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// AdmonitionStyle distinguishes GFM alert admonitions from Marco's
// custom-bracket quote admonitions (spec §4.4).
type AdmonitionStyle int

const (
	AdmonitionAlert AdmonitionStyle = iota
	AdmonitionQuote
)

func (s AdmonitionStyle) String() string {
	if s == AdmonitionQuote {
		return "quote"
	}
	return "alert"
}

// Node is the engine's single tagged-variant tree node. Only the fields
// relevant to Kind are meaningful; the rest are zero. Nodes are built once
// and treated as read-only by every stage downstream of astbuild/extensions
// (spec §3 Lifecycle).
type Node struct {
	Kind     Kind
	Span     span.Span
	Children []*Node

	// Heading
	Level int

	// CodeBlock
	Lang string
	Code string

	// HtmlBlock / InlineHtml
	HTML string

	// List
	Ordered bool
	Start   int
	Tight   bool

	// Table
	Alignments []Alignment

	// TableRow
	Header bool

	// TableCell (Alignment reuses Alignments[i] semantics; Header shared)
	CellAlignment Alignment

	// Admonition
	AdmonitionKind  string
	AdmonitionTitle string
	AdmonitionIcon  string
	AdmonitionStyle AdmonitionStyle

	// Text / CodeSpan
	Text string

	// Link / Image
	URL   string
	Title string
	Alt   string

	// TaskCheckbox / TaskCheckboxInline
	Checked bool
}

// New creates a bare node of the given kind.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Append adds a child and returns the parent for chaining.
func (n *Node) Append(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// Walk performs a pre-order traversal, calling visit(node, depth) for every
// node including n itself. Returning false from visit skips n's children.
func Walk(n *Node, visit func(n *Node, depth int) bool) {
	walk(n, 0, visit)
}

func walk(n *Node, depth int, visit func(n *Node, depth int) bool) {
	if n == nil {
		return
	}
	if !visit(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, visit)
	}
}

// TextContent concatenates the literal text of n's inline descendants,
// stripping markup -- used for image alt text and similar "plain text of
// this subtree" needs (spec §4.5 Image alt attribute).
func TextContent(n *Node) string {
	var out []byte
	Walk(n, func(cur *Node, _ int) bool {
		switch cur.Kind {
		case KindText, KindCodeSpan:
			out = append(out, cur.Text...)
		case KindSoftBreak:
			out = append(out, '\n')
		case KindHardBreak:
			out = append(out, '\n')
		}
		return true
	})
	return string(out)
}
