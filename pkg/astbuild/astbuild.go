// Package astbuild assembles pkg/blockparser's Block tree and
// pkg/inlineparser's inline tokenizer into the engine's final ast.Document
// (spec §4.3): one ast.Node per block token, inline content resolved within
// each leaf block's source region, and the reference-definition table
// published onto the document.
package astbuild

import (
	"strings"

	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/blockparser"
	"github.com/marcoeng/marco/pkg/inlineparser"
	"github.com/marcoeng/marco/pkg/span"
)

// Build runs the block tokenizer and inline tokenizer over raw source and
// returns the assembled document.
func Build(raw []byte) *ast.Document {
	result := blockparser.Tokenize(raw)
	doc := &ast.Document{
		Root:              convertBlock(result.Root, result.Refs, false),
		Refs:              result.Refs,
		Repairs:           result.Repairs,
		FirstRepairOffset: result.FirstRepairOffset,
		Source:            result.Source,
	}
	return doc
}

// convertBlock converts one Block and its descendants into an ast.Node,
// resolving inline content for leaf blocks along the way. firstLineOfItem is
// true only for the first child block of a list item (list-item tightness is
// decided by pkg/blockparser already via Block.Tight, so this flag only
// threads the task-checkbox InListItem hint down to the first paragraph of a
// list item).
func convertBlock(b *blockparser.Block, refs *ast.RefTable, firstLineOfItem bool) *ast.Node {
	n := &ast.Node{
		Kind:          b.Kind,
		Span:          b.Span,
		Level:         b.Level,
		Lang:          b.Lang,
		Code:          b.Code,
		HTML:          b.HTML,
		Ordered:       b.Ordered,
		Start:         b.Start,
		Tight:         b.Tight,
		Alignments:    b.Alignments,
		Header:        b.Header,
		CellAlignment: b.CellAlignment,
	}

	switch b.Kind {
	case ast.KindCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
		// Leaf kinds with no inline content and no children.
		return n

	case ast.KindTable:
		for _, row := range b.Children {
			n.Children = append(n.Children, convertTableRow(row, refs, n.Alignments))
		}
		return n

	case ast.KindListItem:
		for i, child := range b.Children {
			n.Children = append(n.Children, convertBlock(child, refs, i == 0))
		}
		return n

	case ast.KindParagraph, ast.KindHeading, ast.KindTableCell:
		opts := inlineparser.Options{InListItem: firstLineOfItem}
		n.Children = inlineparser.Parse(joinLines(b.Lines), lineBase(b), refs, opts)
		return n

	default:
		for _, child := range b.Children {
			n.Children = append(n.Children, convertBlock(child, refs, false))
		}
		return n
	}
}

func convertTableRow(row *blockparser.Block, refs *ast.RefTable, alignments []ast.Alignment) *ast.Node {
	n := &ast.Node{Kind: row.Kind, Span: row.Span, Header: row.Header}
	cells := make([]*ast.Node, 0, len(alignments))
	for i, cell := range row.Children {
		if i >= len(alignments) {
			break
		}
		cells = append(cells, convertBlock(cell, refs, false))
	}
	// Normalise to alignments.len cells (spec §4.3): missing trailing cells
	// become empty, extra cells are dropped by the loop bound above.
	for len(cells) < len(alignments) {
		cells = append(cells, &ast.Node{Kind: ast.KindTableCell, Header: row.Header, CellAlignment: alignments[len(cells)]})
	}
	n.Children = cells
	return n
}

// joinLines reassembles a leaf block's physical lines back into the single
// text buffer the inline tokenizer expects, preserving the line breaks the
// paragraph continuation logic already decided belong in the content.
func joinLines(lines []blockparser.Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// lineBase returns the span the inline tokenizer should treat as "offset
// zero" for a leaf block's joined text: the first line's start position.
func lineBase(b *blockparser.Block) span.Span {
	if len(b.Lines) == 0 {
		return b.Span
	}
	return b.Lines[0].Span
}
