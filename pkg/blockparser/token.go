// Package blockparser implements the engine's block-level grammar (spec
// §4.1): splitting source text into a tree of block tokens with spans,
// resolving container nesting (blockquotes, lists) and collecting
// reference definitions. It never fails; malformed input degrades to
// paragraph text, matching the teacher's plugin parsers (e.g.
// admonitions.go's Open/Continue/Close state machine) which likewise never
// return an error from a block-level Open/Continue step.
package blockparser

import (
	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/span"
)

// Line is one physical line of raw leaf-block content together with its
// source span, used so the inline tokenizer can report accurate offsets
// without re-scanning the source buffer.
type Line struct {
	Text string
	Span span.Span
}

// Block is the block tokenizer's output: one node per recognised block,
// forming a tree via Children. Leaf blocks (Paragraph, Heading, TableCell)
// carry their raw inline source in Lines; astbuild hands that to the inline
// tokenizer to produce the final ast.Node children.
type Block struct {
	Kind     ast.Kind
	Span     span.Span
	Children []*Block
	Lines    []Line

	Lang string // CodeBlock
	Code string // CodeBlock (verbatim source bytes)
	HTML string // HtmlBlock

	Level int // Heading

	Ordered bool // List
	Start   int  // List (ordered start number)
	Tight   bool // List

	Alignments []ast.Alignment // Table
	Header     bool            // TableRow / TableCell

	CellAlignment ast.Alignment // TableCell
}

func newBlock(kind ast.Kind) *Block {
	return &Block{Kind: kind}
}

// Result is the block tokenizer's full output (spec §4.1 contract).
type Result struct {
	Root              *Block // KindDocument
	Refs              *ast.RefTable
	Source            []byte
	Repairs           int
	FirstRepairOffset int
}
