package ast

import (
	"strings"

	"golang.org/x/text/cases"
)

// RefDef is a resolved reference-definition entry (spec §3: "a mapping
// from normalised reference label... to (destination, optional title)").
type RefDef struct {
	Destination string
	Title       string
	HasTitle    bool
}

// RefTable maps a normalised label to its definition. Lookups must go
// through NormalizeLabel; the table itself stores only normalized keys.
type RefTable struct {
	defs map[string]RefDef
}

// NewRefTable creates an empty reference table.
func NewRefTable() *RefTable {
	return &RefTable{defs: make(map[string]RefDef)}
}

// Define inserts label -> def if label is not already present ("Duplicate
// labels: first wins", spec §4.1). Returns false if label was already
// defined.
func (t *RefTable) Define(label string, def RefDef) bool {
	key := NormalizeLabel(label)
	if _, exists := t.defs[key]; exists {
		return false
	}
	t.defs[key] = def
	return true
}

// Lookup resolves a (possibly unnormalized) label against the table.
func (t *RefTable) Lookup(label string) (RefDef, bool) {
	def, ok := t.defs[NormalizeLabel(label)]
	return def, ok
}

// Len returns the number of defined references.
func (t *RefTable) Len() int { return len(t.defs) }

var labelCaser = cases.Fold()

// NormalizeLabel implements spec §3's label normalisation: trim, case-fold,
// collapse internal whitespace. Case folding uses golang.org/x/text/cases
// (Unicode full case folding) rather than a hand-rolled ASCII-only
// strings.ToLower, so labels differing only by non-ASCII case (e.g. Turkish
// dotless-i, German ß) still collide the way CommonMark's reference
// implementations intend.
func NormalizeLabel(label string) string {
	trimmed := strings.TrimSpace(label)
	folded := labelCaser.String(trimmed)
	fields := strings.Fields(folded)
	return strings.Join(fields, " ")
}

// Document is the top-level parse result: an ordered sequence of block
// nodes plus the reference-definition table collected while parsing (spec
// §3: "Reference-definition entries never appear as AST nodes").
type Document struct {
	Root *Node // KindDocument, Children are top-level block nodes
	Refs *RefTable

	// Repairs records any UTF-8 sanitisation performed on the source before
	// parsing (spec §7 Encoding fault).
	Repairs int
	// FirstRepairOffset is the byte offset of the first repaired sequence,
	// meaningful only when Repairs > 0.
	FirstRepairOffset int

	// Source is retained so renderers/highlighters needing the original
	// bytes (e.g. for span-based extraction) don't need it threaded
	// through every call (spec §9: "the document owns the source text").
	Source []byte
}

// NewDocument creates an empty document with an initialized ref table.
func NewDocument(source []byte) *Document {
	root := New(KindDocument)
	return &Document{Root: root, Refs: NewRefTable(), Source: source}
}
