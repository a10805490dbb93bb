// Package extensions implements the post-parse AST rewrite passes (spec
// §4.4): GFM admonitions, task lists (no-op), mentions, and emoji (no-op).
// Each pass is a pure top-down tree walk over an already-built
// ast.Document, applied in the spec's fixed order. Running Apply twice
// produces the same tree (idempotence: admonitions only fires on
// Blockquote nodes, which no longer exist once converted; mentions only
// walks Text children and never descends into a Link subtree, so a handle
// already rewritten to a Link is never re-split).
package extensions

import "github.com/marcoeng/marco/pkg/ast"

// Apply runs every extension pass over doc in spec order, mutating it in
// place and returning it for chaining.
func Apply(doc *ast.Document) *ast.Document {
	applyAdmonitions(doc)
	applyTaskLists(doc)
	applyMentions(doc)
	applyEmoji(doc)
	return doc
}
