package extensions

import "github.com/marcoeng/marco/pkg/ast"

// applyEmoji is a no-op placeholder pass: shortcode substitution already
// happens in the inline tokenizer against internal/emoji's fixed table
// (spec §4.4 point 4: "a no-op placeholder for future server-side
// expansion").
func applyEmoji(doc *ast.Document) {
	_ = doc
}
