package extensions

import "github.com/marcoeng/marco/pkg/ast"

// applyTaskLists is a no-op pass: the inline tokenizer already promotes a
// list item's leading checkbox marker to TaskCheckbox, and inline markers
// elsewhere to TaskCheckboxInline (spec §4.4 point 2). The pass exists so
// the extension pipeline's documented stage order is explicit in code, not
// just in the spec.
func applyTaskLists(doc *ast.Document) {
	_ = doc
}
