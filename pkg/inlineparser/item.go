package inlineparser

import "github.com/marcoeng/marco/pkg/ast"

// item is the inline scanner's working unit: a resolved ast.Node, plus
// optional delimiter metadata when the node is a '*'/'_' run that is still
// a candidate for emphasis matching.
type item struct {
	node  *ast.Node
	delim *delimRun
}

// delimRun is a candidate emphasis delimiter run discovered during the scan
// pass (a maximal run of '*' or '_').
type delimRun struct {
	char     byte
	count    int // unmatched run length remaining
	origLen  int // original run length
	canOpen  bool
	canClose bool
}
