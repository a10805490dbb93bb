package inlineparser

import (
	"strings"

	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/span"
)

// flanking computes the left-/right-flanking status of a run of length n
// starting at byte offset start in s (CommonMark §6.2 flanking rules).
func flanking(s string, start, n int) (leftFlanking, rightFlanking bool) {
	before := runeBefore(s, start)
	after := runeAfter(s, start+n)

	beforeWS := isUnicodeWhitespace(before)
	beforePunct := isUnicodePunct(before)
	afterWS := isUnicodeWhitespace(after)
	afterPunct := isUnicodePunct(after)

	leftFlanking = !afterWS && !(afterPunct && !beforeWS && !beforePunct)
	rightFlanking = !beforeWS && !(beforePunct && !afterWS && !afterPunct)
	return
}

// canOpenClose applies the '*'/'_'-specific rules on top of flanking
// status to decide whether a run can open and/or close emphasis.
func canOpenClose(char byte, s string, start, n int, leftFlanking, rightFlanking bool) (canOpen, canClose bool) {
	if char == '*' {
		return leftFlanking, rightFlanking
	}
	before := runeBefore(s, start)
	after := runeAfter(s, start+n)
	canOpen = leftFlanking && (!rightFlanking || isUnicodePunct(before))
	canClose = rightFlanking && (!leftFlanking || isUnicodePunct(after))
	return
}

// emphMatch records one resolved opener/closer pairing: consume `use`
// characters from each end's run and wrap everything strictly between
// openIdx and closeIdx (by position in the items slice) into a node of
// kind.
type emphMatch struct {
	openIdx, closeIdx int
	use               int
	kind              ast.Kind
}

// resolveEmphasis runs a single left-to-right, nearest-opener delimiter
// matching pass (CommonMark §6.2's algorithm, simplified: a matched
// delimiter is never revisited, so a run with leftover characters after a
// partial match renders that leftover as plain text rather than attempting
// a further match). Exactly-3-length runs resolve directly to
// StrongEmphasis per spec §4.2 point 3, rather than the reference
// algorithm's nested Emphasis-wrapping-Strong construction.
func resolveEmphasis(items []*item) []*item {
	var stack []int // indices into items, delimiters still available to open
	var matches []emphMatch

	for idx, it := range items {
		d := it.delim
		if d == nil || (d.char != '*' && d.char != '_') {
			continue
		}
		if d.canClose && d.count > 0 {
			matchedAt := -1
			matchedStackPos := -1
			for si := len(stack) - 1; si >= 0; si-- {
				oIdx := stack[si]
				od := items[oIdx].delim
				if od.char != d.char || !od.canOpen || od.count == 0 {
					continue
				}
				if (od.canOpen && od.canClose) || (d.canOpen && d.canClose) {
					if (od.origLen+d.origLen)%3 == 0 && od.origLen%3 != 0 && d.origLen%3 != 0 {
						continue
					}
				}
				matchedAt = oIdx
				matchedStackPos = si
				break
			}
			if matchedAt >= 0 {
				od := items[matchedAt].delim
				use := 1
				switch {
				case od.count >= 3 && d.count >= 3:
					use = 3
				case od.count >= 2 && d.count >= 2:
					use = 2
				}
				kind := ast.KindEmphasis
				switch use {
				case 2:
					kind = ast.KindStrong
				case 3:
					kind = ast.KindStrongEmphasis
				}
				matches = append(matches, emphMatch{openIdx: matchedAt, closeIdx: idx, use: use, kind: kind})
				od.count -= use
				d.count -= use
				// Discard this opener and everything pushed after it: the
				// interior is now committed to this span's nesting.
				stack = stack[:matchedStackPos]
				continue
			}
		}
		if d.canOpen && d.count > 0 {
			stack = append(stack, idx)
		}
	}

	return buildEmphasisTree(items, matches)
}

func buildEmphasisTree(items []*item, matches []emphMatch) []*item {
	openAt := make(map[int]emphMatch, len(matches))
	closeAt := make(map[int]emphMatch, len(matches))
	for _, m := range matches {
		openAt[m.openIdx] = m
		closeAt[m.closeIdx] = m
	}

	frames := [][]*ast.Node{{}}
	top := func() []*ast.Node { return frames[len(frames)-1] }
	push := func(n *ast.Node) { frames[len(frames)-1] = append(frames[len(frames)-1], n) }

	for idx, it := range items {
		if m, ok := openAt[idx]; ok {
			if left := it.delim.origLen - m.use; left > 0 {
				push(&ast.Node{Kind: ast.KindText, Text: strings.Repeat(string(it.delim.char), left), Span: it.node.Span})
			}
			frames = append(frames, []*ast.Node{})
			continue
		}
		if m, ok := closeAt[idx]; ok {
			content := top()
			frames = frames[:len(frames)-1]
			wrapped := &ast.Node{Kind: m.kind, Children: content, Span: span.Union(items[m.openIdx].node.Span, it.node.Span)}
			push(wrapped)
			if left := it.delim.origLen - m.use; left > 0 {
				push(&ast.Node{Kind: ast.KindText, Text: strings.Repeat(string(it.delim.char), left), Span: it.node.Span})
			}
			continue
		}
		push(it.node)
	}

	// Frames left open (unbalanced matches should not happen given the
	// algorithm above, but degrade gracefully by flattening survivors).
	for len(frames) > 1 {
		content := frames[len(frames)-1]
		frames = frames[:len(frames)-1]
		frames[len(frames)-1] = append(frames[len(frames)-1], content...)
	}

	out := make([]*item, 0, len(frames[0]))
	for _, n := range frames[0] {
		out = append(out, &item{node: n})
	}
	return out
}
