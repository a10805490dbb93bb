// Package span provides source-position bookkeeping shared by every stage of
// the engine: byte offsets, 1-based line/column accounting, and tab
// expansion for indentation. Every Node in pkg/ast carries a Span built from
// these helpers.
package span

// Span is a source-position record attached to an AST node. Offsets are
// byte indices into the original source text; Line and Column are 1-based,
// with Column counted in bytes within the line (not runes, not display
// width).
type Span struct {
	StartOffset int
	EndOffset   int
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Zero reports whether s is the unset span (all fields zero).
func (s Span) Zero() bool {
	return s == Span{}
}

// Contains reports whether other lies within s (parent span covers child).
func (s Span) Contains(other Span) bool {
	return s.StartOffset <= other.StartOffset && other.EndOffset <= s.EndOffset
}

// Valid reports whether s satisfies the monotonic invariant
// StartOffset <= EndOffset.
func (s Span) Valid() bool {
	return s.StartOffset <= s.EndOffset
}

// Union returns the smallest span covering both a and b. If either is the
// zero span, the other is returned unchanged.
func Union(a, b Span) Span {
	if a.Zero() {
		return b
	}
	if b.Zero() {
		return a
	}
	out := a
	if b.StartOffset < a.StartOffset {
		out.StartOffset = b.StartOffset
		out.StartLine = b.StartLine
		out.StartColumn = b.StartColumn
	}
	if b.EndOffset > a.EndOffset {
		out.EndOffset = b.EndOffset
		out.EndLine = b.EndLine
		out.EndColumn = b.EndColumn
	}
	return out
}

// TabStop is the tab width used for effective-indentation accounting
// (spec §4.1: "tabs expand to the next multiple of 4").
const TabStop = 4

// ExpandedWidth returns the effective column width of line[:n] with tabs
// expanded to the next TabStop boundary, starting at the given column
// offset (0-based). Byte offsets into line are preserved by the caller;
// this only computes the effective display width used to decide block
// indentation.
func ExpandedWidth(line []byte, n int, startCol int) int {
	col := startCol
	for i := 0; i < n && i < len(line); i++ {
		if line[i] == '\t' {
			col += TabStop - (col % TabStop)
		} else {
			col++
		}
	}
	return col
}

// IndentWidth returns the effective indentation width of line (tabs
// expanded) and the byte offset of the first non-space/tab character.
func IndentWidth(line []byte) (width int, firstNonSpace int) {
	col := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += TabStop - (col % TabStop)
		default:
			return col, i
		}
		i++
	}
	return col, i
}

// ConsumeIndent advances past up to width effective columns of leading
// space/tab in line, returning the byte offset reached and the number of
// effective columns actually consumed (which may be less than width if the
// line runs out of indentation). A tab that would carry past width is not
// consumed: the offset stops before it and consumed is reported as width;
// the tab's leftover columns are not returned.
func ConsumeIndent(line []byte, width int) (offset int, consumed int) {
	col := 0
	i := 0
	for i < len(line) && col < width {
		switch line[i] {
		case ' ':
			col++
			i++
		case '\t':
			next := col + TabStop - (col%TabStop)
			if next > width {
				// Partial tab consumption: stop here, the remaining
				// (next-width) columns are padding the caller must
				// synthesize as spaces.
				return i, width
			}
			col = next
			i++
		default:
			return i, col
		}
	}
	return i, col
}

// IsBlank reports whether line contains only space, tab, CR or LF bytes (or
// is empty).
func IsBlank(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			return false
		}
	}
	return true
}
