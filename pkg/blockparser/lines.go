package blockparser

import "github.com/marcoeng/marco/pkg/span"

// physLine is one physical source line: its text (without line terminator)
// and the byte offset/line number where it starts.
type physLine struct {
	Text   string
	Offset int
	LineNo int
}

// splitLines splits source into physical lines, tracking byte offsets and
// 1-based line numbers. \r\n and \n are both accepted as terminators; \r is
// stripped from line text but not counted as a separate line.
func splitLines(source []byte) []physLine {
	var lines []physLine
	lineNo := 1
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			end := i
			if end > start && source[end-1] == '\r' {
				end--
			}
			lines = append(lines, physLine{Text: string(source[start:end]), Offset: start, LineNo: lineNo})
			start = i + 1
			lineNo++
		}
	}
	if start < len(source) {
		lines = append(lines, physLine{Text: string(source[start:]), Offset: start, LineNo: lineNo})
	}
	return lines
}

// lineSpan returns the span covering a line's text (end exclusive of the
// line terminator).
func lineSpan(l physLine) span.Span {
	end := l.Offset + len(l.Text)
	return span.Span{
		StartOffset: l.Offset, EndOffset: end,
		StartLine: l.LineNo, StartColumn: 1,
		EndLine: l.LineNo, EndColumn: len(l.Text) + 1,
	}
}

// rangeSpan builds a span covering lines[a:b] (b exclusive).
func rangeSpan(lines []physLine, a, b int) span.Span {
	if a >= b || a < 0 || b > len(lines) {
		return span.Span{}
	}
	first := lineSpan(lines[a])
	last := lineSpan(lines[b-1])
	return span.Union(first, last)
}

// isBlank wraps span.IsBlank for the string-typed line text used throughout
// this package.
func isBlank(s string) bool {
	return span.IsBlank([]byte(s))
}
