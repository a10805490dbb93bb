package blockparser

import (
	"strings"

	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/span"
)

// Tokenize splits source into a tree of Block tokens (spec §4.1). It never
// fails: anything that cannot be recognised as a leaf or container falls
// through to a Paragraph.
func Tokenize(raw []byte) *Result {
	source, report := span.Sanitize(raw)
	lines := splitLines(source)
	refs := ast.NewRefTable()
	root := newBlock(ast.KindDocument)
	root.Span = span.Span{StartOffset: 0, EndOffset: len(source), StartLine: 1, StartColumn: 1}
	if len(lines) > 0 {
		last := lines[len(lines)-1]
		root.Span.EndLine = last.LineNo
		root.Span.EndColumn = len(last.Text) + 1
	}
	root.Children = parseBlocks(lines, refs)
	return &Result{Root: root, Refs: refs, Source: source, Repairs: report.Count, FirstRepairOffset: report.FirstOffset}
}

// parseBlocks parses a flat run of physical lines (already dedented for
// whatever container level called it) into a sequence of sibling blocks.
// Container constructs (blockquote, list item) are handled by peeling off
// their marker prefix from every line they own and recursing on the
// dedented remainder -- a strip-prefix-and-reparse strategy that trades
// perfect lazy-continuation fidelity in deeply nested containers for a
// tokenizer that stays a flat recursive-descent pass over line groups.
func parseBlocks(lines []physLine, refs *ast.RefTable) []*Block {
	var out []*Block
	i := 0
	for i < len(lines) {
		line := lines[i]

		if isBlank(line.Text) {
			i++
			continue
		}

		// Thematic break takes priority over setext underline and list
		// marker ambiguity ("---").
		if isThematicBreak(line.Text) {
			b := newBlock(ast.KindThematicBreak)
			b.Span = lineSpan(line)
			out = append(out, b)
			i++
			continue
		}

		if level, content, ok := atxHeading(line.Text); ok {
			b := newBlock(ast.KindHeading)
			b.Level = level
			b.Span = lineSpan(line)
			if content != "" {
				b.Lines = []Line{{Text: content, Span: headingContentSpan(line, content)}}
			}
			out = append(out, b)
			i++
			continue
		}

		if ch, length, info, indent, ok := fenceOpen(line.Text); ok {
			b, next := consumeFence(lines, i, ch, length, info, indent)
			out = append(out, b)
			i = next
			continue
		}

		if rest, ok := blockquoteMarker(line.Text); ok {
			_ = rest
			b, next := consumeBlockquote(lines, i, refs)
			out = append(out, b)
			i = next
			continue
		}

		if m, _, ok := parseListMarker(line.Text); ok && !isThematicBreak(line.Text) {
			b, next := consumeList(lines, i, m.Ordered, refs)
			out = append(out, b)
			i = next
			continue
		}

		if isRefDefStart(line.Text) {
			if def, ok := tryParseRefDef(lines, i); ok {
				refs.Define(def.Label, ast.RefDef{Destination: def.Destination, Title: def.Title, HasTitle: def.HasTitle})
				i += def.LinesUsed
				continue
			}
		}

		if html, next, ok := consumeHTMLBlock(lines, i); ok {
			out = append(out, html)
			i = next
			continue
		}

		if looksLikeTableHeader(lines, i) {
			b, next := consumeTable(lines, i)
			out = append(out, b)
			i = next
			continue
		}

		if indentWidth(line.Text) >= 4 && len(out) == 0 || (indentWidth(line.Text) >= 4 && !canLazilyContinue(out)) {
			b, next := consumeIndentedCode(lines, i)
			out = append(out, b)
			i = next
			continue
		}

		// Paragraph (with setext-heading retroactive conversion and lazy
		// continuation absorption of subsequent non-interrupting lines).
		b, next := consumeParagraph(lines, i)
		out = append(out, b)
		i = next
	}
	return out
}

func headingContentSpan(line physLine, content string) span.Span {
	idx := strings.Index(line.Text, content)
	if idx < 0 {
		return lineSpan(line)
	}
	return span.Span{
		StartOffset: line.Offset + idx, EndOffset: line.Offset + idx + len(content),
		StartLine: line.LineNo, StartColumn: idx + 1,
		EndLine: line.LineNo, EndColumn: idx + len(content) + 1,
	}
}

func indentWidth(s string) int {
	w := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ':
			w++
		case '\t':
			w += span.TabStop - (w % span.TabStop)
		default:
			return w
		}
		if w >= 4 {
			return w
		}
	}
	return w
}

// canLazilyContinue reports whether the previous sibling block can accept
// an indented-looking line as lazy paragraph continuation instead of it
// starting an indented code block: true only when the last block is a
// Paragraph.
func canLazilyContinue(out []*Block) bool {
	if len(out) == 0 {
		return false
	}
	return out[len(out)-1].Kind == ast.KindParagraph
}

// consumeFence consumes a fenced code block starting at lines[start], which
// must already be a recognised opening fence.
func consumeFence(lines []physLine, start int, ch byte, length int, info string, indent int) (*Block, int) {
	b := newBlock(ast.KindCodeBlock)
	b.Lang = fenceLanguage(info)
	i := start + 1
	var code []string
	closed := false
	for i < len(lines) {
		if fenceClose(lines[i].Text, ch, length) {
			closed = true
			i++
			break
		}
		code = append(code, stripFenceIndent(lines[i].Text, indent))
		i++
	}
	_ = closed
	b.Code = strings.Join(code, "\n")
	if len(code) > 0 {
		b.Code += "\n"
	}
	b.Span = rangeSpan(lines, start, i)
	return b, i
}

func stripFenceIndent(line string, indent int) string {
	i := 0
	for i < len(line) && i < indent && line[i] == ' ' {
		i++
	}
	return line[i:]
}

func fenceLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// consumeIndentedCode consumes a run of 4+-space indented lines (and blank
// lines interleaved, trimmed from the edges) as an indented code block.
func consumeIndentedCode(lines []physLine, start int) (*Block, int) {
	b := newBlock(ast.KindCodeBlock)
	i := start
	var code []string
	for i < len(lines) {
		if isBlank(lines[i].Text) {
			// Lookahead: blank lines only continue the block if another
			// indented line follows.
			j := i
			for j < len(lines) && isBlank(lines[j].Text) {
				j++
			}
			if j < len(lines) && indentWidth(lines[j].Text) >= 4 {
				for k := i; k < j; k++ {
					code = append(code, "")
				}
				i = j
				continue
			}
			break
		}
		if indentWidth(lines[i].Text) < 4 {
			break
		}
		code = append(code, stripFenceIndent(lines[i].Text, 4))
		i++
	}
	b.Code = strings.Join(code, "\n")
	if len(code) > 0 {
		b.Code += "\n"
	}
	b.Span = rangeSpan(lines, start, i)
	return b, i
}

// consumeBlockquote peels a leading "> " marker (when present) from every
// owned line, recursing on the dedented text. A line with no marker is
// still absorbed as lazy continuation as long as it would extend the last
// contained paragraph and isn't blank.
func consumeBlockquote(lines []physLine, start int, refs *ast.RefTable) (*Block, int) {
	b := newBlock(ast.KindBlockquote)
	i := start
	var inner []physLine
	for i < len(lines) {
		line := lines[i]
		if rest, ok := blockquoteMarker(line.Text); ok {
			inner = append(inner, rewrap(line, rest))
			i++
			continue
		}
		if isBlank(line.Text) {
			break
		}
		// Lazy continuation: a plain text line (not itself starting a new
		// block) continues the quote's last paragraph.
		if !startsNewBlock(line.Text) {
			inner = append(inner, line)
			i++
			continue
		}
		break
	}
	b.Children = parseBlocks(inner, refs)
	b.Span = rangeSpan(lines, start, i)
	return b, i
}

// startsNewBlock reports whether line opens one of the block constructs
// that interrupt an open paragraph (thematic break, ATX heading, code fence,
// blockquote, or a list marker allowed to interrupt), which under
// CommonMark's lazy-continuation rule means it cannot be absorbed into that
// paragraph. HTML blocks, tables and indented code are not checked here.
func startsNewBlock(line string) bool {
	if isThematicBreak(line) {
		return true
	}
	if _, _, ok := atxHeading(line); ok {
		return true
	}
	if _, _, _, _, ok := fenceOpen(line); ok {
		return true
	}
	if _, ok := blockquoteMarker(line); ok {
		return true
	}
	if m, contentOffset, ok := parseListMarker(line); ok {
		return listMarkerInterruptsParagraph(line, m, contentOffset)
	}
	return false
}

// listMarkerInterruptsParagraph applies CommonMark's extra restrictions on
// a list marker opening a new block while a paragraph is still open (spec
// §4.1): an ordered list may only interrupt when its start number is 1
// (unordered lists always may), and neither kind may interrupt when its
// first item is empty.
func listMarkerInterruptsParagraph(line string, m listMarker, contentOffset int) bool {
	if m.Ordered && m.Start != 1 {
		return false
	}
	if strings.TrimSpace(line[contentOffset:]) == "" {
		return false
	}
	return true
}

// rewrap builds a physLine carrying rest's text but offset/line metadata
// derived from the original line, so spans stay anchored to source bytes
// even though rest has had a prefix stripped.
func rewrap(line physLine, rest string) physLine {
	offset := line.Offset + (len(line.Text) - len(rest))
	if offset < line.Offset {
		offset = line.Offset
	}
	return physLine{Text: rest, Offset: offset, LineNo: line.LineNo}
}

// consumeList consumes a maximal run of list items of the same kind
// (bullet char, or ordered delimiter) starting at lines[start].
func consumeList(lines []physLine, start int, ordered bool, refs *ast.RefTable) (*Block, int) {
	b := newBlock(ast.KindList)
	b.Ordered = ordered
	tight := true
	i := start
	firstMarker, _, _ := parseListMarker(lines[start].Text)
	b.Start = firstMarker.Start

	sawBlankBetweenItems := false
	for i < len(lines) {
		m, contentOffset, ok := parseListMarker(lines[i].Text)
		if !ok || m.Ordered != ordered {
			break
		}
		if ordered && m.Char != firstMarker.Char {
			break
		}
		if !ordered && m.Char != firstMarker.Char {
			break
		}
		item, next, trailingBlank := consumeListItem(lines, i, m, contentOffset, refs)
		if trailingBlank {
			sawBlankBetweenItems = true
		}
		b.Children = append(b.Children, item)
		i = next
		blankStart := i
		for i < len(lines) && isBlank(lines[i].Text) {
			i++
		}
		if i > blankStart && i < len(lines) {
			if nm, _, ok := parseListMarker(lines[i].Text); ok && nm.Ordered == ordered && nm.Char == firstMarker.Char {
				sawBlankBetweenItems = true
			}
		}
	}
	if sawBlankBetweenItems {
		tight = false
	}
	b.Tight = tight
	b.Span = rangeSpan(lines, start, i)
	return b, i
}

// consumeListItem consumes one list item: the marker line plus every
// following line indented at least to the marker's content column, or
// blank lines immediately followed by such a line.
func consumeListItem(lines []physLine, start int, m listMarker, contentOffset int, refs *ast.RefTable) (*Block, int, bool) {
	b := newBlock(ast.KindListItem)
	i := start
	var inner []physLine

	first := lines[start]
	firstRest := ""
	if contentOffset <= len(first.Text) {
		firstRest = first.Text[contentOffset:]
	}
	inner = append(inner, rewrap(first, firstRest))
	i++

	requiredIndent := m.AfterWidth
	trailingBlank := false
	for i < len(lines) {
		line := lines[i]
		if isBlank(line.Text) {
			j := i
			for j < len(lines) && isBlank(lines[j].Text) {
				j++
			}
			if j < len(lines) && indentWidth(lines[j].Text) >= requiredIndent {
				for k := i; k < j; k++ {
					inner = append(inner, physLine{Text: "", Offset: lines[k].Offset, LineNo: lines[k].LineNo})
				}
				i = j
				trailingBlank = true
				continue
			}
			break
		}
		if indentWidth(line.Text) >= requiredIndent {
			inner = append(inner, rewrap(line, dedentBy(line.Text, requiredIndent)))
			i++
			continue
		}
		// Lazy continuation into the item's last paragraph.
		if !startsNewBlock(line.Text) {
			inner = append(inner, line)
			i++
			continue
		}
		break
	}

	b.Children = parseBlocks(inner, refs)
	b.Span = rangeSpan(lines, start, i)
	return b, i, trailingBlank
}

func dedentBy(s string, n int) string {
	w := 0
	i := 0
	for i < len(s) && w < n {
		switch s[i] {
		case ' ':
			w++
		case '\t':
			w += span.TabStop - (w % span.TabStop)
		default:
			return s[i:]
		}
		i++
	}
	return s[i:]
}

// looksLikeTableHeader reports whether lines[i] is a header row immediately
// followed by a valid delimiter row.
func looksLikeTableHeader(lines []physLine, i int) bool {
	if !strings.Contains(lines[i].Text, "|") {
		return false
	}
	if isThematicBreak(lines[i].Text) {
		return false
	}
	if i+1 < len(lines) {
		if _, ok := tableDelimiterRow(lines[i+1].Text); ok {
			return true
		}
	}
	// Marco extension: a headerless pipe table where the very first row is
	// itself the delimiter row.
	if _, ok := tableDelimiterRow(lines[i].Text); ok {
		return true
	}
	return false
}

// consumeTable consumes a GFM/Marco pipe table: optional header row,
// delimiter row, and body rows for as long as lines contain a pipe.
func consumeTable(lines []physLine, start int) (*Block, int) {
	b := newBlock(ast.KindTable)
	i := start
	headerless := false
	if aligns, ok := tableDelimiterRow(lines[start].Text); ok {
		b.Alignments = aligns
		headerless = true
		i++
	} else {
		headerRow := newBlock(ast.KindTableRow)
		headerRow.Header = true
		headerRow.Span = lineSpan(lines[start])
		for _, cell := range splitTableRow(lines[start].Text) {
			headerRow.Children = append(headerRow.Children, tableCell(cell, true, ast.AlignNone, headerRow.Span))
		}
		aligns, _ := tableDelimiterRow(lines[start+1].Text)
		b.Alignments = aligns
		applyAlignments(headerRow, aligns)
		b.Children = append(b.Children, headerRow)
		i = start + 2
	}
	_ = headerless

	for i < len(lines) && strings.Contains(lines[i].Text, "|") && !isBlank(lines[i].Text) {
		row := newBlock(ast.KindTableRow)
		row.Span = lineSpan(lines[i])
		for _, cell := range splitTableRow(lines[i].Text) {
			row.Children = append(row.Children, tableCell(cell, false, ast.AlignNone, row.Span))
		}
		applyAlignments(row, b.Alignments)
		b.Children = append(b.Children, row)
		i++
	}
	b.Span = rangeSpan(lines, start, i)
	return b, i
}

func applyAlignments(row *Block, aligns []ast.Alignment) {
	for idx, cell := range row.Children {
		if idx < len(aligns) {
			cell.CellAlignment = aligns[idx]
		}
	}
}

// tableCell builds one cell; rowSpan approximates the cell's source span as
// its whole containing row (per-cell column offsets aren't tracked through
// splitTableRow's escape handling, a known minor imprecision for highlight
// spans within table cells).
func tableCell(text string, header bool, align ast.Alignment, rowSpan span.Span) *Block {
	c := newBlock(ast.KindTableCell)
	c.Header = header
	c.CellAlignment = align
	c.Span = rowSpan
	text = strings.TrimSpace(text)
	if text != "" {
		c.Lines = []Line{{Text: text, Span: rowSpan}}
	}
	return c
}

// consumeParagraph consumes a maximal run of non-interrupting lines as a
// paragraph, applying setext-heading retroactive conversion when the run
// is terminated by a setext underline. Lazy continuation stops at a fenced
// code block opener even though such a line would not "startsNewBlock" in
// every reference implementation -- suppressing lazy continuation there
// matches spec §4.1's explicit carve-out.
func consumeParagraph(lines []physLine, start int) (*Block, int) {
	i := start
	var raw []physLine
	for i < len(lines) {
		line := lines[i]
		if isBlank(line.Text) {
			break
		}
		if i > start {
			if level, ok := setextUnderline(line.Text); ok && indentWidth(line.Text) < 4 {
				h := newBlock(ast.KindHeading)
				h.Level = level
				h.Lines = []Line{{Text: joinParagraphText(raw), Span: rangeSpan(lines, start, i)}}
				h.Span = rangeSpan(lines, start, i+1)
				return h, i + 1
			}
			if startsNewBlock(line.Text) {
				break
			}
		}
		raw = append(raw, line)
		i++
	}
	b := newBlock(ast.KindParagraph)
	b.Lines = []Line{{Text: joinParagraphText(raw), Span: rangeSpan(lines, start, i)}}
	b.Span = rangeSpan(lines, start, i)
	return b, i
}

// joinParagraphText joins raw line text with "\n", deliberately keeping
// trailing spaces intact (rather than trimming them) so the inline
// tokenizer can still see the ">=2 trailing spaces" hard-break marker and
// so byte offsets into the joined string stay aligned with the source.
func joinParagraphText(lines []physLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}
