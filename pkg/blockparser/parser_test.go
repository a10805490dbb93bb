package blockparser

import (
	"testing"

	"github.com/marcoeng/marco/pkg/ast"
)

func kinds(blocks []*Block) []ast.Kind {
	out := make([]ast.Kind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func TestTokenizeParagraphAndHeading(t *testing.T) {
	res := Tokenize([]byte("# Title\n\nhello world\n"))
	got := kinds(res.Root.Children)
	want := []ast.Kind{ast.KindHeading, ast.KindParagraph}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("block %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if res.Root.Children[0].Level != 1 {
		t.Fatalf("heading level = %d, want 1", res.Root.Children[0].Level)
	}
}

func TestTokenizeSetextHeading(t *testing.T) {
	res := Tokenize([]byte("Title\n=====\n"))
	if len(res.Root.Children) != 1 {
		t.Fatalf("got %d blocks, want 1", len(res.Root.Children))
	}
	h := res.Root.Children[0]
	if h.Kind != ast.KindHeading || h.Level != 1 {
		t.Fatalf("got kind=%s level=%d, want Heading level 1", h.Kind, h.Level)
	}
}

func TestTokenizeThematicBreak(t *testing.T) {
	res := Tokenize([]byte("para\n\n***\n\nmore\n"))
	got := kinds(res.Root.Children)
	want := []ast.Kind{ast.KindParagraph, ast.KindThematicBreak, ast.KindParagraph}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeFencedCodeBlock(t *testing.T) {
	res := Tokenize([]byte("```go\nfmt.Println(1)\n```\n"))
	if len(res.Root.Children) != 1 {
		t.Fatalf("got %d blocks, want 1", len(res.Root.Children))
	}
	cb := res.Root.Children[0]
	if cb.Kind != ast.KindCodeBlock || cb.Lang != "go" {
		t.Fatalf("got kind=%s lang=%q, want CodeBlock lang=go", cb.Kind, cb.Lang)
	}
	if cb.Code != "fmt.Println(1)\n" {
		t.Fatalf("code = %q", cb.Code)
	}
}

func TestTokenizeIndentedCodeBlock(t *testing.T) {
	res := Tokenize([]byte("    a := 1\n    b := 2\n"))
	if len(res.Root.Children) != 1 || res.Root.Children[0].Kind != ast.KindCodeBlock {
		t.Fatalf("got %v, want single CodeBlock", kinds(res.Root.Children))
	}
}

func TestTokenizeBlockquote(t *testing.T) {
	res := Tokenize([]byte("> line one\n> line two\n"))
	if len(res.Root.Children) != 1 {
		t.Fatalf("got %d blocks, want 1", len(res.Root.Children))
	}
	bq := res.Root.Children[0]
	if bq.Kind != ast.KindBlockquote {
		t.Fatalf("kind = %s, want Blockquote", bq.Kind)
	}
	if len(bq.Children) != 1 || bq.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("blockquote children = %v, want single Paragraph", kinds(bq.Children))
	}
}

func TestTokenizeBulletList(t *testing.T) {
	res := Tokenize([]byte("- one\n- two\n- three\n"))
	if len(res.Root.Children) != 1 || res.Root.Children[0].Kind != ast.KindList {
		t.Fatalf("got %v, want single List", kinds(res.Root.Children))
	}
	list := res.Root.Children[0]
	if list.Ordered {
		t.Fatalf("expected unordered list")
	}
	if len(list.Children) != 3 {
		t.Fatalf("got %d items, want 3", len(list.Children))
	}
}

func TestTokenizeOrderedListStart(t *testing.T) {
	res := Tokenize([]byte("3. one\n4. two\n"))
	list := res.Root.Children[0]
	if !list.Ordered || list.Start != 3 {
		t.Fatalf("ordered=%v start=%d, want ordered start=3", list.Ordered, list.Start)
	}
}

func TestTokenizeOrderedListStartOneInterruptsParagraph(t *testing.T) {
	res := Tokenize([]byte("Para text\n1. item\n"))
	if len(res.Root.Children) != 2 {
		t.Fatalf("got %v, want Paragraph then List", kinds(res.Root.Children))
	}
	if res.Root.Children[0].Kind != ast.KindParagraph || res.Root.Children[1].Kind != ast.KindList {
		t.Fatalf("got %v, want Paragraph then List", kinds(res.Root.Children))
	}
}

func TestTokenizeOrderedListStartOtherThanOneDoesNotInterruptParagraph(t *testing.T) {
	res := Tokenize([]byte("Para text\n2. item\n"))
	if len(res.Root.Children) != 1 || res.Root.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("got %v, want a single lazy-continuation Paragraph", kinds(res.Root.Children))
	}
	text := res.Root.Children[0].Lines[0].Text
	if text != "Para text\n2. item" {
		t.Fatalf("got %q, want the list line absorbed as a paragraph continuation", text)
	}
}

func TestTokenizeBulletListInterruptsParagraphRegardlessOfOrder(t *testing.T) {
	res := Tokenize([]byte("Para text\n- item\n"))
	if len(res.Root.Children) != 2 || res.Root.Children[1].Kind != ast.KindList {
		t.Fatalf("got %v, want Paragraph then List", kinds(res.Root.Children))
	}
}

func TestTokenizeEmptyListItemDoesNotInterruptParagraph(t *testing.T) {
	res := Tokenize([]byte("Para text\n*\n"))
	if len(res.Root.Children) != 1 || res.Root.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("got %v, want a single lazy-continuation Paragraph", kinds(res.Root.Children))
	}
}

func TestTokenizeReferenceDefinition(t *testing.T) {
	res := Tokenize([]byte("[foo]: /url \"title\"\n\nsee [foo]\n"))
	if len(res.Root.Children) != 1 || res.Root.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("got %v, want the ref def consumed and a single Paragraph left", kinds(res.Root.Children))
	}
	def, ok := res.Refs.Lookup("foo")
	if !ok {
		t.Fatalf("reference definition for 'foo' not recorded")
	}
	if def.Destination != "/url" || def.Title != "title" {
		t.Fatalf("got %+v, want dest=/url title=title", def)
	}
}

func TestTokenizeTableWithHeader(t *testing.T) {
	res := Tokenize([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if len(res.Root.Children) != 1 || res.Root.Children[0].Kind != ast.KindTable {
		t.Fatalf("got %v, want single Table", kinds(res.Root.Children))
	}
	tbl := res.Root.Children[0]
	if len(tbl.Children) != 2 {
		t.Fatalf("got %d rows, want 2 (header + body)", len(tbl.Children))
	}
	if !tbl.Children[0].Header {
		t.Fatalf("first row should be marked Header")
	}
}

func TestTokenizeHeaderlessTable(t *testing.T) {
	res := Tokenize([]byte("|---|---|\n| 1 | 2 |\n"))
	tbl := res.Root.Children[0]
	if tbl.Kind != ast.KindTable {
		t.Fatalf("kind = %s, want Table", tbl.Kind)
	}
	if len(tbl.Children) != 1 || tbl.Children[0].Header {
		t.Fatalf("headerless table should have only body rows")
	}
}

func TestTokenizeHTMLBlockCommentType(t *testing.T) {
	res := Tokenize([]byte("<!-- a comment\nspanning lines -->\n\npara\n"))
	got := kinds(res.Root.Children)
	want := []ast.Kind{ast.KindHTMLBlock, ast.KindParagraph}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeHTMLBlockTagType(t *testing.T) {
	res := Tokenize([]byte("<div class=\"note\">\ncontent\n</div>\n\npara\n"))
	got := kinds(res.Root.Children)
	if len(got) != 2 || got[0] != ast.KindHTMLBlock || got[1] != ast.KindParagraph {
		t.Fatalf("got %v, want [HtmlBlock Paragraph]", got)
	}
}

func TestTokenizeLazyContinuationStopsAtFence(t *testing.T) {
	res := Tokenize([]byte("para line\n```\ncode\n```\n"))
	got := kinds(res.Root.Children)
	want := []ast.Kind{ast.KindParagraph, ast.KindCodeBlock}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}
