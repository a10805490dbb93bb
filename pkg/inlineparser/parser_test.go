package inlineparser

import (
	"testing"

	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/span"
)

func parseSimple(t *testing.T, text string) []*ast.Node {
	t.Helper()
	refs := ast.NewRefTable()
	return Parse(text, span.Span{StartLine: 1, StartColumn: 1}, refs, Options{})
}

func TestParsePlainText(t *testing.T) {
	nodes := parseSimple(t, "hello world")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindText || nodes[0].Text != "hello world" {
		t.Fatalf("got %+v", nodes)
	}
}

func TestParseCodeSpan(t *testing.T) {
	nodes := parseSimple(t, "a `code` b")
	var found bool
	for _, n := range nodes {
		if n.Kind == ast.KindCodeSpan {
			found = true
			if n.Text != "code" {
				t.Fatalf("code span text = %q, want 'code'", n.Text)
			}
		}
	}
	if !found {
		t.Fatalf("no code span found in %+v", nodes)
	}
}

func TestParseEmphasisAndStrong(t *testing.T) {
	nodes := parseSimple(t, "*em* and **strong** and ***both***")
	var kinds []ast.Kind
	for _, n := range nodes {
		kinds = append(kinds, n.Kind)
	}
	wantHas := map[ast.Kind]bool{ast.KindEmphasis: false, ast.KindStrong: false, ast.KindStrongEmphasis: false}
	for _, k := range kinds {
		if _, ok := wantHas[k]; ok {
			wantHas[k] = true
		}
	}
	for k, seen := range wantHas {
		if !seen {
			t.Fatalf("kind %s not produced, got %v", k, kinds)
		}
	}
}

func TestParseBackslashEscape(t *testing.T) {
	nodes := parseSimple(t, `\*not emphasis\*`)
	for _, n := range nodes {
		if n.Kind == ast.KindEmphasis {
			t.Fatalf("escaped asterisks should not form emphasis: %+v", nodes)
		}
	}
}

func TestParseAutolink(t *testing.T) {
	nodes := parseSimple(t, "see <https://example.com/x> now")
	var link *ast.Node
	for _, n := range nodes {
		if n.Kind == ast.KindLink {
			link = n
		}
	}
	if link == nil || link.URL != "https://example.com/x" {
		t.Fatalf("got %+v", nodes)
	}
}

func TestParseReferenceLink(t *testing.T) {
	refs := ast.NewRefTable()
	refs.Define("foo", ast.RefDef{Destination: "/url", Title: "t"})
	nodes := Parse("see [foo] there", span.Span{StartLine: 1, StartColumn: 1}, refs, Options{})
	var link *ast.Node
	for _, n := range nodes {
		if n.Kind == ast.KindLink {
			link = n
		}
	}
	if link == nil || link.URL != "/url" || link.Title != "t" {
		t.Fatalf("got %+v", nodes)
	}
}

func TestParseUnresolvedReferenceDegradesToText(t *testing.T) {
	nodes := parseSimple(t, "see [missing] there")
	for _, n := range nodes {
		if n.Kind == ast.KindLink {
			t.Fatalf("unresolved reference should not produce a Link: %+v", nodes)
		}
	}
}

func TestParseInlineImage(t *testing.T) {
	nodes := parseSimple(t, "![alt text](pic.png \"a title\")")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindImage {
		t.Fatalf("got %+v", nodes)
	}
	img := nodes[0]
	if img.URL != "pic.png" || img.Title != "a title" || img.Alt != "alt text" {
		t.Fatalf("image = %+v", img)
	}
}

func TestParseStrikethroughMarkSuperscriptSubscript(t *testing.T) {
	cases := []struct {
		text string
		kind ast.Kind
	}{
		{"~~gone~~", ast.KindStrikethrough},
		{"==highlight==", ast.KindMark},
		{"^sup^", ast.KindSuperscript},
		{"~sub~", ast.KindSubscript},
		{"˅arrow˅", ast.KindSubscript},
	}
	for _, c := range cases {
		nodes := parseSimple(t, c.text)
		if len(nodes) != 1 || nodes[0].Kind != c.kind {
			t.Fatalf("%q: got %+v, want single %s", c.text, nodes, c.kind)
		}
	}
}

func TestParseEmojiShortcode(t *testing.T) {
	nodes := parseSimple(t, "nice :rocket: launch")
	var glyph string
	for _, n := range nodes {
		if n.Kind == ast.KindText && n.Text == "🚀" {
			glyph = n.Text
		}
	}
	if glyph == "" {
		t.Fatalf("got %+v, want rocket emoji substituted", nodes)
	}
}

func TestParseUnknownEmojiShortcodeFallsThrough(t *testing.T) {
	nodes := parseSimple(t, "odd :notarealname: word")
	var joined string
	for _, n := range nodes {
		joined += n.Text
	}
	if joined != "odd :notarealname: word" {
		t.Fatalf("got %q", joined)
	}
}

func TestParseHardBreakAndSoftBreak(t *testing.T) {
	nodes := parseSimple(t, "line one  \nline two\nline three")
	var hard, soft int
	for _, n := range nodes {
		switch n.Kind {
		case ast.KindHardBreak:
			hard++
		case ast.KindSoftBreak:
			soft++
		}
	}
	if hard != 1 || soft != 1 {
		t.Fatalf("hard=%d soft=%d, want 1 and 1 (nodes=%+v)", hard, soft, nodes)
	}
}

func TestParseGFMAutolinkLiteral(t *testing.T) {
	nodes := parseSimple(t, "visit www.example.com today.")
	var link *ast.Node
	for _, n := range nodes {
		if n.Kind == ast.KindLink {
			link = n
		}
	}
	if link == nil || link.URL != "http://www.example.com" {
		t.Fatalf("got %+v", nodes)
	}
}

func TestParseInlineHTML(t *testing.T) {
	nodes := parseSimple(t, `text <span class="x"> more`)
	var found bool
	for _, n := range nodes {
		if n.Kind == ast.KindInlineHTML {
			found = true
		}
	}
	if !found {
		t.Fatalf("got %+v, want an InlineHtml node", nodes)
	}
}
