package astbuild

import (
	"testing"

	"github.com/marcoeng/marco/pkg/ast"
)

func kinds(nodes []*ast.Node) []ast.Kind {
	out := make([]ast.Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func TestBuildParagraphAndHeading(t *testing.T) {
	doc := Build([]byte("# Title\n\nSome *text*.\n"))
	if doc.Root.Kind != ast.KindDocument {
		t.Fatalf("root kind = %s", doc.Root.Kind)
	}
	top := doc.Root.Children
	if len(top) != 2 || top[0].Kind != ast.KindHeading || top[1].Kind != ast.KindParagraph {
		t.Fatalf("top-level kinds = %v", kinds(top))
	}
	if top[0].Level != 1 {
		t.Fatalf("heading level = %d", top[0].Level)
	}
	var sawEmphasis bool
	for _, c := range top[1].Children {
		if c.Kind == ast.KindEmphasis {
			sawEmphasis = true
		}
	}
	if !sawEmphasis {
		t.Fatalf("expected emphasis child in paragraph, got %v", kinds(top[1].Children))
	}
}

func TestBuildReferenceLinkResolvesThroughDocument(t *testing.T) {
	src := "See [foo][1] here.\n\n[1]: /dest \"a title\"\n"
	doc := Build([]byte(src))
	if doc.Refs.Len() != 1 {
		t.Fatalf("expected 1 reference definition, got %d", doc.Refs.Len())
	}
	top := doc.Root.Children
	if len(top) != 1 || top[0].Kind != ast.KindParagraph {
		t.Fatalf("top-level = %v, want single paragraph", kinds(top))
	}
	var link *ast.Node
	for _, c := range top[0].Children {
		if c.Kind == ast.KindLink {
			link = c
		}
	}
	if link == nil || link.URL != "/dest" || link.Title != "a title" {
		t.Fatalf("got %+v", top[0].Children)
	}
}

func TestBuildTableNormalizesCellCount(t *testing.T) {
	src := "| a | b | c |\n| - | - | - |\n| 1 | 2 |\n"
	doc := Build([]byte(src))
	top := doc.Root.Children
	if len(top) != 1 || top[0].Kind != ast.KindTable {
		t.Fatalf("top-level = %v, want single table", kinds(top))
	}
	table := top[0]
	if len(table.Alignments) != 3 {
		t.Fatalf("alignments = %v", table.Alignments)
	}
	for _, row := range table.Children {
		if len(row.Children) != 3 {
			t.Fatalf("row has %d cells, want 3: %+v", len(row.Children), row)
		}
	}
}

func TestBuildListItemsNested(t *testing.T) {
	src := "- one\n- two\n"
	doc := Build([]byte(src))
	top := doc.Root.Children
	if len(top) != 1 || top[0].Kind != ast.KindList {
		t.Fatalf("top-level = %v, want single list", kinds(top))
	}
	items := top[0].Children
	if len(items) != 2 {
		t.Fatalf("got %d list items, want 2", len(items))
	}
	for _, it := range items {
		if it.Kind != ast.KindListItem {
			t.Fatalf("item kind = %s", it.Kind)
		}
	}
}

func TestBuildCodeBlockHasNoChildren(t *testing.T) {
	doc := Build([]byte("```go\nfmt.Println(1)\n```\n"))
	top := doc.Root.Children
	if len(top) != 1 || top[0].Kind != ast.KindCodeBlock {
		t.Fatalf("top-level = %v, want single code block", kinds(top))
	}
	if top[0].Children != nil {
		t.Fatalf("code block should have no children, got %v", top[0].Children)
	}
	if top[0].Lang != "go" {
		t.Fatalf("lang = %q", top[0].Lang)
	}
}
