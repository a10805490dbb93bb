package extensions

import (
	"strings"
	"testing"

	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/astbuild"
)

func TestApplyAlertAdmonition(t *testing.T) {
	doc := astbuild.Build([]byte("> [!WARNING]\n> be careful\n"))
	Apply(doc)
	if len(doc.Root.Children) != 1 {
		t.Fatalf("top-level children = %d", len(doc.Root.Children))
	}
	ad := doc.Root.Children[0]
	if ad.Kind != ast.KindAdmonition || ad.AdmonitionStyle != ast.AdmonitionAlert || ad.AdmonitionKind != "warning" {
		t.Fatalf("got %+v", ad)
	}
	if len(ad.Children) == 0 || ad.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("admonition body missing: %+v", ad.Children)
	}
}

func TestApplyCustomAdmonition(t *testing.T) {
	doc := astbuild.Build([]byte("> [bulb Pro tip]\n> use caching\n"))
	Apply(doc)
	ad := doc.Root.Children[0]
	if ad.Kind != ast.KindAdmonition || ad.AdmonitionStyle != ast.AdmonitionQuote {
		t.Fatalf("got %+v", ad)
	}
	if ad.AdmonitionIcon != "bulb" || ad.AdmonitionTitle != "Pro tip" {
		t.Fatalf("icon/title = %q/%q", ad.AdmonitionIcon, ad.AdmonitionTitle)
	}
}

func TestApplyMentionResolvesKnownPlatform(t *testing.T) {
	doc := astbuild.Build([]byte("thanks @github:octocat for the review\n"))
	Apply(doc)
	para := doc.Root.Children[0]
	var link *ast.Node
	for _, c := range para.Children {
		if c.Kind == ast.KindLink {
			link = c
		}
	}
	if link == nil || link.URL != "https://github.com/octocat" {
		t.Fatalf("got %+v", para.Children)
	}
}

func TestApplyMentionDefaultPlatform(t *testing.T) {
	doc := astbuild.Build([]byte("cc @octocat\n"))
	Apply(doc)
	para := doc.Root.Children[0]
	var link *ast.Node
	for _, c := range para.Children {
		if c.Kind == ast.KindLink {
			link = c
		}
	}
	if link == nil || link.URL != "https://github.com/octocat" {
		t.Fatalf("got %+v", para.Children)
	}
}

func TestApplyMentionUnknownPlatformLeavesTextAlone(t *testing.T) {
	doc := astbuild.Build([]byte("cc @notarealplatform:someone\n"))
	Apply(doc)
	para := doc.Root.Children[0]
	for _, c := range para.Children {
		if c.Kind == ast.KindLink {
			t.Fatalf("unexpected link for unresolvable platform: %+v", para.Children)
		}
	}
}

// treeShape renders a node and its descendants as a flat string of
// "Kind(url)" tokens in tree order, so two trees can be compared for
// structural equality without hand-walking them in the test body.
func treeShape(n *ast.Node) string {
	var b strings.Builder
	var walk func(*ast.Node)
	walk = func(n *ast.Node) {
		b.WriteString(n.Kind.String())
		if n.URL != "" {
			b.WriteString("(")
			b.WriteString(n.URL)
			b.WriteString(")")
		}
		b.WriteString("[")
		for _, c := range n.Children {
			walk(c)
		}
		b.WriteString("]")
	}
	walk(n)
	return b.String()
}

func TestApplyIdempotent(t *testing.T) {
	doc := astbuild.Build([]byte("> [!NOTE]\n> hi @github:octocat\n"))
	Apply(doc)
	first := treeShape(doc.Root)
	Apply(doc)
	second := treeShape(doc.Root)
	if first != second {
		t.Fatalf("not idempotent:\nfirst:  %s\nsecond: %s", first, second)
	}
	if doc.Root.Children[0].Kind != ast.KindAdmonition {
		t.Fatalf("got %+v, want an admonition", doc.Root.Children[0])
	}
	// A nested Link inside the resolved mention link would only show up in
	// the shape comparison above, but spell it out explicitly too: the
	// mention's Link must not itself contain another Link.
	mentionPara := doc.Root.Children[0].Children[0]
	for _, c := range mentionPara.Children {
		if c.Kind != ast.KindLink {
			continue
		}
		for _, gc := range c.Children {
			if gc.Kind == ast.KindLink {
				t.Fatalf("mention link re-wrapped itself: %+v", c)
			}
		}
	}
}
