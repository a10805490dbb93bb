package htmlrender

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcoeng/marco/pkg/astbuild"
	"github.com/marcoeng/marco/pkg/extensions"
)

func render(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc := astbuild.Build([]byte(src))
	extensions.Apply(doc)
	html := Render(doc, DefaultOptions())
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing rendered HTML: %v", err)
	}
	return gq
}

func TestRenderParagraphAndHeading(t *testing.T) {
	gq := render(t, "# Title\n\nhello world\n")
	if gq.Find("h1").Text() != "Title" {
		t.Fatalf("h1 text = %q", gq.Find("h1").Text())
	}
	if gq.Find("p").Text() != "hello world" {
		t.Fatalf("p text = %q", gq.Find("p").Text())
	}
}

func TestRenderEmphasisStrongStrikethrough(t *testing.T) {
	gq := render(t, "*em* **strong** ~~gone~~ ==marked== ^up^ ~down~\n")
	if gq.Find("em").Length() != 1 || gq.Find("strong").Length() != 1 {
		t.Fatalf("missing em/strong: %s", mustHTML(gq))
	}
	if gq.Find("del").Length() != 1 || gq.Find("mark").Length() != 1 {
		t.Fatalf("missing del/mark: %s", mustHTML(gq))
	}
	if gq.Find("sup").Length() != 1 || gq.Find("sub").Length() != 1 {
		t.Fatalf("missing sup/sub: %s", mustHTML(gq))
	}
}

func TestRenderFencedCodeBlockLanguageClass(t *testing.T) {
	gq := render(t, "```js\nconst x = 1;\n```\n")
	code := gq.Find("pre code")
	class, _ := code.Attr("class")
	if class != "language-javascript" {
		t.Fatalf("class = %q, want language-javascript (chroma alias canonicalisation)", class)
	}
	if code.Text() != "const x = 1;\n" {
		t.Fatalf("code text = %q", code.Text())
	}
}

func TestRenderCodeBlockEscapesContent(t *testing.T) {
	gq := render(t, "```\n<script>alert(1)</script>\n```\n")
	html, _ := gq.Find("pre code").Html()
	if strings.Contains(html, "<script>") {
		t.Fatalf("code block did not escape HTML: %s", html)
	}
}

func TestRenderUnorderedAndOrderedLists(t *testing.T) {
	gq := render(t, "- a\n- b\n")
	if gq.Find("ul li").Length() != 2 {
		t.Fatalf("want 2 tight list items, got %d: %s", gq.Find("ul li").Length(), mustHTML(gq))
	}
	if gq.Find("ul li p").Length() != 0 {
		t.Fatalf("tight list items should not wrap content in <p>: %s", mustHTML(gq))
	}

	gq = render(t, "3. a\n4. b\n")
	ol := gq.Find("ol")
	start, _ := ol.Attr("start")
	if start != "3" {
		t.Fatalf("ol start = %q, want 3", start)
	}
}

func TestRenderLooseListWrapsParagraphs(t *testing.T) {
	gq := render(t, "- a\n\n- b\n")
	if gq.Find("ul li p").Length() != 2 {
		t.Fatalf("loose list items should wrap content in <p>: %s", mustHTML(gq))
	}
}

func TestRenderTableWithAlignment(t *testing.T) {
	src := "| a | b | c |\n|:--|:-:|--:|\n| 1 | 2 | 3 |\n"
	gq := render(t, src)
	if gq.Find("table thead tr th").Length() != 3 {
		t.Fatalf("want 3 header cells: %s", mustHTML(gq))
	}
	if gq.Find("table tbody tr td").Length() != 3 {
		t.Fatalf("want 3 body cells: %s", mustHTML(gq))
	}
	ths := gq.Find("table thead tr th")
	if align, _ := ths.Eq(0).Attr("align"); align != "left" {
		t.Fatalf("col0 align = %q, want left", align)
	}
	if align, _ := ths.Eq(1).Attr("align"); align != "center" {
		t.Fatalf("col1 align = %q, want center", align)
	}
	if align, _ := ths.Eq(2).Attr("align"); align != "right" {
		t.Fatalf("col2 align = %q, want right", align)
	}
}

func TestRenderAlertAdmonition(t *testing.T) {
	gq := render(t, "> [!WARNING]\n> be careful\n")
	div := gq.Find("div.admonition")
	class, _ := div.Attr("class")
	if !strings.Contains(class, "admonition-warning") || !strings.Contains(class, "admonition-alert") {
		t.Fatalf("class = %q", class)
	}
	if gq.Find("div.admonition p.admonition-title").Text() != "Warning" {
		t.Fatalf("title = %q", gq.Find("p.admonition-title").Text())
	}
}

func TestRenderCustomAdmonition(t *testing.T) {
	gq := render(t, "> [bulb Pro tip]\n> use caching\n")
	div := gq.Find("div.admonition")
	class, _ := div.Attr("class")
	if !strings.Contains(class, "admonition-bulb") || !strings.Contains(class, "admonition-quote") {
		t.Fatalf("class = %q", class)
	}
	if gq.Find("p.admonition-title").Text() != "Pro tip" {
		t.Fatalf("title = %q", gq.Find("p.admonition-title").Text())
	}
}

func TestRenderLinkAndImage(t *testing.T) {
	gq := render(t, "[go](https://go.dev \"Go\") and ![alt text](pic.png)\n")
	a := gq.Find("a")
	href, _ := a.Attr("href")
	title, _ := a.Attr("title")
	if href != "https://go.dev" || title != "Go" || a.Text() != "go" {
		t.Fatalf("a href=%q title=%q text=%q", href, title, a.Text())
	}
	img := gq.Find("img")
	src, _ := img.Attr("src")
	alt, _ := img.Attr("alt")
	if src != "pic.png" || alt != "alt text" {
		t.Fatalf("img src=%q alt=%q", src, alt)
	}
}

func TestRenderExternalLinkTargetBlank(t *testing.T) {
	doc := astbuild.Build([]byte("[go](https://go.dev)\n"))
	extensions.Apply(doc)
	opts := DefaultOptions()
	opts.ExternalLinkTarget = TargetBlank
	html := Render(doc, opts)
	if !strings.Contains(html, `target="_blank"`) || !strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Fatalf("missing target/rel: %s", html)
	}

	doc2 := astbuild.Build([]byte("[home](/)\n"))
	extensions.Apply(doc2)
	html2 := Render(doc2, opts)
	if strings.Contains(html2, "target=") {
		t.Fatalf("relative link should not get target: %s", html2)
	}
}

func TestRenderHardAndSoftBreak(t *testing.T) {
	gq := render(t, "line one  \nline two\n")
	html, _ := gq.Find("p").Html()
	if !strings.Contains(html, "<br/>") {
		t.Fatalf("missing hard break: %s", html)
	}

	gq = render(t, "a\nb\n")
	html, _ = gq.Find("p").Html()
	if !strings.Contains(html, "a\nb") {
		t.Fatalf("soft break should render as newline: %q", html)
	}
}

func TestRenderTagfilterNeutralisesScriptTag(t *testing.T) {
	doc := astbuild.Build([]byte("<script>alert(1)</script>\n"))
	extensions.Apply(doc)
	html := Render(doc, DefaultOptions())
	if strings.Contains(html, "<script>") {
		t.Fatalf("tagfilter did not neutralise <script>: %s", html)
	}
	if !strings.Contains(html, "&lt;script>") {
		t.Fatalf("expected neutralised opening tag, got: %s", html)
	}
}

func TestRenderTagfilterDisabledPassesRawScript(t *testing.T) {
	doc := astbuild.Build([]byte("<script>alert(1)</script>\n"))
	extensions.Apply(doc)
	opts := DefaultOptions()
	opts.Tagfilter = false
	html := Render(doc, opts)
	if !strings.Contains(html, "<script>") {
		t.Fatalf("expected raw script tag with tagfilter disabled, got: %s", html)
	}
}

func TestRenderTaskCheckbox(t *testing.T) {
	gq := render(t, "- [x] done\n- [ ] todo\n")
	spans := gq.Find("span.task-list-item-checkbox")
	if spans.Length() != 2 {
		t.Fatalf("want 2 checkbox spans, got %d", spans.Length())
	}
	class0, _ := spans.Eq(0).Attr("class")
	if !strings.Contains(class0, "checked") {
		t.Fatalf("first checkbox should be checked: %q", class0)
	}
}

func mustHTML(gq *goquery.Document) string {
	h, err := gq.Html()
	if err != nil {
		return "<error>"
	}
	return h
}
