// Package engine is the library's public surface (spec §6): parse, render,
// the combined parse-and-render convenience, highlight extraction, and a
// cache-backed render entry point. Every function here is synchronous and
// re-entrant (spec §5); the only shared mutable state a caller can opt into
// is an explicit *cache.Cache passed to RenderWithCache.
package engine

import (
	"log"

	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/astbuild"
	"github.com/marcoeng/marco/pkg/cache"
	"github.com/marcoeng/marco/pkg/extensions"
	"github.com/marcoeng/marco/pkg/highlight"
	"github.com/marcoeng/marco/pkg/htmlrender"
)

// Config bundles the engine's render-time knobs for callers (e.g. cmd/marco)
// that load options from a file rather than constructing htmlrender.Options
// by hand.
type Config struct {
	Options htmlrender.Options
}

// DefaultConfig returns the engine's default render configuration.
func DefaultConfig() Config {
	return Config{Options: htmlrender.DefaultOptions()}
}

// Parse runs the block tokenizer, inline tokenizer, and extension passes
// over source and returns the finished Document. Per spec §7, the lower
// layers are infallible by contract: Parse never returns an error for
// malformed Markdown (degraded input becomes paragraph text), but a repaired
// encoding fault is surfaced as a side channel via doc.Repairs.
//
// parse(source) is pure: identical bytes always produce an equivalent tree
// (spec §8).
func Parse(source []byte) *ast.Document {
	doc := astbuild.Build(source)
	doc = extensions.Apply(doc)
	if doc.Repairs > 0 {
		log.Printf("marco: repaired %d invalid UTF-8 sequence(s), first at byte %d",
			doc.Repairs, doc.FirstRepairOffset)
	}
	logRenderDiagnostics(doc)
	return doc
}

// logRenderDiagnostics checks render invariants that the builder's
// normalization is supposed to guarantee hold for every Table (spec §7's
// "Render diagnostic" case: an AST that violates an invariant, e.g.
// mismatched row/alignment widths). A well-formed tree never trips this;
// an occurrence is a builder defect, logged rather than surfaced through
// Parse's error-free signature (spec §6).
func logRenderDiagnostics(doc *ast.Document) {
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n.Kind == ast.KindTable {
			for _, row := range n.Children {
				if row.Kind != ast.KindTableRow {
					continue
				}
				if len(row.Children) != len(n.Alignments) {
					d := ast.NewDiagnostic(row.Span,
						"table row has %d cell(s), want %d to match the column count",
						len(row.Children), len(n.Alignments))
					log.Print(d.Error())
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(doc.Root)
}

// Render serialises doc to HTML under opts. Always succeeds for a
// well-formed document (spec §6).
func Render(doc *ast.Document, opts htmlrender.Options) string {
	return htmlrender.Render(doc, opts)
}

// ParseAndRender parses source and renders it under opts in one call.
func ParseAndRender(source []byte, opts htmlrender.Options) string {
	return Render(Parse(source), opts)
}

// ComputeHighlights returns doc's ordered { tag, span } sequence for editor
// syntax colouring (spec §4.7). Pure with respect to doc.
func ComputeHighlights(doc *ast.Document) []highlight.Highlight {
	return highlight.Compute(doc)
}

// OptionsHash derives a cache.RenderWithCache options key from opts. It is
// exported so callers building their own cache key don't need to re-derive
// the field list by hand.
func OptionsHash(opts htmlrender.Options) string {
	return cache.HashOptions(
		string(opts.ThemeMode),
		opts.HardBreakHTML,
		string(opts.ExternalLinkTarget),
		boolField(opts.HTMLPassthrough),
		boolField(opts.Tagfilter),
	)
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// RenderWithCache renders source under opts through c, memoising both the
// parse and the render. Observationally equivalent to
// Render(Parse(source), opts) plus caching (spec §4.6/§8).
func RenderWithCache(c *cache.Cache, source []byte, opts htmlrender.Options) string {
	return c.RenderWithCache(source, OptionsHash(opts),
		Parse,
		func(doc *ast.Document) string { return Render(doc, opts) },
	)
}
