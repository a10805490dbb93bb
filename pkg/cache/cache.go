package cache

import "github.com/marcoeng/marco/pkg/ast"

// Options configures a Cache's two tiers (spec §4.6).
type Options struct {
	// MaxDocuments bounds the AST-cache tier. Default 256.
	MaxDocuments int
	// MaxRenders bounds the HTML-cache tier. Default 512.
	MaxRenders int
}

// DefaultOptions returns sensible tier capacities for a single-process
// engine instance.
func DefaultOptions() Options {
	return Options{MaxDocuments: 256, MaxRenders: 512}
}

// Cache is the engine's two-tier content-addressed cache (spec §4.6): an
// AST cache keyed by source hash, and an HTML cache keyed by
// (source hash, options hash). Both tiers are bounded LRUs that coalesce
// concurrent misses for the same key.
type Cache struct {
	Documents *LRU[*ast.Document]
	Renders   *LRU[string]
}

// New creates a Cache with the given tier capacities.
func New(opts Options) *Cache {
	def := DefaultOptions()
	if opts.MaxDocuments <= 0 {
		opts.MaxDocuments = def.MaxDocuments
	}
	if opts.MaxRenders <= 0 {
		opts.MaxRenders = def.MaxRenders
	}
	return &Cache{
		Documents: NewLRU[*ast.Document](opts.MaxDocuments),
		Renders:   NewLRU[string](opts.MaxRenders),
	}
}

// ParseWithCache returns the cached Document for source (post extension
// passes), invoking parse on a miss. parse must be infallible, matching the
// parser/extension layers' contract (spec §4.1/§4.3/§4.4).
func (c *Cache) ParseWithCache(source []byte, parse func([]byte) *ast.Document) *ast.Document {
	doc, _ := c.Documents.GetOrCompute(HashSource(source), func() (*ast.Document, error) {
		return parse(source), nil
	})
	return doc
}

// RenderWithCache returns the cached HTML for (source, optionsHash),
// invoking render on a miss. It resolves the Document through
// ParseWithCache first, so a render-cache miss reuses an already-cached
// parse instead of redoing it.
func (c *Cache) RenderWithCache(source []byte, optionsHash string, parse func([]byte) *ast.Document, render func(*ast.Document) string) string {
	key := CombineKeys(HashSource(source), optionsHash)
	html, _ := c.Renders.GetOrCompute(key, func() (string, error) {
		doc := c.ParseWithCache(source, parse)
		return render(doc), nil
	})
	return html
}

// CombinedStats reports both tiers' statistics together.
type CombinedStats struct {
	Documents Stats
	Renders   Stats
}

// Stats returns current statistics for both cache tiers.
func (c *Cache) Stats() CombinedStats {
	return CombinedStats{Documents: c.Documents.Stats(), Renders: c.Renders.Stats()}
}

// Clear empties both tiers.
func (c *Cache) Clear() {
	c.Documents.Clear()
	c.Renders.Clear()
}
