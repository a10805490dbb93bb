// Package htmlrender serialises an ast.Document to HTML (spec §4.5). It is a
// direct top-down tree walk, not a templating or plugin system: the
// element-mapping table in the specification is the implementation, the way
// the teacher's own goldmark node renderers (pkg/plugins/admonitions.go,
// mark.go) are one switch-like dispatch per node kind rather than a DSL.
package htmlrender

// ThemeMode names the syntax-highlighting theme. It is part of Options and
// of the render cache key, but Render does not read it: the HTML, class
// names included, is the same for every mode.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ExternalLinkTarget controls whether non-relative links gain target/rel
// attributes.
type ExternalLinkTarget string

const (
	TargetNone  ExternalLinkTarget = ""
	TargetBlank ExternalLinkTarget = "_blank"
)

// Options configures Render. The zero value is not a valid Options; use
// DefaultOptions to get the documented defaults.
type Options struct {
	ThemeMode          ThemeMode
	HardBreakHTML      string
	ExternalLinkTarget ExternalLinkTarget
	HTMLPassthrough    bool
	Tagfilter          bool
}

// DefaultOptions returns the documented defaults: light theme, "<br/>" hard
// breaks, no forced link target, HTML passthrough on, tagfilter on.
func DefaultOptions() Options {
	return Options{
		ThemeMode:       ThemeLight,
		HardBreakHTML:   "<br/>",
		HTMLPassthrough: true,
		Tagfilter:       true,
	}
}

func (o Options) hardBreak() string {
	if o.HardBreakHTML == "" {
		return "<br/>"
	}
	return o.HardBreakHTML
}
