package htmlrender

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// canonicalLangClass resolves a fenced-code-block info-string language
// token to chroma's registered lexer name (e.g. "js" -> "javascript") so the
// emitted "language-{lang}" class is stable across common aliases, without
// chroma actually highlighting anything (spec §4.5 still renders plain
// <pre><code>, no highlighted spans). Falls back to the lowercased input
// verbatim when chroma has no matching lexer.
func canonicalLangClass(lang string) string {
	if lang == "" {
		return ""
	}
	lx := lexers.Get(lang)
	if lx == nil {
		return strings.ToLower(lang)
	}
	cfg := lx.Config()
	if cfg == nil || cfg.Name == "" {
		return strings.ToLower(lang)
	}
	return strings.ToLower(cfg.Name)
}
