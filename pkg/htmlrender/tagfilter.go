package htmlrender

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// filteredAtoms is the GFM tagfilter extension's fixed tag set (spec §4.5),
// resolved through golang.org/x/net/html/atom the same way pkg/blockparser's
// html.go validates type-7 HTML block tag names, instead of comparing
// lowercased strings against a hand-maintained list.
var filteredAtoms = map[atom.Atom]bool{
	atom.Title:     true,
	atom.Textarea:  true,
	atom.Style:     true,
	atom.Xmp:       true,
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Script:    true,
	atom.Plaintext: true,
}

// applyTagfilter walks raw through every "<" and, for each one that opens or
// closes a filtered tag, replaces it with "&lt;". Mirrors pkg/blockparser's
// html.go convention of checking tag names case-insensitively.
func applyTagfilter(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '<' {
			b.WriteByte(raw[i])
			continue
		}
		name, ok := tagNameAt(raw[i:])
		if ok && filteredAtoms[atom.Lookup([]byte(strings.ToLower(name)))] {
			b.WriteString("&lt;")
			continue
		}
		b.WriteByte('<')
	}
	return b.String()
}

// tagNameAt extracts the tag name from a string starting with "<" or "</",
// e.g. "<Script src=...>" -> "Script".
func tagNameAt(s string) (name string, ok bool) {
	i := 1
	if i < len(s) && s[i] == '/' {
		i++
	}
	start := i
	for i < len(s) && isTagNameByte(s[i]) {
		i++
	}
	if i == start {
		return "", false
	}
	return s[start:i], true
}

func isTagNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}
