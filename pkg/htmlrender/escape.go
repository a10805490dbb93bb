package htmlrender

import "strings"

// escapeText escapes the three characters that are unsafe in HTML text
// content (spec §4.5 Escaping rules).
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeAttr escapes text destined for a double-quoted HTML attribute value:
// the same three characters as escapeText plus the double quote.
func escapeAttr(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// urlSafe holds the bytes spec §4.5 names as the URL-safe set, left
// untouched by escapeURL; everything else is percent-encoded.
var urlSafe [256]bool

func init() {
	const safe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.~:/?#[]@!$'()*+,;=%"
	for i := 0; i < len(safe); i++ {
		urlSafe[safe[i]] = true
	}
}

// escapeURL percent-encodes bytes outside the URL-safe set, leaves existing
// percent escapes intact (the set includes '%' itself), and HTML-escapes any
// literal ampersand left over so the result is safe to embed in an
// href/src attribute (spec §4.5 Escaping rules).
func escapeURL(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '&':
			b.WriteString("&amp;")
		case urlSafe[c]:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
