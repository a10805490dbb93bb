package extensions

import (
	"regexp"
	"strings"
)

// mentionTable is the fixed compile-time platform → profile-URL-template
// mapping (spec §4.4 point 3, §9 Open Question 2), grounded on the
// original engine's plarform_mentions.rs profile_url table. "{u}" is the
// percent-encoded handle; tieba additionally query-encodes (same escaping
// as the path-segment form here, so it reuses the same placeholder).
var mentionTable = map[string]string{
	"github":   "https://github.com/{u}",
	"gitlab":   "https://gitlab.com/{u}",
	"mastodon": "https://mastodon.social/@{u}",
	"bluesky":  "https://bsky.app/profile/{u}",
	"twitter":  "https://twitter.com/{u}",
	"x":        "https://x.com/{u}",
	"tieba":    "https://tieba.baidu.com/home/main/?un={u}",
}

// defaultMentionPlatform is used for a bare "@handle" with no explicit
// "platform:" prefix.
const defaultMentionPlatform = "github"

// mentionRegex matches "@platform:handle" or bare "@handle", requiring the
// '@' to be preceded by start-of-string or whitespace (spec: "immediately
// preceded by start-of-inline or whitespace"). The handle/platform
// character set mirrors GFM's own handle grammar: alphanumeric, '-', '_',
// with no leading '-'/'_' (profileURL drops a trailing '-'/'_' from the
// handle before building the URL).
var mentionRegex = regexp.MustCompile(`(^|[\s])@(?:([a-zA-Z][a-zA-Z0-9_-]*):)?([a-zA-Z0-9][a-zA-Z0-9_-]*)`)

// profileURL resolves (platform, handle) to a profile URL via the fixed
// table, or returns ok=false for an unrecognised platform.
func profileURL(platform, handle string) (url string, ok bool) {
	tmpl, found := mentionTable[strings.ToLower(platform)]
	if !found {
		return "", false
	}
	trimmed := strings.TrimRight(handle, "-_")
	if trimmed == "" {
		return "", false
	}
	return strings.ReplaceAll(tmpl, "{u}", encodePathSegment(trimmed)), true
}

// encodePathSegment percent-encodes s for safe embedding as a single URL
// path segment, using RFC 3986's unreserved set (ALPHA / DIGIT / "-" / "."
// / "_" / "~"). Tieba's query-component use reuses the same escaping, per
// the original engine's encode_query_component.
func encodePathSegment(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
