// Package emoji holds the engine's fixed shortcode-to-glyph vocabulary used
// by the inline tokenizer's `:name:` production (spec §4.2 point 9). Only
// names present in Table are substituted; anything else falls through to
// plain text, so the table is deliberately small and stable rather than a
// mirror of the full GitHub gemoji set.
package emoji

// Table maps a shortcode name (without colons) to its glyph.
var Table = map[string]string{
	"smile":        "😄",
	"smiley":       "😃",
	"grin":         "😁",
	"laughing":     "😆",
	"wink":         "😉",
	"blush":        "😊",
	"heart":        "❤️",
	"heart_eyes":   "😍",
	"thumbsup":     "👍",
	"+1":           "👍",
	"thumbsdown":   "👎",
	"-1":           "👎",
	"clap":         "👏",
	"wave":         "👋",
	"pray":         "🙏",
	"fire":         "🔥",
	"tada":         "🎉",
	"rocket":       "🚀",
	"eyes":         "👀",
	"thinking":     "🤔",
	"joy":          "😂",
	"cry":          "😢",
	"sob":          "😭",
	"sweat_smile":  "😅",
	"scream":       "😱",
	"100":          "💯",
	"white_check_mark": "✅",
	"x":            "❌",
	"warning":      "⚠️",
	"bulb":         "💡",
	"star":         "⭐",
	"sparkles":     "✨",
	"bug":          "🐛",
	"memo":         "📝",
	"lock":         "🔒",
	"unlock":       "🔓",
	"zap":          "⚡",
	"book":         "📖",
	"construction": "🚧",
	"art":          "🎨",
	"recycle":      "♻️",
}

// Lookup resolves name to its glyph. ok is false for unrecognised names,
// in which case the caller must emit the original ":name:" text unchanged.
func Lookup(name string) (glyph string, ok bool) {
	glyph, ok = Table[name]
	return
}
