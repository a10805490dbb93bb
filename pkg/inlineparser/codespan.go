package inlineparser

import "strings"

// scanCodeSpan recognises a code span starting at s[i] (s[i] must be '`'):
// a backtick run, content, then a run of the same length. If no matching
// closer exists, ok is false and the caller falls through to treating the
// opening run as literal text.
func scanCodeSpan(s string, i int) (content string, next int, ok bool) {
	j := i
	for j < len(s) && s[j] == '`' {
		j++
	}
	openLen := j - i
	contentStart := j
	for j < len(s) {
		if s[j] == '`' {
			k := j
			for k < len(s) && s[k] == '`' {
				k++
			}
			if k-j == openLen {
				raw := s[contentStart:j]
				return normalizeCodeSpan(raw), k, true
			}
			j = k
			continue
		}
		j++
	}
	return "", i, false
}

// normalizeCodeSpan collapses line endings to spaces and strips one
// leading/trailing space when the content is bounded by spaces on both
// ends and isn't all spaces (CommonMark code span content rule).
func normalizeCodeSpan(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\n", " ")
	if len(raw) >= 2 && raw[0] == ' ' && raw[len(raw)-1] == ' ' && strings.Trim(raw, " ") != "" {
		return raw[1 : len(raw)-1]
	}
	return raw
}
