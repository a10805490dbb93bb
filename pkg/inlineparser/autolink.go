package inlineparser

import "strings"

// scanStrictAutolink recognises CommonMark's `<scheme:...>` or `<email>`
// autolink form starting at s[i] (s[i] must be '<').
func scanStrictAutolink(s string, i int) (url string, isEmail bool, next int, ok bool) {
	j := i + 1
	close := strings.IndexByte(s[j:], '>')
	if close < 0 {
		return "", false, 0, false
	}
	body := s[j : j+close]
	if body == "" || strings.ContainsAny(body, " \t\n<") {
		return "", false, 0, false
	}
	if looksLikeURIScheme(body) {
		return body, false, j + close + 1, true
	}
	if looksLikeEmailAddress(body) {
		return body, true, j + close + 1, true
	}
	return "", false, 0, false
}

func looksLikeURIScheme(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 2 || colon > 33 {
		return false
	}
	scheme := s[:colon]
	if !isASCIILetter(scheme[0]) {
		return false
	}
	for i := 1; i < len(scheme); i++ {
		c := scheme[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '+' && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

func looksLikeEmailAddress(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	for i := 0; i < len(local); i++ {
		c := local[i]
		if !isASCIIAlnum(c) && !strings.ContainsRune(".!#$%&'*+/=?^_`{|}~-", rune(c)) {
			return false
		}
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 1 {
		return false
	}
	for _, lbl := range labels {
		if lbl == "" {
			return false
		}
		for i := 0; i < len(lbl); i++ {
			c := lbl[i]
			if !isASCIIAlnum(c) && c != '-' {
				return false
			}
		}
		if lbl[0] == '-' || lbl[len(lbl)-1] == '-' {
			return false
		}
	}
	return true
}

// scanGFMAutolinkLiteral recognises a bare "www."-prefixed or
// scheme-prefixed URL, or a bare email address, with trailing punctuation
// stripped per spec §4.2 point 10 (resolves the GFM autolink literal Open
// Question: trailing ASCII punctuation not part of a balanced-paren pair
// is excluded from the link and re-emitted as plain text).
func scanGFMAutolinkLiteral(s string, i int) (url string, isEmail bool, next int, ok bool) {
	rest := s[i:]
	switch {
	case strings.HasPrefix(rest, "www."):
		end := scanLiteralExtent(rest)
		if end < len("www.") {
			return "", false, 0, false
		}
		return "http://" + rest[:end], false, i + end, true
	case hasKnownSchemePrefix(rest):
		end := scanLiteralExtent(rest)
		scheme := schemePrefix(rest)
		if end <= len(scheme)+3 {
			return "", false, 0, false
		}
		return rest[:end], false, i + end, true
	default:
		if end, ok2 := scanBareEmail(rest); ok2 {
			return rest[:end], true, i + end, true
		}
	}
	return "", false, 0, false
}

func hasKnownSchemePrefix(s string) bool {
	for _, sch := range []string{"http://", "https://", "ftp://"} {
		if strings.HasPrefix(s, sch) {
			return true
		}
	}
	return false
}

func schemePrefix(s string) string {
	for _, sch := range []string{"http://", "https://", "ftp://"} {
		if strings.HasPrefix(s, sch) {
			return sch
		}
	}
	return ""
}

// scanLiteralExtent returns the byte length of the maximal run of
// non-whitespace characters starting at s[0] that forms a candidate URL,
// with trailing punctuation and unbalanced closing parens stripped.
func scanLiteralExtent(s string) int {
	end := 0
	depth := 0
	for end < len(s) {
		c := s[end]
		if c == ' ' || c == '\t' || c == '\n' || c == '<' {
			break
		}
		if c == '(' {
			depth++
		}
		if c == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
		end++
	}
	for end > 0 {
		c := s[end-1]
		if c == ')' && depth < 0 {
			break
		}
		if strings.ContainsRune("?!.,:*_~'\"", rune(c)) {
			end--
			continue
		}
		if c == ';' {
			// Possible HTML entity suffix (e.g. "&amp;") -- strip it and
			// the preceding "&word" run.
			if amp := strings.LastIndexByte(s[:end-1], '&'); amp >= 0 {
				maybeEntity := s[amp:end]
				if isEntityLike(maybeEntity) {
					end = amp
					continue
				}
			}
			end--
			continue
		}
		break
	}
	return end
}

func isEntityLike(s string) bool {
	if len(s) < 3 || s[0] != '&' || s[len(s)-1] != ';' {
		return false
	}
	for i := 1; i < len(s)-1; i++ {
		if !isASCIIAlnum(s[i]) {
			return false
		}
	}
	return true
}

func scanBareEmail(s string) (end int, ok bool) {
	i := 0
	for i < len(s) && (isASCIIAlnum(s[i]) || strings.ContainsRune(".!#$%&'*+/=?^_`{|}~-", rune(s[i]))) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '@' {
		return 0, false
	}
	i++
	start := i
	for i < len(s) && (isASCIIAlnum(s[i]) || s[i] == '-' || s[i] == '.') {
		i++
	}
	if i == start {
		return 0, false
	}
	if !strings.Contains(s[start:i], ".") {
		return 0, false
	}
	return i, true
}
