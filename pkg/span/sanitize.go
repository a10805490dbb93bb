package span

import "unicode/utf8"

// Repair is a single invalid-UTF-8 repair record: the byte offset at which
// an invalid sequence was replaced with U+FFFD.
type Repair struct {
	Offset int
}

// SanitizeReport summarizes the repairs performed by Sanitize (spec §7:
// "the caller sees a warning channel... byte offset of the first repair and
// total repair count").
type SanitizeReport struct {
	FirstOffset int
	Count       int
}

// Any reports whether at least one repair was made.
func (r SanitizeReport) Any() bool { return r.Count > 0 }

// Sanitize replaces invalid UTF-8 byte sequences in src with U+FFFD and
// returns the repaired text plus a report of what was repaired. Valid input
// is returned unchanged (same backing array is not guaranteed either way;
// callers should treat the result as the text to parse).
func Sanitize(src []byte) ([]byte, SanitizeReport) {
	if utf8.Valid(src) {
		return src, SanitizeReport{}
	}

	out := make([]byte, 0, len(src)+8)
	report := SanitizeReport{FirstOffset: -1}

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			if report.FirstOffset < 0 {
				report.FirstOffset = i
			}
			report.Count++
			out = append(out, "�"...)
			if size == 0 {
				size = 1
			}
			i += size
			continue
		}
		out = append(out, src[i:i+size]...)
		i += size
	}

	if report.FirstOffset < 0 {
		report.FirstOffset = 0
	}
	return out, report
}
