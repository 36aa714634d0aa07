package query

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tradeops/tradesearch/internal/query/lexicon"
)

var englishConjunctionRe = regexp.MustCompile(`(?i)\s+(?:` +
	strings.Join(lexicon.EnglishConjunctions, "|") + `)\s+`)

// squeeze collapses runs of whitespace into single spaces and trims the ends.
func squeeze(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cut removes buf[start:end] and renormalises whitespace.
func cut(buf string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(buf) {
		end = len(buf)
	}
	if start >= end {
		return buf
	}
	return squeeze(buf[:start] + " " + buf[end:])
}

// asciiLower lower-cases A-Z only. Unlike strings.ToLower it is guaranteed to
// preserve byte offsets for any input, which keeps match positions valid
// against the original buffer.
func asciiLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func hasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// findKeyword locates kw in buf and returns its byte span, or (-1, -1).
// Latin keywords match case-insensitively on word boundaries; Arabic
// keywords match on Arabic-letter boundaries so "من" is not found inside
// "منتجات".
func findKeyword(buf, kw string) (int, int) {
	if hasArabic(kw) {
		start := 0
		for {
			idx := strings.Index(buf[start:], kw)
			if idx < 0 {
				return -1, -1
			}
			idx += start
			if arabicBoundary(buf, idx, idx+len(kw)) {
				return idx, idx + len(kw)
			}
			start = idx + len(kw)
		}
	}
	lower := asciiLower(buf)
	k := asciiLower(kw)
	start := 0
	for {
		idx := strings.Index(lower[start:], k)
		if idx < 0 {
			return -1, -1
		}
		idx += start
		if latinBoundary(lower, idx, idx+len(k)) {
			return idx, idx + len(k)
		}
		start = idx + 1
	}
}

// findFirstListed checks keywords in list order and returns the span of the
// first one present in buf, or (-1, -1).
func findFirstListed(buf string, keywords []string) (int, int) {
	for _, kw := range keywords {
		if s, e := findKeyword(buf, kw); s >= 0 {
			return s, e
		}
	}
	return -1, -1
}

// findEarliestKeyword returns the span of the keyword occurring earliest in
// buf, preferring the longer keyword on position ties.
func findEarliestKeyword(buf string, keywords []string) (int, int) {
	best, bestEnd := -1, -1
	for _, kw := range keywords {
		s, e := findKeyword(buf, kw)
		if s < 0 {
			continue
		}
		if best < 0 || s < best || (s == best && e > bestEnd) {
			best, bestEnd = s, e
		}
	}
	return best, bestEnd
}

func latinBoundary(s string, start, end int) bool {
	alnum := func(b byte) bool {
		return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
	}
	if start > 0 && alnum(s[start-1]) {
		return false
	}
	if end < len(s) && alnum(s[end]) {
		return false
	}
	return true
}

func arabicBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if unicode.Is(unicode.Arabic, r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if unicode.Is(unicode.Arabic, r) {
			return false
		}
	}
	return true
}

// runeStartBack moves idx left to the nearest rune start.
func runeStartBack(s string, idx int) int {
	for idx > 0 && !utf8.RuneStart(s[idx]) {
		idx--
	}
	return idx
}

// runeStartFwd moves idx right to the nearest rune start (or len(s)).
func runeStartFwd(s string, idx int) int {
	for idx < len(s) && !utf8.RuneStart(s[idx]) {
		idx++
	}
	return idx
}
