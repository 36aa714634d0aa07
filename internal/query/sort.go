package query

import (
	"strings"
	"time"

	"github.com/tradeops/tradesearch/internal/query/lexicon"
)

// sortScan pairs a modifier vocabulary with the direction it implies.
type sortScan struct {
	modifiers []string
	direction SortDirection
}

// sortScans is checked in the fixed language-and-polarity order:
// Arabic-minimum, Arabic-maximum, English-minimum, English-maximum. The
// first hit across the whole ordered scan wins.
var sortScans = []sortScan{
	{lexicon.ArabicMinWords, SortAsc},
	{lexicon.ArabicMaxWords, SortDesc},
	{lexicon.EnglishMinWords, SortAsc},
	{lexicon.EnglishMaxWords, SortDesc},
}

// extractSort detects superlative queries of the form
// "[question prefix] <modifier> <metric>", e.g. "lowest price per ton" or
// "أعلى رصيد". The metric keyword must directly follow the modifier, which
// keeps the "أقل" of the comparison phrase "أقل من 10" from being read as a
// sort request.
func extractSort(buf string, q *ParsedQuery, now time.Time) string {
	for _, scan := range sortScans {
		for _, mod := range scan.modifiers {
			ms, me := findKeyword(buf, mod)
			if ms < 0 {
				continue
			}
			col, ce := matchColumnAt(buf, me)
			if col == "" {
				continue
			}
			start := extendQuestionPrefix(buf, ms)
			q.SortColumn = col
			q.SortDirection = scan.direction
			return cut(buf, start, ce)
		}
	}
	return buf
}

// matchColumnAt tries to match a sort-column keyword starting at pos
// (allowing leading whitespace and an optional English article). It returns
// the column and the end of the matched keyword, or ("", -1).
func matchColumnAt(buf string, pos int) (string, int) {
	for pos < len(buf) && buf[pos] == ' ' {
		pos++
	}
	if rest := asciiLower(buf[pos:]); strings.HasPrefix(rest, "the ") {
		pos += len("the ")
	}
	for _, entry := range lexicon.SortColumns {
		for _, kw := range entry.Keywords {
			if end, ok := keywordPrefixAt(buf, pos, kw); ok {
				return entry.Column, end
			}
		}
	}
	return "", -1
}

// keywordPrefixAt reports whether kw begins exactly at pos in buf, honouring
// the same boundary rules as findKeyword.
func keywordPrefixAt(buf string, pos int, kw string) (int, bool) {
	if pos+len(kw) > len(buf) {
		return -1, false
	}
	if hasArabic(kw) {
		if buf[pos:pos+len(kw)] == kw && arabicBoundary(buf, pos, pos+len(kw)) {
			return pos + len(kw), true
		}
		return -1, false
	}
	if asciiLower(buf[pos:pos+len(kw)]) == asciiLower(kw) && latinBoundary(asciiLower(buf), pos, pos+len(kw)) {
		return pos + len(kw), true
	}
	return -1, false
}

// extendQuestionPrefix widens a matched span backwards over an immediately
// preceding question prefix so "what is the lowest price" is fully consumed.
func extendQuestionPrefix(buf string, start int) int {
	head := strings.TrimRight(buf[:start], " ")
	for _, prefix := range lexicon.QuestionPrefixes {
		if hasArabic(prefix) {
			if strings.HasSuffix(head, prefix) {
				return len(head) - len(prefix)
			}
			continue
		}
		if strings.HasSuffix(asciiLower(head), prefix) {
			cutAt := len(head) - len(prefix)
			if latinBoundary(asciiLower(head), cutAt, len(head)) {
				return cutAt
			}
		}
	}
	return start
}
