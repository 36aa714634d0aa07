package query

import (
	"regexp"
	"strconv"
	"time"

	"github.com/tradeops/tradesearch/internal/query/lexicon"
)

// monthRangePatterns match "from <month> to <month>" and "between <month>
// and <month>" in both languages, with an optional 4-digit year after either
// month phrase. A candidate span is only claimed when both captured phrases
// resolve as month names, which keeps "from Egypt to Iraq" available for
// origin/destination extraction.
var monthRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfrom\s+(\p{L}+)(?:\s+(\d{4}))?\s+to\s+(\p{L}+)(?:\s+(\d{4}))?`),
	regexp.MustCompile(`(?i)\bbetween\s+(\p{L}+)(?:\s+(\d{4}))?\s+and\s+(\p{L}+)(?:\s+(\d{4}))?`),
	regexp.MustCompile(`من\s+(\p{L}+)(?:\s+(\d{4}))?\s+(?:إلى|الى)\s+(\p{L}+)(?:\s+(\d{4}))?`),
	regexp.MustCompile(`بين\s+(\p{L}+)(?:\s+(\d{4}))?\s+و\s*(\p{L}+)(?:\s+(\d{4}))?`),
}

var yearRe = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// extractRelativeDates resolves the closed relative-date vocabulary against
// the whole buffer. First rule wins; day-count phrases are ordered before
// named periods in the table.
func extractRelativeDates(buf string, q *ParsedQuery, now time.Time) string {
	for _, rule := range lexicon.RelativeDateRules {
		m := rule.Pattern.FindStringSubmatchIndex(buf)
		if m == nil {
			continue
		}
		n := 0
		if rule.Pattern.NumSubexp() > 0 && m[2] >= 0 {
			n, _ = strconv.Atoi(buf[m[2]:m[3]])
		}
		r := rule.Resolve(now, n)
		q.DateFrom = r.From.Format(lexicon.DateLayout)
		q.DateTo = r.To.Format(lexicon.DateLayout)
		return cut(buf, m[0], m[1])
	}
	return buf
}

// extractMonthRange handles the explicit month-range grammar. It runs only
// when no relative date matched.
func extractMonthRange(buf string, q *ParsedQuery, now time.Time) string {
	if q.HasDateRange() {
		return buf
	}
	for _, pattern := range monthRangePatterns {
		for _, m := range pattern.FindAllStringSubmatchIndex(buf, -1) {
			fromMonth, ok1 := lexicon.MonthNumber(buf[m[2]:m[3]])
			toMonth, ok2 := lexicon.MonthNumber(buf[m[6]:m[7]])
			if !ok1 || !ok2 {
				continue
			}
			year := now.Year()
			if m[4] >= 0 {
				year, _ = strconv.Atoi(buf[m[4]:m[5]])
			} else if m[8] >= 0 {
				year, _ = strconv.Atoi(buf[m[8]:m[9]])
			}
			r := lexicon.MonthSpan(year, time.Month(fromMonth), time.Month(toMonth))
			q.DateFrom = r.From.Format(lexicon.DateLayout)
			q.DateTo = r.To.Format(lexicon.DateLayout)
			return cut(buf, m[0], m[1])
		}
	}
	return buf
}

// extractMonthYear picks up a bare 4-digit year and a single month name when
// no date range was found. The two scans are independent; either can match
// alone.
func extractMonthYear(buf string, q *ParsedQuery, now time.Time) string {
	if q.HasDateRange() {
		return buf
	}
	if m := yearRe.FindStringIndex(buf); m != nil {
		q.Year, _ = strconv.Atoi(buf[m[0]:m[1]])
		buf = cut(buf, m[0], m[1])
	}
	start, end, month := -1, -1, 0
	for _, name := range lexicon.MonthNames() {
		s, e := findKeyword(buf, name.Name)
		if s < 0 {
			continue
		}
		// First occurrence wins; on position ties prefer the longer
		// spelling so "january" beats "jan".
		if start < 0 || s < start || (s == start && e > end) {
			start, end, month = s, e, name.Month
		}
	}
	if month != 0 {
		// A month name that is part of a larger Latin word was already
		// rejected by the boundary check in findKeyword.
		q.Month = month
		buf = cut(buf, start, end)
	}
	return buf
}
