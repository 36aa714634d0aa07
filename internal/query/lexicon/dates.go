package lexicon

import (
	"regexp"
	"time"
)

// DateLayout is the calendar-date form handed to the listing backend.
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar interval.
type DateRange struct {
	From time.Time
	To   time.Time
}

// RelativeDateRule pairs a phrase pattern with the date-range computation it
// stands for. Patterns with a capture group receive the captured integer as n.
type RelativeDateRule struct {
	Pattern *regexp.Regexp
	Resolve func(now time.Time, n int) DateRange
}

// RelativeDateRules is the closed relative-date vocabulary, checked in order.
// Explicit day-count phrases come before named-period phrases so that
// "last 7 days" is never claimed by the "last" of a named period.
//
// Arabic patterns deliberately avoid \b: Go's word boundary is ASCII-only and
// never matches between Arabic letters.
var RelativeDateRules = []RelativeDateRule{
	{regexp.MustCompile(`(?i)\b(?:last|past)\s+(\d{1,4})\s+days?\b`), lastNDays},
	{regexp.MustCompile(`آخر\s+(\d{1,4})\s+(?:يوم|أيام|ايام|يوما)`), lastNDays},

	{regexp.MustCompile(`(?i)\byesterday\b`), dayOffset(-1)},
	{regexp.MustCompile(`أمس`), dayOffset(-1)},
	{regexp.MustCompile(`(?i)\btoday\b`), dayOffset(0)},
	{regexp.MustCompile(`(?i)\btomorrow\b`), dayOffset(1)},
	{regexp.MustCompile(`غداً`), dayOffset(1)},
	{regexp.MustCompile(`غدا`), dayOffset(1)},

	{regexp.MustCompile(`(?i)\bthis\s+week\b`), weekOffset(0)},
	{regexp.MustCompile(`هذا\s+الأسبوع`), weekOffset(0)},
	{regexp.MustCompile(`هذا\s+الاسبوع`), weekOffset(0)},
	{regexp.MustCompile(`(?i)\blast\s+week\b`), weekOffset(-1)},
	{regexp.MustCompile(`الأسبوع\s+الماضي`), weekOffset(-1)},
	{regexp.MustCompile(`الاسبوع\s+الماضي`), weekOffset(-1)},
	{regexp.MustCompile(`(?i)\bnext\s+week\b`), weekOffset(1)},
	{regexp.MustCompile(`الأسبوع\s+القادم`), weekOffset(1)},
	{regexp.MustCompile(`الاسبوع\s+القادم`), weekOffset(1)},

	{regexp.MustCompile(`(?i)\bthis\s+month\b`), monthOffset(0)},
	{regexp.MustCompile(`هذا\s+الشهر`), monthOffset(0)},
	{regexp.MustCompile(`(?i)\blast\s+month\b`), monthOffset(-1)},
	{regexp.MustCompile(`الشهر\s+الماضي`), monthOffset(-1)},
	{regexp.MustCompile(`(?i)\bnext\s+month\b`), monthOffset(1)},
	{regexp.MustCompile(`الشهر\s+القادم`), monthOffset(1)},

	{regexp.MustCompile(`(?i)\bthis\s+quarter\b`), quarterOffset(0)},
	{regexp.MustCompile(`هذا\s+الربع`), quarterOffset(0)},
	{regexp.MustCompile(`(?i)\blast\s+quarter\b`), quarterOffset(-1)},
	{regexp.MustCompile(`الربع\s+الماضي`), quarterOffset(-1)},

	{regexp.MustCompile(`(?i)\bthis\s+year\b`), yearOffset(0)},
	{regexp.MustCompile(`هذه\s+السنة`), yearOffset(0)},
	{regexp.MustCompile(`(?i)\blast\s+year\b`), yearOffset(-1)},
	{regexp.MustCompile(`السنة\s+الماضية`), yearOffset(-1)},
	{regexp.MustCompile(`العام\s+الماضي`), yearOffset(-1)},
}

func lastNDays(now time.Time, n int) DateRange {
	day := truncateDay(now)
	return DateRange{From: day.AddDate(0, 0, -n), To: day}
}

func dayOffset(days int) func(time.Time, int) DateRange {
	return func(now time.Time, _ int) DateRange {
		day := truncateDay(now).AddDate(0, 0, days)
		return DateRange{From: day, To: day}
	}
}

// weekOffset resolves a whole Monday-to-Sunday week relative to now.
func weekOffset(weeks int) func(time.Time, int) DateRange {
	return func(now time.Time, _ int) DateRange {
		day := truncateDay(now)
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := day.AddDate(0, 0, 1-weekday+7*weeks)
		return DateRange{From: monday, To: monday.AddDate(0, 0, 6)}
	}
}

func monthOffset(months int) func(time.Time, int) DateRange {
	return func(now time.Time, _ int) DateRange {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, months, 0)
		return DateRange{From: first, To: first.AddDate(0, 1, -1)}
	}
}

func quarterOffset(quarters int) func(time.Time, int) DateRange {
	return func(now time.Time, _ int) DateRange {
		qMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		first := time.Date(now.Year(), qMonth, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 3*quarters, 0)
		return DateRange{From: first, To: first.AddDate(0, 3, -1)}
	}
}

func yearOffset(years int) func(time.Time, int) DateRange {
	return func(now time.Time, _ int) DateRange {
		first := time.Date(now.Year()+years, time.January, 1, 0, 0, 0, 0, now.Location())
		return DateRange{From: first, To: first.AddDate(1, 0, -1)}
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthSpan returns the inclusive range covering whole months from (year,
// from) through (year, to).
func MonthSpan(year int, from, to time.Month) DateRange {
	first := time.Date(year, from, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, to, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	return DateRange{From: first, To: last}
}
