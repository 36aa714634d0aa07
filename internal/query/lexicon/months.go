// Package lexicon holds the static bilingual lookup tables used by the query
// parser: relative-date phrases, month names, metric keywords, product-name
// translations, and location-name translations. All tables are immutable
// after package initialisation, and a lookup miss always returns the input
// unchanged rather than an error.
package lexicon

import "strings"

// englishMonths maps English month spellings to month numbers. Multiple
// spellings per month are legal.
var englishMonths = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// arabicMonths maps Arabic month spellings to month numbers, including
// hamza-less variants.
var arabicMonths = map[string]int{
	"يناير": 1,
	"فبراير": 2,
	"مارس": 3,
	"أبريل": 4, "ابريل": 4,
	"مايو": 5,
	"يونيو": 6, "يونيه": 6,
	"يوليو": 7, "يوليه": 7,
	"أغسطس": 8, "اغسطس": 8,
	"سبتمبر": 9,
	"أكتوبر": 10, "اكتوبر": 10,
	"نوفمبر": 11,
	"ديسمبر": 12,
}

// MonthNumber resolves a month phrase against both language tables. The
// lookup is language-agnostic: whichever table matches is used.
func MonthNumber(phrase string) (int, bool) {
	p := strings.TrimSpace(phrase)
	if m, ok := arabicMonths[p]; ok {
		return m, true
	}
	if m, ok := englishMonths[strings.ToLower(p)]; ok {
		return m, true
	}
	return 0, false
}

// MonthNames returns every month spelling from both language tables paired
// with its month number. The slice is rebuilt on each call so callers may
// not mutate shared state.
func MonthNames() []MonthName {
	names := make([]MonthName, 0, len(englishMonths)+len(arabicMonths))
	for name, num := range englishMonths {
		names = append(names, MonthName{Name: name, Month: num, Arabic: false})
	}
	for name, num := range arabicMonths {
		names = append(names, MonthName{Name: name, Month: num, Arabic: true})
	}
	return names
}

// MonthName is a single month spelling from one of the language tables.
type MonthName struct {
	Name   string
	Month  int
	Arabic bool
}
