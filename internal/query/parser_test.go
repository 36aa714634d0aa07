package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow anchors relative-date resolution for deterministic assertions.
// Monday 2026-08-31.
var fixedNow = time.Date(2026, time.August, 31, 14, 30, 0, 0, time.UTC)

func parse(t *testing.T, raw string) *ParsedQuery {
	t.Helper()
	return ParseAt(raw, fixedNow)
}

func TestParseEmptyAndUnstructured(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace", "   \t  "},
		{"punctuation", "??!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := parse(t, tt.in)
			require.NotNil(t, q)
			assert.Empty(t, q.Dimensions())
		})
	}
}

func TestParseFreeTextFallsThroughAsGeneralTerm(t *testing.T) {
	q := parse(t, "blue widgets")
	assert.Equal(t, "blue widgets", q.GeneralTerm)
	assert.Empty(t, q.Products)
}

func TestParseOriginAndDestination(t *testing.T) {
	q := parse(t, "spices from Egypt to Iraq")
	assert.Equal(t, []string{"مصر"}, q.Origins)
	assert.Equal(t, []string{"العراق"}, q.Destinations)
	assert.Equal(t, "بهارات", q.GeneralTerm)
}

func TestParseArabicOrigin(t *testing.T) {
	q := parse(t, "شحنات من مصر")
	assert.Equal(t, []string{"مصر"}, q.Origins)
	assert.Empty(t, q.GeneralTerm)
}

func TestParseMultipleOrigins(t *testing.T) {
	q := parse(t, "rice from egypt and india")
	assert.Equal(t, []string{"مصر", "الهند"}, q.Origins)
	assert.Equal(t, "أرز", q.GeneralTerm)
}

func TestParseUnknownPlacePassesThrough(t *testing.T) {
	q := parse(t, "from atlantis")
	assert.Equal(t, []string{"atlantis"}, q.Origins)
}

func TestParseNumericConstraints(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		get   func(*ParsedQuery) *NumericConstraint
		want  NumericConstraint
		other func(*ParsedQuery) []*NumericConstraint
	}{
		{
			name: "english less than",
			in:   "value less than 50000",
			get:  func(q *ParsedQuery) *NumericConstraint { return q.TotalValue },
			want: NumericConstraint{Operator: OpLess, Value: 50000},
		},
		{
			name: "arabic more than containers",
			in:   "أكثر من 10 حاويات",
			get:  func(q *ParsedQuery) *NumericConstraint { return q.Containers },
			want: NumericConstraint{Operator: OpGreater, Value: 10},
		},
		{
			name: "symbol operator",
			in:   "weight >= 25.5 tons",
			get:  func(q *ParsedQuery) *NumericConstraint { return q.Weight },
			want: NumericConstraint{Operator: OpGreaterEq, Value: 25.5},
		},
		{
			name: "thousands separators",
			in:   "balance at least 1,250,000",
			get:  func(q *ParsedQuery) *NumericConstraint { return q.Balance },
			want: NumericConstraint{Operator: OpGreaterEq, Value: 1250000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := parse(t, tt.in)
			require.NotNil(t, tt.get(q))
			assert.Equal(t, tt.want, *tt.get(q))
		})
	}
}

func TestParseMetricWithoutOperatorIsNotAConstraint(t *testing.T) {
	q := parse(t, "container shipments")
	assert.Nil(t, q.Containers)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		column    string
		direction SortDirection
	}{
		{"lowest price per ton", "lowest price per ton", "price_per_ton", SortAsc},
		{"highest value", "highest total value", "total_value", SortDesc},
		{"question prefix", "what is the highest balance", "balance", SortDesc},
		{"arabic max", "أعلى قيمة", "total_value", SortDesc},
		{"earliest arrival", "earliest arrival", "eta", SortAsc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := parse(t, tt.in)
			assert.Equal(t, tt.column, q.SortColumn)
			assert.Equal(t, tt.direction, q.SortDirection)
		})
	}
}

func TestParseSortLeavesResidueTerm(t *testing.T) {
	q := parse(t, "lowest price per ton for pepper")
	assert.Equal(t, "price_per_ton", q.SortColumn)
	assert.Equal(t, SortAsc, q.SortDirection)
	assert.Equal(t, "فلفل", q.GeneralTerm)
}

func TestParseComparisonIsNotMistakenForSort(t *testing.T) {
	// "أقل" here is the comparison phrase "أقل من", not a superlative.
	q := parse(t, "أقل من 10 حاويات")
	assert.Empty(t, q.SortColumn)
	require.NotNil(t, q.Containers)
	assert.Equal(t, NumericConstraint{Operator: OpLess, Value: 10}, *q.Containers)
}

func TestParseExclusions(t *testing.T) {
	q := parse(t, "rice and pepper except basmati")
	assert.Equal(t, []string{"أرز", "فلفل"}, q.Products)
	assert.Equal(t, []string{"بسمتي"}, q.ExcludedProducts)
}

func TestParseArabicExclusion(t *testing.T) {
	// Arabic terms are translated toward English for matching, mirroring
	// the one-directional product tables.
	q := parse(t, "أرز ما عدا بسمتي")
	assert.Equal(t, []string{"basmati"}, q.ExcludedProducts)
	assert.Equal(t, "rice", q.GeneralTerm)
}

func TestParseRelativeDates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		from string
		to   string
	}{
		{"last n days", "last 30 days", "2026-08-01", "2026-08-31"},
		{"arabic last n days", "آخر 7 أيام", "2026-08-24", "2026-08-31"},
		{"yesterday", "yesterday", "2026-08-30", "2026-08-30"},
		{"this week", "this week", "2026-08-31", "2026-09-06"},
		{"last week", "last week", "2026-08-24", "2026-08-30"},
		{"this month", "هذا الشهر", "2026-08-01", "2026-08-31"},
		{"last month", "last month", "2026-07-01", "2026-07-31"},
		{"this quarter", "this quarter", "2026-07-01", "2026-09-30"},
		{"last year", "السنة الماضية", "2025-01-01", "2025-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := parse(t, tt.in)
			assert.Equal(t, tt.from, q.DateFrom)
			assert.Equal(t, tt.to, q.DateTo)
			assert.Zero(t, q.Month)
			assert.Zero(t, q.Year)
		})
	}
}

func TestParseMonthRange(t *testing.T) {
	q := parse(t, "shipments from january to march 2026")
	assert.Equal(t, "2026-01-01", q.DateFrom)
	assert.Equal(t, "2026-03-31", q.DateTo)
	assert.Empty(t, q.Origins)
	assert.Empty(t, q.GeneralTerm)
}

func TestParseArabicMonthRange(t *testing.T) {
	q := parse(t, "من يناير إلى مارس 2026")
	assert.Equal(t, "2026-01-01", q.DateFrom)
	assert.Equal(t, "2026-03-31", q.DateTo)
}

func TestParseMonthRangeDefaultsToCurrentYear(t *testing.T) {
	q := parse(t, "between april and june")
	assert.Equal(t, "2026-04-01", q.DateFrom)
	assert.Equal(t, "2026-06-30", q.DateTo)
}

func TestParseMonthAndYear(t *testing.T) {
	q := parse(t, "rice shipments in march 2025")
	assert.Equal(t, 3, q.Month)
	assert.Equal(t, 2025, q.Year)
	assert.Equal(t, "أرز", q.GeneralTerm)
	assert.False(t, q.HasDateRange())
}

func TestParseArabicMonth(t *testing.T) {
	q := parse(t, "شحنات يناير")
	assert.Equal(t, 1, q.Month)
	assert.Zero(t, q.Year)
}

func TestParseDateRangeExcludesMonthYear(t *testing.T) {
	// A relative date claims its span before the bare month/year scan runs.
	q := parse(t, "last month")
	assert.True(t, q.HasDateRange())
	assert.Zero(t, q.Month)
	assert.Zero(t, q.Year)
}

func TestParseYearIsNotANumericThreshold(t *testing.T) {
	q := parse(t, "value more than 2024")
	// The year scan runs first, so the 4-digit number is claimed as a year
	// and the dangling comparison finds nothing to bind.
	assert.Equal(t, 2024, q.Year)
	assert.Nil(t, q.TotalValue)
}

func TestParseStopwordsCarryNoInformation(t *testing.T) {
	for _, in := range []string{"show me all shipments", "اعرض كل الشحنات"} {
		q := parse(t, in)
		assert.Empty(t, q.Dimensions(), "input %q", in)
	}
}

func TestParseCombinedQuery(t *testing.T) {
	q := parse(t, "rice from egypt last 30 days value less than 50000")
	assert.Equal(t, []string{"مصر"}, q.Origins)
	assert.Equal(t, "2026-08-01", q.DateFrom)
	assert.Equal(t, "2026-08-31", q.DateTo)
	require.NotNil(t, q.TotalValue)
	assert.Equal(t, NumericConstraint{Operator: OpLess, Value: 50000}, *q.TotalValue)
	assert.Equal(t, "أرز", q.GeneralTerm)
}

func TestParseDeterministic(t *testing.T) {
	const in = "rice and pepper from egypt except basmati last 30 days"
	first := parse(t, in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, parse(t, in))
	}
}

func TestParseTermTranslation(t *testing.T) {
	// English terms translate to canonical Arabic; Arabic terms fall back to
	// the reverse table; unknown terms pass through untouched.
	tests := []struct {
		in   string
		want string
	}{
		{"rice", "أرز"},
		{"أرز", "rice"},
		{"widgets", "widgets"},
	}
	for _, tt := range tests {
		q := parse(t, tt.in)
		assert.Equal(t, tt.want, q.GeneralTerm, "input %q", tt.in)
	}
}

func TestDimensions(t *testing.T) {
	q := parse(t, "rice from egypt last 30 days")
	assert.ElementsMatch(t, []string{"general_term", "origins", "date_range"}, q.Dimensions())
}
