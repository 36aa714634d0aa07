package lexicon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		in    string
		month int
		ok    bool
	}{
		{"january", 1, true},
		{"Jan", 1, true},
		{"سبتمبر", 9, true},
		{"ابريل", 4, true},
		{"egypt", 0, false},
	}
	for _, tt := range tests {
		m, ok := MonthNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.month, m, "input %q", tt.in)
	}
}

func TestMonthSpan(t *testing.T) {
	r := MonthSpan(2026, time.January, time.March)
	assert.Equal(t, "2026-01-01", r.From.Format(DateLayout))
	assert.Equal(t, "2026-03-31", r.To.Format(DateLayout))

	// February end in a leap year.
	r = MonthSpan(2024, time.February, time.February)
	assert.Equal(t, "2024-02-29", r.To.Format(DateLayout))
}

func TestTranslateProduct(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rice", "أرز"},
		{"Basmati Rice", "أرز بسمتي"},
		// Longest entry wins inside a phrase, on word boundaries.
		{"organic basmati rice", "organic أرز بسمتي"},
		{"pricey", "pricey"},
		{"widgets", "widgets"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TranslateProduct(tt.in), "input %q", tt.in)
	}
}

func TestTranslateTermAsymmetry(t *testing.T) {
	// Forward first; the reverse table is consulted only when the forward
	// pass changed nothing.
	assert.Equal(t, "أرز", TranslateTerm("rice"))
	assert.Equal(t, "rice", TranslateTerm("أرز"))
	assert.Equal(t, "widgets", TranslateTerm("widgets"))
}

func TestTranslatePlace(t *testing.T) {
	assert.Equal(t, "مصر", TranslatePlace("Egypt"))
	assert.Equal(t, "السعودية", TranslatePlace("saudi arabia"))
	// Arabic and unknown names pass through.
	assert.Equal(t, "مصر", TranslatePlace("مصر"))
	assert.Equal(t, "atlantis", TranslatePlace("atlantis"))
}

func TestIsMetaWord(t *testing.T) {
	assert.True(t, IsMetaWord("Shipments"))
	assert.True(t, IsMetaWord("الشحنات"))
	assert.False(t, IsMetaWord("rice"))
	assert.False(t, IsMetaWord("and"))
}
