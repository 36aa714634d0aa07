package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeops/tradesearch/internal/query"
)

func TestEffectiveManualFiltersWin(t *testing.T) {
	req := &Request{
		Parsed: &query.ParsedQuery{
			GeneralTerm: "أرز",
			Origins:     []string{"مصر"},
			Month:       3,
			Year:        2025,
			SortColumn:  "total_value",
		},
		Manual: ManualFilters{
			Origins:    []string{"الهند"},
			DateFrom:   "2026-01-01",
			DateTo:     "2026-06-30",
			SortColumn: "balance",
		},
	}
	eff := req.Effective()

	assert.Equal(t, []string{"الهند"}, eff.Origins)
	assert.Equal(t, "2026-01-01", eff.DateFrom)
	assert.Equal(t, "2026-06-30", eff.DateTo)
	// A manual date range displaces the parsed month/year.
	assert.Zero(t, eff.Month)
	assert.Zero(t, eff.Year)
	assert.Equal(t, "balance", eff.SortColumn)
	assert.Equal(t, query.SortAsc, eff.SortDirection)
	// Dimensions only the parser produces pass through.
	assert.Equal(t, "أرز", eff.GeneralTerm)
}

func TestEffectiveManualProductsClearGeneralTerm(t *testing.T) {
	req := &Request{
		Parsed: &query.ParsedQuery{GeneralTerm: "أرز"},
		Manual: ManualFilters{Products: []string{"فلفل"}},
	}
	eff := req.Effective()
	assert.Equal(t, []string{"فلفل"}, eff.Products)
	assert.Empty(t, eff.GeneralTerm)
}

func TestEffectiveLeavesParsedWhenNoManual(t *testing.T) {
	parsed := &query.ParsedQuery{
		Products: []string{"أرز", "فلفل"},
		Month:    1,
	}
	req := &Request{Parsed: parsed}
	eff := req.Effective()
	assert.Equal(t, parsed.Products, eff.Products)
	assert.Equal(t, 1, eff.Month)
	// Effective returns a copy; mutating it never touches the parsed query.
	eff.Month = 12
	assert.Equal(t, 1, parsed.Month)
}
