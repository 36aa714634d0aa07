package listing

import (
	"github.com/tradeops/tradesearch/internal/query"
)

// ManualFilters are the explicit UI filter controls that accompany a search.
// They cover the same dimensions as the parser output; a set manual filter
// always wins over whatever was extracted from free text.
type ManualFilters struct {
	Products      []string            `json:"products,omitempty"`
	Origins       []string            `json:"origins,omitempty"`
	Destinations  []string            `json:"destinations,omitempty"`
	Month         int                 `json:"month,omitempty"`
	Year          int                 `json:"year,omitempty"`
	DateFrom      string              `json:"dateFrom,omitempty"`
	DateTo        string              `json:"dateTo,omitempty"`
	SortColumn    string              `json:"sortColumn,omitempty"`
	SortDirection query.SortDirection `json:"sortDirection,omitempty"`
}

// Request is a fully specified listing request: the parsed free-text query,
// any manual filters, and paging.
type Request struct {
	RawQuery string
	Parsed   *query.ParsedQuery
	Manual   ManualFilters
	Limit    int
	Offset   int
}

// Effective merges the parsed query with the manual filters into the filter
// set actually executed. Manual values override parsed ones dimension by
// dimension; dimensions only the parser produced (exclusions, numeric
// constraints, general term) pass through unchanged.
func (r *Request) Effective() *query.ParsedQuery {
	eff := *r.Parsed
	if len(r.Manual.Products) > 0 {
		eff.Products = r.Manual.Products
		eff.GeneralTerm = ""
	}
	if len(r.Manual.Origins) > 0 {
		eff.Origins = r.Manual.Origins
	}
	if len(r.Manual.Destinations) > 0 {
		eff.Destinations = r.Manual.Destinations
	}
	if r.Manual.DateFrom != "" || r.Manual.DateTo != "" {
		eff.DateFrom = r.Manual.DateFrom
		eff.DateTo = r.Manual.DateTo
		eff.Month = 0
		eff.Year = 0
	} else if r.Manual.Month != 0 || r.Manual.Year != 0 {
		eff.Month = r.Manual.Month
		eff.Year = r.Manual.Year
		eff.DateFrom = ""
		eff.DateTo = ""
	}
	if r.Manual.SortColumn != "" {
		eff.SortColumn = r.Manual.SortColumn
		eff.SortDirection = r.Manual.SortDirection
		if eff.SortDirection == "" {
			eff.SortDirection = query.SortAsc
		}
	}
	return &eff
}
