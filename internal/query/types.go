// Package query parses free-text search-bar input, in English, Arabic, or a
// mixture of both, into a structured filter/sort specification. Parsing is a
// pure function of the input string and the static lexicon tables: it never
// fails, and any input (including empty or fully unstructured text) yields a
// valid, possibly all-absent, result.
package query

// Operator is a comparison operator attached to a numeric constraint.
type Operator string

const (
	OpLess      Operator = "<"
	OpGreater   Operator = ">"
	OpLessEq    Operator = "<="
	OpGreaterEq Operator = ">="
	OpEqual     Operator = "="
)

// NumericConstraint is an (operator, value) pair on a single quantity.
type NumericConstraint struct {
	Operator Operator `json:"operator"`
	Value    float64  `json:"value"`
}

// SortDirection is the requested result ordering.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParsedQuery is the parser's sole output. Every field is optional: absence
// means no constraint was extracted from the input.
//
// DateFrom/DateTo and Month/Year are mutually exclusive by construction, and
// ExcludedProducts never overlaps Products or GeneralTerm because the
// exclusion clause is consumed before residue classification runs.
type ParsedQuery struct {
	GeneralTerm      string             `json:"generalTerm,omitempty"`
	Products         []string           `json:"products,omitempty"`
	ExcludedProducts []string           `json:"excludedProducts,omitempty"`
	Origins          []string           `json:"origins,omitempty"`
	Destinations     []string           `json:"destinations,omitempty"`
	Month            int                `json:"month,omitempty"`
	Year             int                `json:"year,omitempty"`
	DateFrom         string             `json:"dateFrom,omitempty"`
	DateTo           string             `json:"dateTo,omitempty"`
	TotalValue       *NumericConstraint `json:"totalValue,omitempty"`
	Containers       *NumericConstraint `json:"containers,omitempty"`
	Weight           *NumericConstraint `json:"weight,omitempty"`
	Balance          *NumericConstraint `json:"balance,omitempty"`
	SortColumn       string             `json:"sortColumn,omitempty"`
	SortDirection    SortDirection      `json:"sortDirection,omitempty"`
}

// HasDateRange reports whether an explicit or relative date range was found.
func (q *ParsedQuery) HasDateRange() bool {
	return q.DateFrom != "" || q.DateTo != ""
}

// Dimensions lists the names of the populated filter dimensions, used for
// analytics and metrics.
func (q *ParsedQuery) Dimensions() []string {
	var dims []string
	if q.GeneralTerm != "" {
		dims = append(dims, "general_term")
	}
	if len(q.Products) > 0 {
		dims = append(dims, "products")
	}
	if len(q.ExcludedProducts) > 0 {
		dims = append(dims, "excluded_products")
	}
	if len(q.Origins) > 0 {
		dims = append(dims, "origins")
	}
	if len(q.Destinations) > 0 {
		dims = append(dims, "destinations")
	}
	if q.HasDateRange() {
		dims = append(dims, "date_range")
	}
	if q.Month != 0 {
		dims = append(dims, "month")
	}
	if q.Year != 0 {
		dims = append(dims, "year")
	}
	if q.TotalValue != nil {
		dims = append(dims, "total_value")
	}
	if q.Containers != nil {
		dims = append(dims, "containers")
	}
	if q.Weight != nil {
		dims = append(dims, "weight")
	}
	if q.Balance != nil {
		dims = append(dims, "balance")
	}
	if q.SortColumn != "" {
		dims = append(dims, "sort")
	}
	return dims
}
