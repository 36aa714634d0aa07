// Package listing turns a parsed query into a shipment listing: it merges
// parsed filters with manual UI filters, builds the corresponding SQL, and
// executes it against the shipments database behind a circuit breaker.
package listing

import "time"

// Shipment is one row of the shipments table. Product and location names are
// stored in Arabic, the canonical data language.
type Shipment struct {
	ID          int64      `json:"id"`
	Reference   string     `json:"reference"`
	Product     string     `json:"product"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	ShippedAt   time.Time  `json:"shippedAt"`
	ETA         *time.Time `json:"eta,omitempty"`
	TotalValue  float64    `json:"totalValue"`
	Containers  int        `json:"containers"`
	WeightTons  float64    `json:"weightTons"`
	Balance     float64    `json:"balance"`
}

// Result is a page of shipments plus the total match count before paging.
type Result struct {
	Shipments []Shipment `json:"shipments"`
	TotalHits int        `json:"totalHits"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
