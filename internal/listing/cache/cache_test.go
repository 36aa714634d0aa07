package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeops/tradesearch/internal/listing"
	"github.com/tradeops/tradesearch/internal/query"
)

func TestBuildKeyStableAcrossPhrasings(t *testing.T) {
	// A parsed free-text filter and the equivalent manual filter share a key.
	parsed := &listing.Request{
		RawQuery: "rice from egypt",
		Parsed:   &query.ParsedQuery{GeneralTerm: "أرز", Origins: []string{"مصر"}},
		Limit:    25,
	}
	manual := &listing.Request{
		Parsed: &query.ParsedQuery{GeneralTerm: "أرز"},
		Manual: listing.ManualFilters{Origins: []string{"مصر"}},
		Limit:  25,
	}
	assert.Equal(t, BuildKey(parsed), BuildKey(manual))
}

func TestBuildKeyVariesWithFiltersAndPaging(t *testing.T) {
	base := &listing.Request{Parsed: &query.ParsedQuery{GeneralTerm: "أرز"}, Limit: 25}

	other := &listing.Request{Parsed: &query.ParsedQuery{GeneralTerm: "فلفل"}, Limit: 25}
	assert.NotEqual(t, BuildKey(base), BuildKey(other))

	paged := &listing.Request{Parsed: &query.ParsedQuery{GeneralTerm: "أرز"}, Limit: 25, Offset: 25}
	assert.NotEqual(t, BuildKey(base), BuildKey(paged))
}
