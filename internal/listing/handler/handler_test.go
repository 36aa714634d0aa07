package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tradeops/tradesearch/pkg/errors"
	"github.com/tradeops/tradesearch/pkg/metrics"

	"github.com/tradeops/tradesearch/internal/listing"
	"github.com/tradeops/tradesearch/internal/query"
)

// Prometheus collectors register globally, so the package shares one set.
var testMetrics = metrics.New()

type fakeStore struct {
	lastReq *listing.Request
	result  *listing.Result
	err     error
}

func (f *fakeStore) Search(ctx context.Context, req *listing.Request) (*listing.Result, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestHandler(store *fakeStore) *Handler {
	return New(store, nil, nil, testMetrics, 25, 200)
}

func TestSearchParsesFreeText(t *testing.T) {
	store := &fakeStore{result: &listing.Result{
		Shipments: []listing.Shipment{{ID: 1, Reference: "SH-1001", Product: "أرز"}},
		TotalHits: 1,
	}}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments/search?q=rice+from+egypt", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.lastReq)
	assert.Equal(t, "rice from egypt", store.lastReq.RawQuery)
	assert.Equal(t, []string{"مصر"}, store.lastReq.Parsed.Origins)
	assert.Equal(t, 25, store.lastReq.Limit)

	var resp struct {
		TotalHits int                `json:"totalHits"`
		Parsed    *query.ParsedQuery `json:"parsed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalHits)
	require.NotNil(t, resp.Parsed)
	assert.Equal(t, "أرز", resp.Parsed.GeneralTerm)
}

func TestSearchManualFilters(t *testing.T) {
	store := &fakeStore{result: &listing.Result{Shipments: []listing.Shipment{}}}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/shipments/search?origin=%D9%85%D8%B5%D8%B1&sort=balance&dir=desc&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"مصر"}, store.lastReq.Manual.Origins)
	assert.Equal(t, "balance", store.lastReq.Manual.SortColumn)
	assert.Equal(t, query.SortDesc, store.lastReq.Manual.SortDirection)
	assert.Equal(t, 10, store.lastReq.Limit)
	assert.Equal(t, 20, store.lastReq.Offset)
}

func TestSearchLimitIsCapped(t *testing.T) {
	store := &fakeStore{result: &listing.Result{Shipments: []listing.Shipment{}}}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments/search?limit=9999", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, store.lastReq.Limit)
}

func TestSearchRejectsBadParams(t *testing.T) {
	h := newTestHandler(&fakeStore{})
	for _, target := range []string{
		"/api/v1/shipments/search?limit=0",
		"/api/v1/shipments/search?limit=abc",
		"/api/v1/shipments/search?offset=-1",
		"/api/v1/shipments/search?month=13",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.Search(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestSearchStoreUnavailable(t *testing.T) {
	h := newTestHandler(&fakeStore{err: apperrors.ErrStoreUnavailable})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments/search?q=rice", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestParseEndpoint(t *testing.T) {
	h := newTestHandler(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query/parse?q=lowest+price+per+ton+for+pepper", nil)
	rec := httptest.NewRecorder()
	h.Parse(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Parsed     *query.ParsedQuery `json:"parsed"`
		Dimensions []string           `json:"dimensions"`
		Language   string             `json:"language"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "price_per_ton", resp.Parsed.SortColumn)
	assert.Equal(t, "فلفل", resp.Parsed.GeneralTerm)
	assert.Contains(t, resp.Dimensions, "sort")
	assert.Equal(t, "en", resp.Language)
}

func TestParseEndpointRequiresQuery(t *testing.T) {
	h := newTestHandler(&fakeStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/query/parse", nil)
	rec := httptest.NewRecorder()
	h.Parse(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCacheStatsDisabled(t *testing.T) {
	h := newTestHandler(&fakeStore{})
	rec := httptest.NewRecorder()
	h.CacheStats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"disabled"}`, rec.Body.String())
}
