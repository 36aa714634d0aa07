// Package handler exposes the listing HTTP API: free-text search, a parse
// preview endpoint, and cache administration.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/tradeops/tradesearch/pkg/errors"
	"github.com/tradeops/tradesearch/pkg/logger"
	"github.com/tradeops/tradesearch/pkg/metrics"
	"github.com/tradeops/tradesearch/pkg/middleware"

	"github.com/tradeops/tradesearch/internal/analytics"
	"github.com/tradeops/tradesearch/internal/listing"
	"github.com/tradeops/tradesearch/internal/listing/cache"
	"github.com/tradeops/tradesearch/internal/query"
)

// ShipmentStore executes a merged listing request.
type ShipmentStore interface {
	Search(ctx context.Context, req *listing.Request) (*listing.Result, error)
}

type Handler struct {
	store        ShipmentStore
	cache        *cache.QueryCache
	collector    *analytics.Collector
	metrics      *metrics.Metrics
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

func New(store ShipmentStore, queryCache *cache.QueryCache, collector *analytics.Collector, m *metrics.Metrics, defaultLimit, maxResults int) *Handler {
	return &Handler{
		store:        store,
		cache:        queryCache,
		collector:    collector,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "listing-handler"),
	}
}

// searchResponse is the search endpoint payload: the page of shipments plus
// the parsed interpretation of the free-text query, so the UI can show which
// filters were understood.
type searchResponse struct {
	*listing.Result
	Query  string             `json:"query,omitempty"`
	Parsed *query.ParsedQuery `json:"parsed"`
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	req, err := h.buildRequest(r)
	if err != nil {
		h.writeError(w, apperrors.HTTPStatusCode(err), err.Error())
		return
	}

	var (
		result   *listing.Result
		cacheHit bool
	)
	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, req, func() (*listing.Result, error) {
			return h.searchStore(ctx, req)
		})
	} else {
		result, err = h.searchStore(ctx, req)
	}
	if err != nil {
		h.metrics.ListingQueriesTotal.WithLabelValues("error").Inc()
		log.Error("listing query failed", "query", req.RawQuery, "error", err)
		h.writeError(w, apperrors.HTTPStatusCode(err), "search failed")
		return
	}

	outcome := "ok"
	if result.TotalHits == 0 {
		outcome = "zero_result"
	}
	h.metrics.ListingQueriesTotal.WithLabelValues(outcome).Inc()
	if cacheHit {
		h.metrics.CacheHitsTotal.Inc()
	} else {
		h.metrics.CacheMissesTotal.Inc()
	}

	latencyMs := time.Since(start).Milliseconds()
	log.Info("search completed",
		"query", req.RawQuery,
		"dimensions", req.Parsed.Dimensions(),
		"total_hits", result.TotalHits,
		"returned", len(result.Shipments),
		"cache_hit", cacheHit,
		"latency_ms", latencyMs,
	)
	h.track(ctx, req, result, cacheHit, latencyMs)

	h.writeJSON(w, http.StatusOK, &searchResponse{
		Result: result,
		Query:  req.RawQuery,
		Parsed: req.Parsed,
	})
}

// Parse returns the structured interpretation of a free-text query without
// executing it. The UI uses it for as-you-type filter chips.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("q")
	if raw == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	parsed := h.parseQuery(raw)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"query":      raw,
		"parsed":     parsed,
		"dimensions": parsed.Dimensions(),
		"language":   analytics.DetectLanguage(raw),
	})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) searchStore(ctx context.Context, req *listing.Request) (*listing.Result, error) {
	start := time.Now()
	result, err := h.store.Search(ctx, req)
	h.metrics.ListingQueryDuration.Observe(time.Since(start).Seconds())
	return result, err
}

func (h *Handler) parseQuery(raw string) *query.ParsedQuery {
	start := time.Now()
	parsed := query.Parse(raw)
	h.metrics.ParseDuration.Observe(time.Since(start).Seconds())
	for _, dim := range parsed.Dimensions() {
		h.metrics.ParsedDimensions.WithLabelValues(dim).Inc()
	}
	return parsed
}

// buildRequest assembles the listing request from the free-text query, the
// manual filter parameters, and paging.
func (h *Handler) buildRequest(r *http.Request) (*listing.Request, error) {
	params := r.URL.Query()
	req := &listing.Request{
		RawQuery: params.Get("q"),
		Limit:    h.defaultLimit,
	}
	req.Parsed = h.parseQuery(req.RawQuery)

	if v := params.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return nil, apperrors.New(apperrors.ErrInvalidFilter, http.StatusBadRequest, "limit must be a positive integer")
		}
		if limit > h.maxResults {
			limit = h.maxResults
		}
		req.Limit = limit
	}
	if v := params.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, apperrors.New(apperrors.ErrInvalidFilter, http.StatusBadRequest, "offset must be a non-negative integer")
		}
		req.Offset = offset
	}

	req.Manual.Products = params["product"]
	req.Manual.Origins = params["origin"]
	req.Manual.Destinations = params["destination"]
	if v := params.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return nil, apperrors.Newf(apperrors.ErrInvalidFilter, http.StatusBadRequest, "month must be between 1 and 12, got %q", v)
		}
		req.Manual.Month = month
	}
	if v := params.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInvalidFilter, http.StatusBadRequest, "year must be an integer, got %q", v)
		}
		req.Manual.Year = year
	}
	req.Manual.DateFrom = params.Get("dateFrom")
	req.Manual.DateTo = params.Get("dateTo")
	if v := params.Get("sort"); v != "" {
		req.Manual.SortColumn = v
		if params.Get("dir") == "desc" {
			req.Manual.SortDirection = query.SortDesc
		} else {
			req.Manual.SortDirection = query.SortAsc
		}
	}
	return req, nil
}

func (h *Handler) track(ctx context.Context, req *listing.Request, result *listing.Result, cacheHit bool, latencyMs int64) {
	if h.collector == nil {
		return
	}
	eventType := analytics.EventCacheMiss
	if cacheHit {
		eventType = analytics.EventCacheHit
	}
	if result.TotalHits == 0 {
		eventType = analytics.EventZeroResult
	}
	h.collector.Track(analytics.QueryEvent{
		Type:       eventType,
		Query:      req.RawQuery,
		Language:   analytics.DetectLanguage(req.RawQuery),
		Dimensions: req.Parsed.Dimensions(),
		TotalHits:  result.TotalHits,
		Returned:   len(result.Shipments),
		LatencyMs:  latencyMs,
		CacheHit:   cacheHit,
		Timestamp:  time.Now().UTC(),
		RequestID:  middleware.GetRequestID(ctx),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
