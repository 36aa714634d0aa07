package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tradeops/tradesearch/pkg/kafka"
)

// AggregatedStats is the rolling summary exposed on the stats endpoint.
type AggregatedStats struct {
	TotalQueries      int64              `json:"total_queries"`
	CacheHits         int64              `json:"cache_hits"`
	CacheMisses       int64              `json:"cache_misses"`
	ZeroResultCount   int64              `json:"zero_result_count"`
	AvgLatencyMs      float64            `json:"avg_latency_ms"`
	P50LatencyMs      int64              `json:"p50_latency_ms"`
	P95LatencyMs      int64              `json:"p95_latency_ms"`
	P99LatencyMs      int64              `json:"p99_latency_ms"`
	TopQueries        []QueryCount       `json:"top_queries"`
	ZeroResultQueries []QueryCount       `json:"zero_result_queries"`
	DimensionCounts   map[string]int64   `json:"dimension_counts"`
	LanguageCounts    map[Language]int64 `json:"language_counts"`
	QueriesPerMinute  float64            `json:"queries_per_minute"`
}

type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Aggregator consumes query events and keeps in-memory rolling statistics.
type Aggregator struct {
	mu                sync.RWMutex
	totalQueries      atomic.Int64
	cacheHits         atomic.Int64
	cacheMisses       atomic.Int64
	zeroResults       atomic.Int64
	latencies         []int64
	queryCounts       map[string]int64
	zeroResultQueries map[string]int64
	dimensionCounts   map[string]int64
	languageCounts    map[Language]int64
	startTime         time.Time

	logger *slog.Logger
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		latencies:         make([]int64, 0, 10000),
		queryCounts:       make(map[string]int64),
		zeroResultQueries: make(map[string]int64),
		dimensionCounts:   make(map[string]int64),
		languageCounts:    make(map[Language]int64),
		startTime:         time.Now(),
		logger:            slog.Default().With("component", "analytics-aggregator"),
	}
}

// HandleEvent decodes query events off the Kafka topic into the aggregator.
// Undecodable messages are logged and skipped, never retried.
func HandleEvent(agg *Aggregator) kafka.MessageHandler {
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[QueryEvent](value)
		if err != nil {
			agg.logger.Error("failed to decode analytics event", "error", err)
			return nil
		}
		agg.Record(event)
		return nil
	}
}

// Record folds one event into the rolling statistics.
func (a *Aggregator) Record(event QueryEvent) {
	a.totalQueries.Add(1)
	if event.CacheHit {
		a.cacheHits.Add(1)
	} else {
		a.cacheMisses.Add(1)
	}
	if event.TotalHits == 0 {
		a.zeroResults.Add(1)
	}

	a.mu.Lock()
	a.latencies = append(a.latencies, event.LatencyMs)
	if event.Query != "" {
		a.queryCounts[event.Query]++
		if event.TotalHits == 0 {
			a.zeroResultQueries[event.Query]++
		}
	}
	for _, dim := range event.Dimensions {
		a.dimensionCounts[dim]++
	}
	a.languageCounts[event.Language]++
	a.mu.Unlock()
}

func (a *Aggregator) Stats() AggregatedStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := AggregatedStats{
		TotalQueries:    a.totalQueries.Load(),
		CacheHits:       a.cacheHits.Load(),
		CacheMisses:     a.cacheMisses.Load(),
		ZeroResultCount: a.zeroResults.Load(),
		DimensionCounts: copyCounts(a.dimensionCounts),
		LanguageCounts:  copyCounts(a.languageCounts),
	}
	if len(a.latencies) > 0 {
		sorted := make([]int64, len(a.latencies))
		copy(sorted, a.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyMs = float64(sum) / float64(len(sorted))
		stats.P50LatencyMs = percentile(sorted, 50)
		stats.P95LatencyMs = percentile(sorted, 95)
		stats.P99LatencyMs = percentile(sorted, 99)
	}
	stats.TopQueries = topN(a.queryCounts, 10)
	stats.ZeroResultQueries = topN(a.zeroResultQueries, 10)
	elapsed := time.Since(a.startTime).Minutes()
	if elapsed > 0 {
		stats.QueriesPerMinute = float64(stats.TotalQueries) / elapsed
	}
	return stats
}

func copyCounts[K comparable](counts map[K]int64) map[K]int64 {
	out := make(map[K]int64, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func topN(counts map[string]int64, n int) []QueryCount {
	result := make([]QueryCount, 0, len(counts))
	for q, count := range counts {
		result = append(result, QueryCount{Query: q, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Query < result[j].Query
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
