// Package cache memoises listing results in Redis. Keys are derived from the
// canonical effective filter set, so a free-text query and the equivalent
// manual filters share one cache entry, and concurrent identical misses are
// collapsed through singleflight.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/tradeops/tradesearch/pkg/config"
	pkgredis "github.com/tradeops/tradesearch/pkg/redis"

	"github.com/tradeops/tradesearch/internal/listing"
)

const keyPrefix = "listing:"

type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "listing-cache"),
	}
}

func (c *QueryCache) get(ctx context.Context, key string) (*listing.Result, bool) {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result listing.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &result, true
}

func (c *QueryCache) set(ctx context.Context, key string, result *listing.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for req, or computes, stores, and
// returns it. The boolean reports a cache hit.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	req *listing.Request,
	computeFn func() (*listing.Result, error),
) (*listing.Result, bool, error) {
	key := BuildKey(req)
	if result, ok := c.get(ctx, key); ok {
		return result, true, nil
	}
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if result, ok := c.get(ctx, key); ok {
			return result, nil
		}
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*listing.Result), false, nil
}

// Invalidate drops every cached listing page, e.g. after a data import.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating listing cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// BuildKey derives a stable cache key from the effective filters and paging.
// ParsedQuery marshals with fixed field order, so equal filter sets always
// produce equal keys regardless of how the request was phrased.
func BuildKey(req *listing.Request) string {
	eff, _ := json.Marshal(req.Effective())
	raw := fmt.Sprintf("%s:limit=%d:offset=%d", eff, req.Limit, req.Offset)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
