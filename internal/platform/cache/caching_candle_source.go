// Package cache provides caching implementations for candle sources.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/platform/metrics"
)

// CachingCandleSource decorates a CandleSource with Redis caching.
// Cache failures never fail a request; they only cost an upstream call.
type CachingCandleSource struct {
	inner     usecase.CandleSource
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.CandleSource = (*CachingCandleSource)(nil)

// NewCachingCandleSource decorates a CandleSource with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "candles".
// The namespace should include the source name so sources never share entries.
func NewCachingCandleSource(rdb *redis.Client, ttl time.Duration, inner usecase.CandleSource, namespace string) *CachingCandleSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
	}
}

// GetTimeSeries returns cached candles when present, otherwise fetches from
// the inner source and stores the result.
func (c *CachingCandleSource) GetTimeSeries(ctx context.Context, q entity.SeriesQuery) ([]entity.Candle, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetTimeSeries(ctx, q)
	}

	key := c.cacheKey(q)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			metrics.CacheHit(c.namespace)
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && err != redis.Nil {
		zap.S().Warnw("cache read failed", "key", key, "error", err)
	}
	metrics.CacheMiss(c.namespace)

	// 2) Fallback to upstream
	out, err := c.inner.GetTimeSeries(ctx, q)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		ttl := TTLFor(q.Interval, q.End, c.ttl, c.now())
		if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
			zap.S().Warnw("cache write failed", "key", key, "error", err)
		}
	}

	return out, nil
}

// Invalidate deletes every cached window of symbol/interval.
func (c *CachingCandleSource) Invalidate(ctx context.Context, symbol, interval string) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.cacheKeyPrefix(symbol, interval)+"*")
}

// cacheKey generates a cache key for a specific query.
func (c *CachingCandleSource) cacheKey(q entity.SeriesQuery) string {
	return fmt.Sprintf("%s%d:%d:%d",
		c.cacheKeyPrefix(q.Symbol, q.Interval),
		unixOrZero(q.Start),
		unixOrZero(q.End),
		q.OutputSize,
	)
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingCandleSource) cacheKeyPrefix(symbol, interval string) string {
	return fmt.Sprintf("%s:%s:%s:",
		c.namespace,
		safe(symbol),
		safe(interval),
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCandleSource) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
