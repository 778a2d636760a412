// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/platform/cache"
	"crypto_dashboard/internal/platform/config"
	"crypto_dashboard/internal/platform/externalapi/jsonfeed"
	"crypto_dashboard/internal/platform/externalapi/twelvedata"
	"crypto_dashboard/internal/platform/externalapi/yahoo"
	infrahttp "crypto_dashboard/internal/platform/http"
	"crypto_dashboard/internal/platform/resilience"
)

// NewTwelveData creates a fully configured TwelveDataMarket with HTTP client.
func NewTwelveData(cfg twelvedata.Config) *twelvedata.TwelveDataMarket {
	return twelvedata.NewTwelveDataMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewYahoo creates a Yahoo chart client with HTTP client.
func NewYahoo(cfg yahoo.Config) *yahoo.ChartClient {
	return yahoo.NewChartClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout, infrahttp.WithUserAgent(cfg.UserAgent)))
}

// NewJSONFeed creates a static feed client with HTTP client.
func NewJSONFeed(cfg jsonfeed.Config) *jsonfeed.FeedClient {
	return jsonfeed.NewFeedClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// Decorate wraps a raw source with retries / circuit breaker and then the
// Redis cache, so cache hits never reach the breaker. rdb may be nil.
func Decorate(name string, inner usecase.CandleSource, rdb *redis.Client, ttl time.Duration) usecase.CandleSource {
	guarded := resilience.NewResilientSource(name, inner, resilience.DefaultSettings())
	return cache.NewCachingCandleSource(rdb, ttl, guarded, "candles:"+name)
}

// NewSources builds every configured candle source keyed by source name.
// Yahoo needs no credentials and is always present.
func NewSources(cfg *config.AppConfig, rdb *redis.Client) map[string]usecase.CandleSource {
	sources := map[string]usecase.CandleSource{
		entity.SourceYahoo: Decorate(entity.SourceYahoo, NewYahoo(cfg.Yahoo), rdb, cfg.CacheTTL),
	}
	if cfg.TwelveData.Enabled() {
		sources[entity.SourceTwelveData] = Decorate(entity.SourceTwelveData, NewTwelveData(cfg.TwelveData), rdb, cfg.CacheTTL)
	} else {
		zap.S().Infow("source disabled", "source", entity.SourceTwelveData, "reason", "TWELVE_DATA_API_KEY is not set")
	}
	if cfg.JSONFeed.Enabled() {
		sources[entity.SourceJSONFeed] = Decorate(entity.SourceJSONFeed, NewJSONFeed(cfg.JSONFeed), rdb, cfg.CacheTTL)
	} else {
		zap.S().Infow("source disabled", "source", entity.SourceJSONFeed, "reason", "JSON_FEED_BASE_URL is not set")
	}
	return sources
}
