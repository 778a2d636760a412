// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/insight/adapters/gemini"
	"crypto_dashboard/internal/platform/db"
	"crypto_dashboard/internal/platform/externalapi/jsonfeed"
	"crypto_dashboard/internal/platform/externalapi/twelvedata"
	"crypto_dashboard/internal/platform/externalapi/yahoo"
	"crypto_dashboard/internal/platform/logger"
	"crypto_dashboard/internal/platform/redis"
)

// AppConfig はシステム全体の設定です。
// ネストされた構造体もタグ（envconfig）に従って読み込まれます。
type AppConfig struct {
	AppEnv              string        `envconfig:"APP_ENV" default:"development"`
	HTTPAddr            string        `envconfig:"HTTP_ADDR" default:":8080"`
	DataSource          string        `envconfig:"DATA_SOURCE" default:"yahoo"`
	CacheTTL            time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	CacheWarmCron       string        `envconfig:"CACHE_WARM_CRON"` // 空なら無効
	WarmRequestsPerMin  int           `envconfig:"WARM_REQUESTS_PER_MINUTE" default:"8"`
	QuoteStreamInterval time.Duration `envconfig:"QUOTE_STREAM_INTERVAL" default:"60s"`
	SymbolsFile         string        `envconfig:"SYMBOLS_FILE"` // 空なら埋め込みの一覧
	ShutdownTimeout     time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	Log        logger.Config
	DB         db.Config
	Redis      redis.Config
	TwelveData twelvedata.Config
	Yahoo      yahoo.Config
	JSONFeed   jsonfeed.Config
	Gemini     gemini.Config
}

// Load は .env（存在すれば）と環境変数から設定を読み込み、検証します。
func Load() (*AppConfig, error) {
	// 本番環境では .env が存在しないため、エラーは無視する
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SourceEnabled reports whether source has the settings it needs.
func (c *AppConfig) SourceEnabled(source string) bool {
	switch source {
	case entity.SourceYahoo:
		return true
	case entity.SourceTwelveData:
		return c.TwelveData.Enabled()
	case entity.SourceJSONFeed:
		return c.JSONFeed.Enabled()
	}
	return false
}

// Validate checks that the default source is usable.
func (c *AppConfig) Validate() error {
	if !entity.IsKnownSource(c.DataSource) {
		return fmt.Errorf("DATA_SOURCE %q: must be one of twelvedata, yahoo, jsonfeed", c.DataSource)
	}
	if !c.SourceEnabled(c.DataSource) {
		return fmt.Errorf("DATA_SOURCE %q is not configured", c.DataSource)
	}
	if c.QuoteStreamInterval <= 0 {
		return fmt.Errorf("QUOTE_STREAM_INTERVAL must be positive")
	}
	return nil
}
