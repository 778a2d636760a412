// Package yahoo fetches historical OHLC bars from the Yahoo Finance chart API.
package yahoo

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds configuration for the Yahoo chart client.
type Config struct {
	BaseURL   string        `envconfig:"YAHOO_BASE_URL" default:"https://query1.finance.yahoo.com"`
	Timeout   time.Duration `envconfig:"YAHOO_TIMEOUT" default:"30s"`
	UserAgent string        `envconfig:"YAHOO_USER_AGENT" default:"Mozilla/5.0"`
}

// LoadConfig loads Yahoo configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
