// Package jsonfeed reads candles from a static JSON feed laid out as
// {base}/{symbol}/{interval}.json.
package jsonfeed

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds configuration for the static feed client.
type Config struct {
	BaseURL string        `envconfig:"JSON_FEED_BASE_URL"`
	Timeout time.Duration `envconfig:"JSON_FEED_TIMEOUT" default:"10s"`
}

// Enabled reports whether a feed location is configured.
func (c Config) Enabled() bool { return c.BaseURL != "" }

// LoadConfig loads feed configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
