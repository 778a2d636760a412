// Package twelvedata provides a client for the Twelve Data market-data pricing API.
package twelvedata

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds configuration for the Twelve Data API client.
type Config struct {
	TwelveDataAPIKey string        `envconfig:"TWELVE_DATA_API_KEY"`                                      // API key for authentication
	BaseURL          string        `envconfig:"TWELVE_DATA_BASE_URL" default:"https://api.twelvedata.com"` // Base URL for the API
	Timeout          time.Duration `envconfig:"TWELVE_DATA_TIMEOUT" default:"10s"`                        // HTTP request timeout
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool { return c.TwelveDataAPIKey != "" }

// LoadConfig loads Twelve Data configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
