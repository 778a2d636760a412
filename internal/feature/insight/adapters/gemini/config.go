package gemini

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds configuration for the Gemini client.
// APIKey を指定すると Gemini API、UseVertexAI を指定すると Vertex AI (ADC) を使用します。
type Config struct {
	APIKey      string `envconfig:"GEMINI_API_KEY"`
	UseVertexAI bool   `envconfig:"GOOGLE_GENAI_USE_VERTEXAI"`
	Project     string `envconfig:"GOOGLE_CLOUD_PROJECT"`
	Location    string `envconfig:"GOOGLE_CLOUD_LOCATION"`
	Model       string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	BaseURL     string `envconfig:"GEMINI_BASE_URL"`
}

// Enabled reports whether any credentials are configured.
func (c Config) Enabled() bool {
	return c.APIKey != "" || c.UseVertexAI
}

// LoadConfig loads Gemini configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
