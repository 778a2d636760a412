package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiAnalyzer_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "summarise BTCUSDT", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"BTC is trending up."}],"role":"model"}}]}`))
	}))
	defer srv.Close()

	g, err := NewGeminiAnalyzer(context.Background(), Config{APIKey: "test-key", Model: "gemini-test", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	got, err := g.Analyze(context.Background(), "summarise BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "BTC is trending up.", got)
}

func TestGeminiAnalyzer_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	g, err := NewGeminiAnalyzer(context.Background(), Config{APIKey: "bad", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, g.model)

	_, err = g.Analyze(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini API request failed")
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{APIKey: "k"}.Enabled())
	assert.True(t, Config{UseVertexAI: true}.Enabled())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GEMINI_MODEL", "gemini-pro")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "gemini-pro", cfg.Model)
	assert.True(t, cfg.Enabled())
}
