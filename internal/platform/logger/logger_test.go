package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "LOG_FILE", "APP_ENV"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "", cfg.File)
	assert.Equal(t, "development", cfg.AppEnv)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestInit_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	flush, err := Init(Config{Level: "debug", File: path, AppEnv: "test"})
	require.NoError(t, err)

	zap.S().Infow("hello", "ticker", "BTCUSDT")
	flush()

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "BTCUSDT", entry["ticker"])
	assert.Equal(t, "test", entry["env"])
	assert.Contains(t, entry, "timestamp")
}

func TestInit_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	flush, err := Init(Config{Level: "warn", File: path, AppEnv: "test"})
	require.NoError(t, err)

	zap.S().Infow("dropped")
	flush()

	b, err := os.ReadFile(path)
	if err != nil {
		// lumberjack creates the file lazily on first write
		assert.True(t, os.IsNotExist(err))
		return
	}
	assert.Empty(t, b)
}
