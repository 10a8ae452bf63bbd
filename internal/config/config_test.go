package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, "", cfg.Metrics.Addr)
	assert.Equal(t, 4096, cfg.Cache.FlushRate)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"CACHE_LOG_LEVEL":    "debug",
		"CACHE_LOG_DEV":      "true",
		"CACHE_METRICS_ADDR": ":9090",
		"CACHE_FLUSH_RATE":   "1024",
	}

	for key, value := range envVars {
		require.NoError(t, os.Setenv(key, value))
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.Equal(t, 1024, cfg.Cache.FlushRate)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	require.NoError(t, os.Setenv("CACHE_LOG_LEVEL", "warn"))
	defer os.Unsetenv("CACHE_LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	// unrelated defaults still apply
	assert.Equal(t, 4096, cfg.Cache.FlushRate)
	assert.Equal(t, "", cfg.Metrics.Addr)
}

func TestFlushRateConfig(t *testing.T) {
	tests := []struct {
		name      string
		rate      string
		wantValue int
	}{
		{name: "default", rate: "", wantValue: 4096},
		{name: "custom", rate: "8", wantValue: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("CACHE_FLUSH_RATE")
			if tt.rate != "" {
				require.NoError(t, os.Setenv("CACHE_FLUSH_RATE", tt.rate))
				defer os.Unsetenv("CACHE_FLUSH_RATE")
			}

			cfg := LoadOrDefault()
			assert.Equal(t, tt.wantValue, cfg.Cache.FlushRate)
		})
	}
}
