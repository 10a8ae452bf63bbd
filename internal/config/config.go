// Package config loads ambient, non-functional settings for the cache
// wrapper from the environment. None of these settings change
// dedup/fingerprint/exit-code semantics, which remain CLI-flag driven;
// they only affect logging, the optional metrics listener, and how often
// the child's stdin is flushed.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds ambient application configuration.
type Config struct {
	Logging LogConfig
	Metrics MetricsConfig
	Cache   CacheConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds optional Prometheus exposition configuration.
type MetricsConfig struct {
	Addr string `envconfig:"METRICS_ADDR" default:""`
}

// CacheConfig holds pipeline tuning knobs that affect only latency and
// throughput, never correctness.
type CacheConfig struct {
	FlushRate int `envconfig:"FLUSH_RATE" default:"4096"`
}

// Load loads configuration from environment variables prefixed CACHE_
// (e.g. CACHE_LOG_LEVEL, CACHE_METRICS_ADDR, CACHE_FLUSH_RATE).
func Load() (*Config, error) {
	var cfg Config
	// Each section is processed with the bare prefix so its variables are
	// CACHE_<NAME>; processing cfg as a whole would nest them under
	// CACHE_LOGGING_, CACHE_METRICS_ and CACHE_CACHE_.
	for _, section := range []interface{}{&cfg.Logging, &cfg.Metrics, &cfg.Cache} {
		if err := envconfig.Process("cache", section); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment, falling back to
// Default on any error.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
		Cache: CacheConfig{
			FlushRate: 4096,
		},
	}
}
