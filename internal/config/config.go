// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

// Package config loads and validates application configuration.
//
// Values are resolved in three layers, each overriding the previous:
// struct defaults, an optional YAML file, then GAMERANK_-prefixed
// environment variables (GAMERANK_SERVER_PORT=8080 maps to server.port).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/playforge/gamerank/internal/ranking"
)

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is the prefix for environment variable overrides.
const envPrefix = "GAMERANK_"

// DefaultConfigPaths lists where config files are searched, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gamerank/config.yaml",
	"/etc/gamerank/config.yml",
}

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig   `koanf:"server"`
	Logging LoggingConfig  `koanf:"logging"`
	Ranking ranking.Config `koanf:"ranking"`
	Charts  ChartsConfig   `koanf:"charts"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Host is the bind address. Default: 0.0.0.0.
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8470.
	Port int `koanf:"port"`

	// Timeout is the per-request timeout. Default: 30s.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimitReqs and RateLimitWindow bound requests per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`
}

// ChartsConfig configures chart computation and the periodic refresher.
type ChartsConfig struct {
	// RefreshInterval is the time between chart recomputations.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// Limit is the number of entries per refreshed chart.
	Limit int `koanf:"limit"`

	// Concurrency bounds the metric fetch fan-out per chart.
	Concurrency int `koanf:"concurrency"`

	// Platforms lists the platforms charts are refreshed for.
	Platforms []string `koanf:"platforms"`

	// BreakerMaxFailures and BreakerOpenTimeout configure the circuit
	// breaker around the metrics source.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerOpenTimeout time.Duration `koanf:"breaker_open_timeout"`

	// FetchRatePerSecond and FetchBurst throttle metric fetches.
	// A zero rate disables throttling.
	FetchRatePerSecond float64 `koanf:"fetch_rate_per_second"`
	FetchBurst         int     `koanf:"fetch_burst"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8470,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Ranking: ranking.DefaultConfig(),
		Charts: ChartsConfig{
			RefreshInterval:    15 * time.Minute,
			Limit:              50,
			Concurrency:        8,
			Platforms:          []string{"web", "mobile", "console"},
			BreakerMaxFailures: 5,
			BreakerOpenTimeout: 30 * time.Second,
			FetchRatePerSecond: 0,
			FetchBurst:         1,
		},
	}
}

// Load resolves configuration from defaults, an optional YAML file and
// environment overrides, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Charts.RefreshInterval <= 0 {
		return fmt.Errorf("charts.refresh_interval must be positive, got %v", c.Charts.RefreshInterval)
	}
	if c.Charts.Limit < 1 {
		return fmt.Errorf("charts.limit must be positive, got %d", c.Charts.Limit)
	}
	if c.Charts.Concurrency < 1 {
		return fmt.Errorf("charts.concurrency must be positive, got %d", c.Charts.Concurrency)
	}
	if err := c.Ranking.Validate(); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	return nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
