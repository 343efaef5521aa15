// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

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
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/folio/config.yaml",
	"/etc/folio/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:           "/data/folio.duckdb",
			MaxMemory:      "1GB",
			Threads:        0,
			SeedDemoData:   false,
			GenreCacheSize: 512,
			GenreCacheTTL:  10 * time.Minute,

			CheckpointInterval: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			DefaultLimit:        10,
			MaxLimit:            50,
			CandidatePoolSize:   100,
			MaxPromptCandidates: 50,
			OracleTimeout:       30 * time.Second,
			HighRatingThreshold: 4,
			MaxFavoriteGenres:   5,
			ExcludeReadBooks:    true,
		},
		Oracle: OracleConfig{
			Enabled:            false,
			Provider:           "gemini",
			Model:              "gemini-2.0-flash",
			Temperature:        0.7,
			MaxOutputTokens:    4096,
			RateLimitPerSecond: 2,
			RateLimitBurst:     4,
			Breaker: BreakerConfig{
				MaxRequests:  1,
				Interval:     time.Minute,
				Timeout:      time.Minute,
				MinRequests:  5,
				FailureRatio: 0.6,
			},
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
//
// Loading order (each layer overrides the previous):
//  1. Struct defaults
//  2. Config file (config.yaml, /etc/folio/config.yaml or CONFIG_PATH)
//  3. Mapped environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML already yields slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Database mappings
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_demo_data":    "database.seed_demo_data",
	"genre_cache_size":  "database.genre_cache_size",
	"genre_cache_ttl":   "database.genre_cache_ttl",

	"duckdb_checkpoint_interval": "database.checkpoint_interval",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation engine mappings
	"recommend_default_limit":         "recommend.default_limit",
	"recommend_max_limit":             "recommend.max_limit",
	"recommend_candidate_pool_size":   "recommend.candidate_pool_size",
	"recommend_max_prompt_candidates": "recommend.max_prompt_candidates",
	"recommend_oracle_timeout":        "recommend.oracle_timeout",
	"recommend_high_rating_threshold": "recommend.high_rating_threshold",
	"recommend_max_favorite_genres":   "recommend.max_favorite_genres",
	"recommend_exclude_read_books":    "recommend.exclude_read_books",

	// Oracle mappings
	"oracle_enabled":               "oracle.enabled",
	"oracle_provider":              "oracle.provider",
	"oracle_api_key":               "oracle.api_key",
	"gemini_api_key":               "oracle.api_key",
	"oracle_model":                 "oracle.model",
	"oracle_temperature":           "oracle.temperature",
	"oracle_max_output_tokens":     "oracle.max_output_tokens",
	"oracle_base_url":              "oracle.base_url",
	"oracle_rate_limit":            "oracle.rate_limit_per_second",
	"oracle_rate_burst":            "oracle.rate_limit_burst",
	"oracle_breaker_max_requests":  "oracle.breaker.max_requests",
	"oracle_breaker_interval":      "oracle.breaker.interval",
	"oracle_breaker_timeout":       "oracle.breaker.timeout",
	"oracle_breaker_min_requests":  "oracle.breaker.min_requests",
	"oracle_breaker_failure_ratio": "oracle.breaker.failure_ratio",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - RECOMMEND_MAX_LIMIT -> recommend.max_limit
//   - ORACLE_API_KEY -> oracle.api_key
//
// Unmapped variables return "" so koanf skips them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
