// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"time"

	"github.com/tomtom215/folio/internal/recommend"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Oracle    OracleConfig    `koanf:"oracle"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	// Path is the database file. ":memory:" or "" opens an in-memory database.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU

	// SeedDemoData loads a small demo catalog and reader history when the
	// database is empty.
	SeedDemoData bool `koanf:"seed_demo_data"`

	// GenreCacheSize bounds the genre lookup cache. 0 disables caching.
	GenreCacheSize int `koanf:"genre_cache_size"`

	// GenreCacheTTL expires cached genres so catalog edits become visible.
	GenreCacheTTL time.Duration `koanf:"genre_cache_ttl"`

	// CheckpointInterval flushes the DuckDB WAL periodically. 0 disables it.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
// Field meanings match recommend.Config.
type RecommendConfig struct {
	DefaultLimit        int           `koanf:"default_limit"`
	MaxLimit            int           `koanf:"max_limit"`
	CandidatePoolSize   int           `koanf:"candidate_pool_size"`
	MaxPromptCandidates int           `koanf:"max_prompt_candidates"`
	OracleTimeout       time.Duration `koanf:"oracle_timeout"`
	HighRatingThreshold int           `koanf:"high_rating_threshold"`
	MaxFavoriteGenres   int           `koanf:"max_favorite_genres"`
	ExcludeReadBooks    bool          `koanf:"exclude_read_books"`
}

// EngineConfig converts the section to the engine's configuration type.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		DefaultLimit:        r.DefaultLimit,
		MaxLimit:            r.MaxLimit,
		CandidatePoolSize:   r.CandidatePoolSize,
		MaxPromptCandidates: r.MaxPromptCandidates,
		OracleTimeout:       r.OracleTimeout,
		HighRatingThreshold: r.HighRatingThreshold,
		MaxFavoriteGenres:   r.MaxFavoriteGenres,
		ExcludeReadBooks:    r.ExcludeReadBooks,
	}
}

// OracleConfig holds the generative text provider settings.
// When Enabled is false the engine runs the fallback strategy only.
type OracleConfig struct {
	Enabled         bool    `koanf:"enabled"`
	Provider        string  `koanf:"provider"` // only "gemini" is supported
	APIKey          string  `koanf:"api_key"`
	Model           string  `koanf:"model"`
	Temperature     float32 `koanf:"temperature"`
	MaxOutputTokens int32   `koanf:"max_output_tokens"`
	BaseURL         string  `koanf:"base_url"`

	// RateLimitPerSecond caps oracle calls per second. 0 disables the limiter.
	RateLimitPerSecond float64 `koanf:"rate_limit_per_second"`
	RateLimitBurst     int     `koanf:"rate_limit_burst"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds the oracle circuit breaker settings
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds HTTP edge protection settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
