// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultLimit is used when a request does not specify a limit.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the number of recommendations a single request may ask for.
	MaxLimit int `json:"max_limit"`

	// CandidatePoolSize is how many eligible books are sampled from the catalog
	// before already-read books are filtered out.
	CandidatePoolSize int `json:"candidate_pool_size"`

	// MaxPromptCandidates bounds the candidate list embedded in the oracle prompt.
	MaxPromptCandidates int `json:"max_prompt_candidates"`

	// OracleTimeout bounds a single text oracle call.
	OracleTimeout time.Duration `json:"oracle_timeout"`

	// HighRatingThreshold is the minimum rating (1-5) for a book to count as highly rated.
	HighRatingThreshold int `json:"high_rating_threshold"`

	// MaxFavoriteGenres caps the derived favorite genre list.
	MaxFavoriteGenres int `json:"max_favorite_genres"`

	// ExcludeReadBooks drops completed and in-progress books from the candidates.
	ExcludeReadBooks bool `json:"exclude_read_books"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:        10,
		MaxLimit:            50,
		CandidatePoolSize:   100,
		MaxPromptCandidates: 50,
		OracleTimeout:       30 * time.Second,
		HighRatingThreshold: 4,
		MaxFavoriteGenres:   5,
		ExcludeReadBooks:    true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be at least 1, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	if c.CandidatePoolSize < 1 {
		return fmt.Errorf("candidate_pool_size must be at least 1, got %d", c.CandidatePoolSize)
	}
	if c.MaxPromptCandidates < 1 {
		return fmt.Errorf("max_prompt_candidates must be at least 1, got %d", c.MaxPromptCandidates)
	}
	if c.OracleTimeout <= 0 {
		return fmt.Errorf("oracle_timeout must be positive, got %s", c.OracleTimeout)
	}
	if c.HighRatingThreshold < 1 || c.HighRatingThreshold > 5 {
		return fmt.Errorf("high_rating_threshold must be between 1 and 5, got %d", c.HighRatingThreshold)
	}
	if c.MaxFavoriteGenres < 1 {
		return fmt.Errorf("max_favorite_genres must be at least 1, got %d", c.MaxFavoriteGenres)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
