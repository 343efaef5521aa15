// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/oracle"
	"github.com/tomtom215/folio/internal/recommend"
)

// oracleSystemInstruction frames every Gemini call.
const oracleSystemInstruction = "You are a book recommendation assistant for a social reading platform. " +
	"Answer only with the JSON object requested, using book ids exactly as given."

// initGenreLookup returns the genre resolver used by the fallback strategy,
// cached when GENRE_CACHE_SIZE > 0. The cache is nil when caching is off.
func initGenreLookup(cfg *config.Config, db *database.DB) (recommend.GenreLookup, *database.GenreCache) {
	if cfg.Database.GenreCacheSize <= 0 {
		return db, nil
	}
	cache := database.NewGenreCache(db, cfg.Database.GenreCacheSize, cfg.Database.GenreCacheTTL)
	return cache, cache
}

// buildOracle assembles Gemini behind the rate limiter and circuit breaker.
// The breaker wraps the limiter so local rate rejections also count as
// failures and keep a saturated oracle out of the request path.
func buildOracle(ctx context.Context, oc *config.OracleConfig) (oracle.TextOracle, error) {
	base, err := oracle.NewGemini(ctx, oracle.GeminiConfig{
		APIKey:            oc.APIKey,
		Model:             oc.Model,
		Temperature:       oc.Temperature,
		MaxOutputTokens:   oc.MaxOutputTokens,
		SystemInstruction: oracleSystemInstruction,
		BaseURL:           oc.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini oracle: %w", err)
	}

	limited := oracle.NewRateLimited(base, oc.RateLimitPerSecond, oc.RateLimitBurst)
	return oracle.NewCircuitBreaker(limited, oracle.BreakerConfig{
		Name:         base.Name(),
		MaxRequests:  oc.Breaker.MaxRequests,
		Interval:     oc.Breaker.Interval,
		Timeout:      oc.Breaker.Timeout,
		MinRequests:  oc.Breaker.MinRequests,
		FailureRatio: oc.Breaker.FailureRatio,
	}), nil
}

// buildStrategy returns the AI strategy when the oracle is enabled and the
// fallback strategy otherwise. An oracle that cannot be constructed is
// logged and the engine runs fallback-only rather than refusing to start.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildStrategy(ctx context.Context, cfg *config.Config, engineCfg *recommend.Config, genres recommend.GenreLookup, logger zerolog.Logger) recommend.Strategy {
	fallback := recommend.NewFallbackStrategy(genres, logger)
	if !cfg.Oracle.Enabled {
		logger.Info().Msg("oracle disabled, using fallback recommendations")
		return fallback
	}

	o, err := buildOracle(ctx, &cfg.Oracle)
	if err != nil {
		logger.Error().Err(err).Msg("oracle unavailable, using fallback recommendations")
		return fallback
	}

	logger.Info().
		Str("provider", cfg.Oracle.Provider).
		Str("model", cfg.Oracle.Model).
		Float64("rate_limit", cfg.Oracle.RateLimitPerSecond).
		Msg("AI recommendations enabled")
	return recommend.NewAIStrategy(o, fallback, engineCfg, logger)
}

// initEngine wires the recommendation engine over DuckDB.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initEngine(ctx context.Context, cfg *config.Config, db *database.DB, genres recommend.GenreLookup, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := cfg.Recommend.EngineConfig()

	profiles := recommend.NewProfileAssembler(db, engineCfg, logger)
	catalog := recommend.NewCatalogSampler(db, logger)
	strategy := buildStrategy(ctx, cfg, engineCfg, genres, logger)

	return recommend.NewEngine(engineCfg, profiles, catalog, strategy, logger)
}
