// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// Engine is the single entry point for personalized recommendations. It
// assembles the profile, samples candidates, runs the strategy and paginates
// the result. It keeps no per-request state and is safe for concurrent use.
type Engine struct {
	config   *Config
	profiles *ProfileAssembler
	catalog  *CatalogSampler
	strategy Strategy
	logger   zerolog.Logger

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Stats is a point-in-time snapshot of engine counters.
type Stats struct {
	Strategy      string `json:"strategy"`
	TotalRequests int64  `json:"total_requests"`
	ErrorCount    int64  `json:"error_count"`
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, profiles *ProfileAssembler, catalog *CatalogSampler, strategy Strategy, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if profiles == nil || catalog == nil || strategy == nil {
		return nil, errors.New("profile assembler, catalog sampler and strategy are required")
	}

	return &Engine{
		config:   cfg.Clone(),
		profiles: profiles,
		catalog:  catalog,
		strategy: strategy,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// GetPersonalizedRecommendations returns one page of recommendations for userID.
//
// page is 1-based; values below 1 select the first page. limit defaults to
// Config.DefaultLimit and is capped at Config.MaxLimit. Pagination totals are
// computed over the strategy output for this call, not the catalog.
func (e *Engine) GetPersonalizedRecommendations(ctx context.Context, userID string, page, limit int) (*PersonalizedRecommendations, error) {
	start := time.Now()
	e.requestCount.Add(1)

	page, limit = e.normalizePaging(page, limit)
	logger := e.requestLogger(ctx, userID)

	resp, err := e.generate(ctx, userID, limit, logger)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(requestStatus(err), 0, time.Since(start))
		return nil, err
	}

	result := &PersonalizedRecommendations{
		Recommendations: pageOf(resp.Recommendations, page, limit),
		Pagination:      paginate(len(resp.Recommendations), page, limit),
		Analysis:        resp.Analysis,
	}

	metrics.RecordRecommendation("success", len(resp.Recommendations), time.Since(start))
	logger.Debug().
		Int("page", page).
		Int("limit", limit).
		Int("total_items", result.Pagination.TotalItems).
		Int("returned", len(result.Recommendations)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return result, nil
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Strategy:      e.strategy.Name(),
		TotalRequests: e.requestCount.Load(),
		ErrorCount:    e.errorCount.Load(),
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// generate fetches the profile and candidates concurrently, then runs the strategy.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) generate(ctx context.Context, userID string, limit int, logger zerolog.Logger) (*RecommendationResponse, error) {
	var (
		profile    *UserProfile
		candidates []CandidateBook
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := e.profiles.Assemble(gctx, userID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		c, err := e.catalog.Sample(gctx, e.config.CandidatePoolSize)
		if err != nil {
			return err
		}
		candidates = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sampled := len(candidates)
	if e.config.ExcludeReadBooks {
		candidates = ExcludeRead(candidates, profile)
	}

	logger.Debug().
		Int("sampled", sampled).
		Int("candidates", len(candidates)).
		Str("strategy", e.strategy.Name()).
		Msg("running recommendation strategy")

	resp, err := e.strategy.Generate(ctx, userID, profile, candidates, limit)
	if err != nil {
		return nil, fmt.Errorf("%s strategy: %w", e.strategy.Name(), err)
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []RecommendationResult{}
	}
	return resp, nil
}

func (e *Engine) normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}
	if limit > e.config.MaxLimit {
		limit = e.config.MaxLimit
	}
	return page, limit
}

func (e *Engine) requestLogger(ctx context.Context, userID string) zerolog.Logger {
	logCtx := e.logger.With().Str("user_id", userID)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	return logCtx.Logger()
}

// requestStatus maps an engine error to the request metric status label.
func requestStatus(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// pageOf returns the [(page-1)*limit, page*limit) window of items, or an empty
// slice when the page is past the end.
func pageOf(items []RecommendationResult, page, limit int) []RecommendationResult {
	if page-1 >= (len(items)+limit-1)/limit {
		return []RecommendationResult{}
	}
	startIdx := (page - 1) * limit
	endIdx := min(startIdx+limit, len(items))
	out := make([]RecommendationResult, endIdx-startIdx)
	copy(out, items[startIdx:endIdx])
	return out
}

func paginate(totalItems, page, limit int) Pagination {
	totalPages := (totalItems + limit - 1) / limit
	return Pagination{
		CurrentPage: page,
		Limit:       limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
