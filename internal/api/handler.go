// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"time"

	"github.com/tomtom215/folio/internal/recommend"
)

// Recommender is the engine surface the handlers need.
type Recommender interface {
	GetPersonalizedRecommendations(ctx context.Context, userID string, page, limit int) (*recommend.PersonalizedRecommendations, error)
	Stats() recommend.Stats
}

// Store is the database surface used by health checks.
type Store interface {
	Ping(ctx context.Context) error
	CountEligibleBooks(ctx context.Context) (int64, error)
}

// Handler serves the API endpoints.
type Handler struct {
	engine    Recommender
	store     Store
	startTime time.Time
}

// NewHandler creates a Handler. store may be nil, in which case readiness
// always fails.
func NewHandler(engine Recommender, store Store) *Handler {
	return &Handler{
		engine:    engine,
		store:     store,
		startTime: time.Now(),
	}
}
