// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

// GetRecommendations handles GET /api/v1/users/{userID}/recommendations.
//
// Query parameters: page (1-based, default 1) and limit (default and cap
// come from the engine configuration).
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, msg, details := parseRecommendationsRequest(r)
	if req == nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, msg, details, nil)
		return
	}

	result, err := h.engine.GetPersonalizedRecommendations(r.Context(), req.UserID, req.Page, req.Limit)
	if err != nil {
		h.respondEngineError(w, r, req.UserID, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("user_id", req.UserID).
		Int("page", result.Pagination.CurrentPage).
		Int("returned", len(result.Recommendations)).
		Msg("recommendations served")

	respondSuccess(w, r, result, start)
}

// respondEngineError maps engine errors to HTTP status codes.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		respondError(w, r, http.StatusNotFound, models.ErrCodeUserNotFound,
			"User not found", map[string]interface{}{"userId": userID}, nil)
	default:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeRecommendation,
			"Failed to generate recommendations", nil, err)
	}
}

// RecommendationStats handles GET /api/v1/recommendations/stats.
func (h *Handler) RecommendationStats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.engine.Stats(), time.Time{})
}
