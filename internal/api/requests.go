// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/folio/internal/validation"
)

// RecommendationsRequest holds the parsed parameters of a recommendations call.
// A zero Limit asks the engine for its configured default.
type RecommendationsRequest struct {
	UserID string `query:"userId" validate:"required,userid"`
	Page   int    `query:"page" validate:"min=1,max=10000"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
}

// paramError reports a query parameter that is not an integer.
type paramError struct {
	field string
}

func (e *paramError) Error() string {
	return e.field + " must be an integer"
}

// parseRecommendationsRequest reads path and query parameters and validates them.
// On failure it returns the message and details for a VALIDATION_ERROR response.
func parseRecommendationsRequest(r *http.Request) (*RecommendationsRequest, string, map[string]interface{}) {
	page, err := intQueryParam(r, "page", 1)
	if err != nil {
		return nil, err.Error(), map[string]interface{}{err.field: err.Error()}
	}
	limit, err := intQueryParam(r, "limit", 0)
	if err != nil {
		return nil, err.Error(), map[string]interface{}{err.field: err.Error()}
	}

	req := &RecommendationsRequest{
		UserID: chi.URLParam(r, "userID"),
		Page:   page,
		Limit:  limit,
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr.Error(), verr.Details()
	}
	return req, "", nil
}

// intQueryParam returns the named query parameter as an int, or def when absent.
func intQueryParam(r *http.Request, name string, def int) (int, *paramError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{field: name}
	}
	return v, nil
}
