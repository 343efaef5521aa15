// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package validation provides request validation using go-playground/validator v10.
//
// Features:
//   - Singleton validator instance (thread-safe, caches struct info)
//   - Field names reported by their query or json tag, so messages match
//     what the client sent
//   - Custom "userid" tag for opaque user identifiers
//   - Details() output ready for models.APIError.Details
//
// Example usage:
//
//	type RecommendationsQuery struct {
//	    UserID string `query:"userId" validate:"required,userid"`
//	    Page   int    `query:"page"   validate:"min=1"`
//	    Limit  int    `query:"limit"  validate:"min=0,max=50"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    respondError(w, http.StatusBadRequest, models.ErrCodeValidation, verr.Error(), verr.Details())
//	    return
//	}
package validation
