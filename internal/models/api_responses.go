// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeUserNotFound   = "USER_NOT_FOUND"
	ErrCodeRecommendation = "RECOMMENDATION_ERROR"
	ErrCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeUnavailable    = "SERVICE_UNAVAILABLE"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// APIResponse is the standardized wrapper used by all HTTP endpoints.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...], "pagination": {...}, "analysis": {...}},
//	  "metadata": {
//	    "timestamp": "2026-05-01T12:00:00Z",
//	    "query_time_ms": 45,
//	    "request_id": "6f1c..."
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "USER_NOT_FOUND",
//	    "message": "user not found"
//	  },
//	  "metadata": {"timestamp": "2026-05-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: Handler execution time in milliseconds
//   - RequestID: Correlates the response with server logs
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Example:
//
//	{
//	  "code": "VALIDATION_ERROR",
//	  "message": "Invalid query parameters",
//	  "details": {"limit": "limit must be at most 50"}
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Strategy  string            `json:"strategy,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
