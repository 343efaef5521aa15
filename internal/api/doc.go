// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api provides the HTTP surface of the Folio recommendation service.

Routing uses chi with production middleware from the chi ecosystem
(go-chi/cors, go-chi/httprate, chi's Recoverer/RealIP/Compress) plus the
service's own RequestID, AccessLog and PrometheusMetrics middleware.

# Endpoints

	GET /api/v1/users/{userID}/recommendations?page=&limit=
	GET /api/v1/recommendations/stats
	GET /health          aggregated status
	GET /health/live     liveness, no dependencies
	GET /health/ready    readiness, pings DuckDB
	GET /metrics         Prometheus exposition

# Response Envelope

Every JSON response uses models.APIResponse:

	{
	  "status": "success",
	  "data": {"recommendations": [...], "pagination": {...}, "analysis": {...}},
	  "metadata": {"timestamp": "...", "query_time_ms": 12, "request_id": "..."}
	}

Errors set status to "error" and carry models.APIError with a stable code:
VALIDATION_ERROR (400), USER_NOT_FOUND (404), RATE_LIMIT_EXCEEDED (429),
RECOMMENDATION_ERROR (500) or SERVICE_UNAVAILABLE (503).
*/
package api
