// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides HTTP middleware for the Folio API.

All middleware use the standard func(http.Handler) http.Handler shape and
are mounted on the chi router in internal/api:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation ids
  - AccessLog: one zerolog line per request
  - PrometheusMetrics: request totals, latency histograms and the in-flight
    gauge, labelled by chi route pattern rather than raw path

Order matters: RequestID must run first so AccessLog and handlers see the
ids, and PrometheusMetrics must sit inside the chi router so the route
pattern is resolved by the time it records.

Example:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
