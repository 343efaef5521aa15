// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and are
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - folio_recommend_requests_total: Requests by status (counter)
    Labels: status (success, error, not_found, canceled)
  - folio_recommend_duration_seconds: End-to-end latency (histogram)
  - folio_recommend_strategy_total: Strategy outcomes (counter)
    Labels: strategy (ai, fallback), outcome
  - folio_recommend_results: Results produced per request (histogram)

Text Oracle Metrics:
  - folio_oracle_calls_total: Oracle calls (counter)
    Labels: oracle, outcome (success, empty, error)
  - folio_oracle_call_duration_seconds: Oracle latency (histogram)
    Labels: oracle

Circuit Breaker Metrics:
  - folio_circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - folio_circuit_breaker_requests_total: Requests (counter)
    Labels: name, result (success, failure, rejected)
  - folio_circuit_breaker_state_transitions_total: Transitions (counter)
    Labels: name, from_state, to_state

HTTP Metrics:
  - folio_api_requests_total: Requests (counter)
    Labels: method, endpoint (route pattern), status_code
  - folio_api_request_duration_seconds: Latency (histogram)
    Labels: method, endpoint
  - folio_api_active_requests: In-flight requests (gauge)
  - folio_api_rate_limit_hits_total: Rate limit rejections (counter)

Database and Cache Metrics:
  - folio_duckdb_query_duration_seconds: Query time (histogram)
    Labels: operation, table
  - folio_duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - folio_cache_hits_total, folio_cache_misses_total: Lookups (counter)
    Labels: cache
  - folio_cache_entries: Entries held (gauge)
    Labels: cache

Endpoint labels always use the chi route pattern, never the raw path, so user
ids do not leak into label values.
*/
package metrics
