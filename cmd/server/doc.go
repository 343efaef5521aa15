// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package main is the entry point for the Folio recommendation service.

The server answers personalized book recommendation requests for readers of
a social reading platform. It samples the published catalog from DuckDB,
assembles a reader profile from their history, and ranks candidates either
with a generative oracle (Gemini) or with a deterministic genre/popularity
fallback.

# Application Architecture

	folio (root supervisor)
	├── data-layer
	│   ├── genre-cache-warmer   (when GENRE_CACHE_SIZE > 0)
	│   └── duckdb-checkpoint    (file-backed databases)
	└── api-layer
	    └── http-server          (chi router)

Initialization order:

 1. Configuration: koanf defaults, optional YAML, environment variables
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB schema, optional demo data
 4. Recommendation engine: profile assembler, catalog sampler, strategy
    (AI over rate limiter and circuit breaker when ORACLE_ENABLED=true)
 5. HTTP router and supervisor tree

SIGINT or SIGTERM cancels the root context; the HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT and DuckDB is checkpointed on close.

# Quick Start

	SEED_DEMO_DATA=true DUCKDB_PATH=:memory: go run ./cmd/server
	curl localhost:8080/api/v1/users/user-avid/recommendations?limit=5
*/
package main
