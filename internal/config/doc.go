// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package config provides centralized configuration management for the Folio
recommendation service.

# Configuration Sources

Configuration is layered with Koanf v2, each layer overriding the previous:
  - Struct defaults (defaultConfig)
  - Optional YAML file: CONFIG_PATH, config.yaml, or /etc/folio/config.yaml
  - Environment variables, mapped explicitly (unknown variables are ignored)

# Configuration Structure

  - ServerConfig: HTTP server settings (host, port, timeouts, environment)
  - DatabaseConfig: DuckDB path and tuning, demo seeding, genre cache
  - LoggingConfig: zerolog level, format and caller info
  - RecommendConfig: engine limits, candidate pool, oracle timeout
  - OracleConfig: Gemini credentials, rate limiter and circuit breaker
  - SecurityConfig: CORS origins and per-IP rate limiting

# Environment Variables

Server:
  - HTTP_PORT (default: 8080), HTTP_HOST (default: 0.0.0.0)
  - HTTP_TIMEOUT (default: 30s), HTTP_SHUTDOWN_TIMEOUT (default: 10s)
  - ENVIRONMENT: development, staging or production

Database:
  - DUCKDB_PATH (default: /data/folio.duckdb), DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - SEED_DEMO_DATA, GENRE_CACHE_SIZE, GENRE_CACHE_TTL, DUCKDB_CHECKPOINT_INTERVAL

Recommendations:
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT
  - RECOMMEND_CANDIDATE_POOL_SIZE, RECOMMEND_MAX_PROMPT_CANDIDATES
  - RECOMMEND_ORACLE_TIMEOUT, RECOMMEND_HIGH_RATING_THRESHOLD
  - RECOMMEND_MAX_FAVORITE_GENRES, RECOMMEND_EXCLUDE_READ_BOOKS

Oracle:
  - ORACLE_ENABLED, ORACLE_API_KEY (or GEMINI_API_KEY), ORACLE_MODEL
  - ORACLE_TEMPERATURE, ORACLE_MAX_OUTPUT_TOKENS, ORACLE_BASE_URL
  - ORACLE_RATE_LIMIT, ORACLE_RATE_BURST, ORACLE_BREAKER_*

Logging and security:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
*/
package config
