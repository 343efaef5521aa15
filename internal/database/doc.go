// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package database provides the DuckDB-backed store behind the recommendation
// engine.
//
// # Overview
//
// DB implements the three collaborator interfaces of package recommend:
//   - recommend.ReadingHistorySource: declared genres, completed and
//     in-progress books, ratings and reading time for a user
//   - recommend.CatalogSource: random samples of published, non-deleted books
//   - recommend.GenreLookup: case-insensitive genre resolution by name or slug
//
// GenreCache wraps the genre lookup with an expirable LRU
// (github.com/hashicorp/golang-lru/v2/expirable) and can be warmed at startup.
//
// # Files
//
//   - database.go: connection lifecycle (open, pool, ping, checkpoint, close)
//   - schema.go: table and index creation
//   - books.go: shared book projection and batched genre loading
//   - history.go: reading history queries
//   - catalog.go: candidate sampling
//   - genres.go, genre_cache.go: genre resolution and caching
//   - seed.go: demo catalog for local runs
//
// # History Rows
//
// History tables carry no foreign keys. A library entry or review whose book
// was deleted is returned with a nil Book, and the profile assembler drops it.
//
// # Observability
//
// Every query reports its latency and failures through
// metrics.RecordDBQuery, labelled by operation and table.
package database
