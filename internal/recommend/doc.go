// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package recommend implements Folio's personalized book recommendation engine.
//
// # Architecture
//
// A request flows through four parts:
//
//   - ProfileAssembler: builds a UserProfile (completed, in-progress and highly
//     rated books, favorite genres, reading time) from a ReadingHistorySource.
//   - CatalogSampler: draws a bounded set of eligible (published, not deleted)
//     books from a CatalogSource.
//   - Strategy: ranks the candidates. AIStrategy asks a text oracle for a
//     strict JSON answer and validates it against the candidate set;
//     FallbackStrategy ranks by favorite genre and popularity with no I/O
//     beyond the injected GenreLookup.
//   - Engine: runs the profile and catalog fetches concurrently, drops books
//     the reader has already started, invokes the strategy and paginates.
//
// The AI strategy owns its fallback. Any prompt, oracle or parse failure, and
// any oracle answer that names no valid candidate, yields the fallback result
// for the same inputs. Callers only see an error when their context ends.
//
// # Determinism
//
// FallbackStrategy output depends only on its inputs: genre matches are
// ordered by views then likes, the popularity backfill by views+likes, with
// ties kept in candidate order.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	fallback := recommend.NewFallbackStrategy(genreCache, logger)
//	strategy := recommend.NewAIStrategy(textOracle, fallback, cfg, logger)
//
//	engine, err := recommend.NewEngine(cfg,
//	    recommend.NewProfileAssembler(store, cfg, logger),
//	    recommend.NewCatalogSampler(store, logger),
//	    strategy, logger)
//
//	page, err := engine.GetPersonalizedRecommendations(ctx, userID, 1, 10)
//
// Nothing is cached between requests; every call recomputes from current data.
package recommend
