// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package logging provides centralized zerolog-based structured logging for Folio.
//
// JSON output is the production default; console output is available for
// development. Request handlers attach request and correlation ids to the
// context, and Ctx turns them into log fields.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("oracle unavailable, using fallback")
//
// Components take a zerolog.Logger in their constructors and derive a child
// with a component field:
//
//	engine := recommend.NewEngine(cfg, profiles, catalog, strategy, logging.Component("recommend"))
//
// # slog Bridge
//
// NewSlogLogger adapts the global logger to *slog.Logger for libraries that
// only speak slog, such as sutureslog:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger("supervisor")}
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is
// never written.
package logging
