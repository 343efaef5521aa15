// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package query provides SQL query building utilities for the database package.
//
// The WhereBuilder provides a fluent interface for constructing parameterized
// WHERE clauses, mostly the IN lists the store needs when loading genres for a
// batch of books or resolving genre names:
//
//	wb := query.NewWhereBuilder()
//	wb.AddAnyIn([]string{"lower(name)", "lower(slug)"}, []string{"fantasy", "sci-fi"})
//	whereClause, args := wb.BuildWithPrefix()
//	// WHERE (lower(name) IN (?, ?) OR lower(slug) IN (?, ?))
//	// Args: ["fantasy", "sci-fi", "fantasy", "sci-fi"]
//
// Values are always bound as arguments; only column expressions supplied by
// the caller are interpolated.
package query
