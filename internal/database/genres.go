// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/database/query"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

var _ recommend.GenreLookup = (*DB)(nil)

// ResolveGenres returns the genres whose name or slug matches one of names,
// case-insensitively, ordered by name.
func (db *DB) ResolveGenres(ctx context.Context, names []string) ([]recommend.Genre, error) {
	keys := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return []recommend.Genre{}, nil
	}

	wb := query.NewWhereBuilder()
	wb.AddAnyIn([]string{"lower(name)", "lower(slug)"}, keys)
	whereClause, args := wb.BuildWithPrefix()

	return db.queryGenres(ctx, "SELECT id, name, slug FROM genres "+whereClause+" ORDER BY name, id", args...)
}

// ListGenres returns every genre ordered by name.
func (db *DB) ListGenres(ctx context.Context) ([]recommend.Genre, error) {
	return db.queryGenres(ctx, "SELECT id, name, slug FROM genres ORDER BY name, id")
}

func (db *DB) queryGenres(ctx context.Context, sqlQuery string, args ...any) ([]recommend.Genre, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		metrics.RecordDBQuery("select", "genres", time.Since(start), err)
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := []recommend.Genre{}
	for rows.Next() {
		var g recommend.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			metrics.RecordDBQuery("select", "genres", time.Since(start), err)
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		out = append(out, g)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "genres", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate genres: %w", err)
	}
	return out, nil
}
