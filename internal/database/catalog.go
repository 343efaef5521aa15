// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

var _ recommend.CatalogSource = (*DB)(nil)

// SampleEligible returns up to maxCount random published, non-deleted books
// with their genres.
func (db *DB) SampleEligible(ctx context.Context, maxCount int) ([]recommend.CandidateBook, error) {
	if maxCount <= 0 {
		return []recommend.CandidateBook{}, nil
	}

	sqlQuery := `
		SELECT ` + bookColumns + `
		FROM books b
		WHERE b.status = ? AND NOT b.is_deleted
		ORDER BY random()
		LIMIT ?`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sqlQuery, BookStatusPublished, maxCount)
	if err != nil {
		metrics.RecordDBQuery("select", "books", time.Since(start), err)
		return nil, fmt.Errorf("failed to sample books: %w", err)
	}

	books := make([]*recommend.CandidateBook, 0, maxCount)
	for rows.Next() {
		var nb nullableBook
		if err := rows.Scan(nb.dest()...); err != nil {
			closeQuietly(rows)
			metrics.RecordDBQuery("select", "books", time.Since(start), err)
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		if b := nb.book(); b != nil {
			books = append(books, b)
		}
	}
	err = rows.Err()
	closeWithLog(rows, "rows")
	metrics.RecordDBQuery("select", "books", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	if err := db.attachGenres(ctx, books); err != nil {
		return nil, err
	}

	out := make([]recommend.CandidateBook, len(books))
	for i, b := range books {
		out[i] = *b
	}
	return out, nil
}

// CountEligibleBooks returns the number of recommendable books.
func (db *DB) CountEligibleBooks(ctx context.Context) (int64, error) {
	start := time.Now()
	var n int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE status = ? AND NOT is_deleted`, BookStatusPublished).Scan(&n)
	metrics.RecordDBQuery("count", "books", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}
