// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/folio/internal/database/query"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

// bookColumns selects a book through the alias "b". Used with LEFT JOINs, so
// every column may be NULL when the book does not resolve.
const bookColumns = `b.id, b.title, b.slug, b.description, b.views, b.likes`

// nullableBook receives bookColumns from a LEFT JOIN.
type nullableBook struct {
	id          sql.NullString
	title       sql.NullString
	slug        sql.NullString
	description sql.NullString
	views       sql.NullInt64
	likes       sql.NullInt64
}

// dest returns scan destinations in bookColumns order.
func (n *nullableBook) dest() []any {
	return []any{&n.id, &n.title, &n.slug, &n.description, &n.views, &n.likes}
}

// book returns the resolved book, or nil when the join found nothing.
func (n *nullableBook) book() *recommend.CandidateBook {
	if !n.id.Valid {
		return nil
	}
	return &recommend.CandidateBook{
		ID:          n.id.String,
		Title:       n.title.String,
		Slug:        n.slug.String,
		Description: n.description.String,
		Views:       n.views.Int64,
		Likes:       n.likes.Int64,
		Genres:      []recommend.Genre{},
	}
}

// attachGenres loads the genres of every non-nil book in one query and sets
// them in catalog position order.
func (db *DB) attachGenres(ctx context.Context, books []*recommend.CandidateBook) error {
	byID := make(map[string][]*recommend.CandidateBook, len(books))
	ids := make([]string, 0, len(books))
	for _, b := range books {
		if b == nil {
			continue
		}
		if _, ok := byID[b.ID]; !ok {
			ids = append(ids, b.ID)
		}
		byID[b.ID] = append(byID[b.ID], b)
	}
	if len(ids) == 0 {
		return nil
	}

	wb := query.NewWhereBuilder()
	wb.AddIn("bg.book_id", ids)
	whereClause, args := wb.BuildWithPrefix()

	sqlQuery := fmt.Sprintf(`
		SELECT bg.book_id, g.id, g.name, g.slug
		FROM book_genres bg
		JOIN genres g ON g.id = bg.genre_id
		%s
		ORDER BY bg.book_id, bg.position, g.name`, whereClause)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		metrics.RecordDBQuery("select", "book_genres", time.Since(start), err)
		return fmt.Errorf("failed to query book genres: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var bookID string
		var g recommend.Genre
		if err := rows.Scan(&bookID, &g.ID, &g.Name, &g.Slug); err != nil {
			metrics.RecordDBQuery("select", "book_genres", time.Since(start), err)
			return fmt.Errorf("failed to scan book genre: %w", err)
		}
		for _, b := range byID[bookID] {
			b.Genres = append(b.Genres, g)
		}
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "book_genres", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to iterate book genres: %w", err)
	}
	return nil
}
