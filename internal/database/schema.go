// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"time"
)

// Book publication states. Only published books are recommendable.
const (
	BookStatusDraft     = "draft"
	BookStatusPublished = "published"
)

// Library entry states.
const (
	LibraryStatusReading   = "reading"
	LibraryStatusCompleted = "completed"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates tables and indexes. Statements are idempotent.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := append(getTableCreationQueries(), getIndexQueries()...)
	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements.
//
// There are no foreign keys: history rows may outlive their book (hard
// deletes, imports), and readers must see those rows with an unresolved book
// rather than fail.
func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			-- comma separated genre names picked in the user's settings
			favorite_genres TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS genres (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		);`,

		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			is_deleted BOOLEAN NOT NULL DEFAULT false,
			views BIGINT NOT NULL DEFAULT 0,
			likes BIGINT NOT NULL DEFAULT 0,
			total_chapters INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS book_genres (
			book_id TEXT NOT NULL,
			genre_id TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (book_id, genre_id)
		);`,

		`CREATE TABLE IF NOT EXISTS library_entries (
			user_id TEXT NOT NULL,
			book_id TEXT NOT NULL,
			status TEXT NOT NULL,
			current_chapter INTEGER NOT NULL DEFAULT 0,
			reading_time_seconds BIGINT NOT NULL DEFAULT 0,
			completed_at TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, book_id)
		);`,

		`CREATE TABLE IF NOT EXISTS reviews (
			user_id TEXT NOT NULL,
			book_id TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			content TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, book_id)
		);`,
	}
}

// getIndexQueries returns index creation SQL statements
func getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_books_status ON books(status, is_deleted);`,
		`CREATE INDEX IF NOT EXISTS idx_library_user_status ON library_entries(user_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_user_rating ON reviews(user_id, rating);`,
		`CREATE INDEX IF NOT EXISTS idx_genres_name ON genres(name);`,
	}
}
