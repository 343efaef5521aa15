// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

var _ recommend.ReadingHistorySource = (*DB)(nil)

// DeclaredGenres returns the genres stored in the user's settings.
// Returns recommend.ErrUserNotFound if the user does not exist.
func (db *DB) DeclaredGenres(ctx context.Context, userID string) ([]string, error) {
	start := time.Now()
	var raw string
	err := db.conn.QueryRowContext(ctx, `SELECT favorite_genres FROM users WHERE id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("select", "users", time.Since(start), nil)
		return nil, recommend.ErrUserNotFound
	}
	metrics.RecordDBQuery("select", "users", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", userID, err)
	}

	return splitGenreList(raw), nil
}

// splitGenreList parses the comma separated favorite_genres column.
func splitGenreList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CompletedBooks returns the user's finished books, most recent first.
// Books that are deleted or missing come back with a nil Book.
func (db *DB) CompletedBooks(ctx context.Context, userID string) ([]recommend.CompletedBook, error) {
	sqlQuery := `
		SELECT COALESCE(le.completed_at, le.updated_at), ` + bookColumns + `
		FROM library_entries le
		LEFT JOIN books b ON b.id = le.book_id AND NOT b.is_deleted
		WHERE le.user_id = ? AND le.status = ?
		ORDER BY COALESCE(le.completed_at, le.updated_at) DESC, le.book_id`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sqlQuery, userID, LibraryStatusCompleted)
	if err != nil {
		metrics.RecordDBQuery("select", "library_entries", time.Since(start), err)
		return nil, fmt.Errorf("failed to query completed books: %w", err)
	}

	var out []recommend.CompletedBook
	for rows.Next() {
		var (
			completedAt time.Time
			nb          nullableBook
		)
		if err := rows.Scan(append([]any{&completedAt}, nb.dest()...)...); err != nil {
			closeQuietly(rows)
			metrics.RecordDBQuery("select", "library_entries", time.Since(start), err)
			return nil, fmt.Errorf("failed to scan completed book: %w", err)
		}
		out = append(out, recommend.CompletedBook{Book: nb.book(), CompletedAt: completedAt})
	}
	err = rows.Err()
	closeWithLog(rows, "rows")
	metrics.RecordDBQuery("select", "library_entries", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate completed books: %w", err)
	}

	books := make([]*recommend.CandidateBook, len(out))
	for i := range out {
		books[i] = out[i].Book
	}
	if err := db.attachGenres(ctx, books); err != nil {
		return nil, err
	}
	return out, nil
}

// CurrentlyReading returns the user's in-progress books, most recently
// updated first.
func (db *DB) CurrentlyReading(ctx context.Context, userID string) ([]recommend.ReadingBook, error) {
	sqlQuery := `
		SELECT le.current_chapter, COALESCE(b.total_chapters, 0), ` + bookColumns + `
		FROM library_entries le
		LEFT JOIN books b ON b.id = le.book_id AND NOT b.is_deleted
		WHERE le.user_id = ? AND le.status = ?
		ORDER BY le.updated_at DESC, le.book_id`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sqlQuery, userID, LibraryStatusReading)
	if err != nil {
		metrics.RecordDBQuery("select", "library_entries", time.Since(start), err)
		return nil, fmt.Errorf("failed to query reading books: %w", err)
	}

	var out []recommend.ReadingBook
	for rows.Next() {
		var (
			current, total int
			nb             nullableBook
		)
		if err := rows.Scan(append([]any{&current, &total}, nb.dest()...)...); err != nil {
			closeQuietly(rows)
			metrics.RecordDBQuery("select", "library_entries", time.Since(start), err)
			return nil, fmt.Errorf("failed to scan reading book: %w", err)
		}
		out = append(out, recommend.ReadingBook{Book: nb.book(), Progress: progress(current, total)})
	}
	err = rows.Err()
	closeWithLog(rows, "rows")
	metrics.RecordDBQuery("select", "library_entries", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate reading books: %w", err)
	}

	books := make([]*recommend.CandidateBook, len(out))
	for i := range out {
		books[i] = out[i].Book
	}
	if err := db.attachGenres(ctx, books); err != nil {
		return nil, err
	}
	return out, nil
}

// progress computes percent read, bounded to [0, 100]. An unknown chapter
// count yields 0%.
func progress(current, total int) recommend.ReadingProgress {
	p := recommend.ReadingProgress{CurrentChapter: current, TotalChapters: total}
	if total > 0 && current > 0 {
		p.Percent = min(float64(current)/float64(total)*100, 100)
	}
	return p
}

// RatedBooks returns books the user rated at least minRating, best first.
func (db *DB) RatedBooks(ctx context.Context, userID string, minRating int) ([]recommend.RatedBook, error) {
	sqlQuery := `
		SELECT r.rating, r.content, ` + bookColumns + `
		FROM reviews r
		LEFT JOIN books b ON b.id = r.book_id AND NOT b.is_deleted
		WHERE r.user_id = ? AND r.rating >= ?
		ORDER BY r.rating DESC, r.created_at DESC, r.book_id`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sqlQuery, userID, minRating)
	if err != nil {
		metrics.RecordDBQuery("select", "reviews", time.Since(start), err)
		return nil, fmt.Errorf("failed to query rated books: %w", err)
	}

	var out []recommend.RatedBook
	for rows.Next() {
		var (
			rating  int
			content string
			nb      nullableBook
		)
		if err := rows.Scan(append([]any{&rating, &content}, nb.dest()...)...); err != nil {
			closeQuietly(rows)
			metrics.RecordDBQuery("select", "reviews", time.Since(start), err)
			return nil, fmt.Errorf("failed to scan rated book: %w", err)
		}
		out = append(out, recommend.RatedBook{Book: nb.book(), Rating: rating, Review: content})
	}
	err = rows.Err()
	closeWithLog(rows, "rows")
	metrics.RecordDBQuery("select", "reviews", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate rated books: %w", err)
	}

	books := make([]*recommend.CandidateBook, len(out))
	for i := range out {
		books[i] = out[i].Book
	}
	if err := db.attachGenres(ctx, books); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalReadingTime returns the user's accumulated reading time in seconds.
func (db *DB) TotalReadingTime(ctx context.Context, userID string) (int64, error) {
	start := time.Now()
	var seconds int64
	// SUM over BIGINT is HUGEINT in DuckDB
	err := db.conn.QueryRowContext(ctx, `
		SELECT CAST(COALESCE(SUM(reading_time_seconds), 0) AS BIGINT)
		FROM library_entries
		WHERE user_id = ?`, userID).Scan(&seconds)
	metrics.RecordDBQuery("select", "library_entries", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to query reading time: %w", err)
	}
	return seconds, nil
}
