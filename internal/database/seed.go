// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/logging"
)

// Demo users created by SeedDemoData.
const (
	DemoUserAvidReader = "user-avid"
	DemoUserNewReader  = "user-new"
	DemoUserNoGenres   = "user-undeclared"
)

type seedGenre struct {
	id, name, slug string
}

type seedBook struct {
	id, title, description, status string
	deleted                        bool
	views, likes                   int64
	chapters                       int
	genres                         []string // genre ids in display order
}

type seedEntry struct {
	user, book, status string
	chapter            int
	seconds            int64
	daysAgo            int
}

type seedReview struct {
	user, book string
	rating     int
	content    string
}

var demoGenres = []seedGenre{
	{"genre-fantasy", "Fantasy", "fantasy"},
	{"genre-scifi", "Science Fiction", "science-fiction"},
	{"genre-mystery", "Mystery", "mystery"},
	{"genre-romance", "Romance", "romance"},
	{"genre-horror", "Horror", "horror"},
	{"genre-historical", "Historical", "historical"},
	{"genre-thriller", "Thriller", "thriller"},
}

var demoBooks = []seedBook{
	{"book-ember-crown", "The Ember Crown", "A disgraced heir bargains with a dragon for her throne.", BookStatusPublished, false, 48200, 3900, 42, []string{"genre-fantasy"}},
	{"book-salt-and-stars", "Salt and Stars", "A cartographer charts a sea that rewrites itself every night.", BookStatusPublished, false, 21500, 2100, 30, []string{"genre-fantasy", "genre-romance"}},
	{"book-orbital-debt", "Orbital Debt", "Asteroid miners unionize against the corporation that owns their air.", BookStatusPublished, false, 35100, 2800, 25, []string{"genre-scifi", "genre-thriller"}},
	{"book-quiet-signal", "The Quiet Signal", "First contact arrives as a single repeating prime.", BookStatusPublished, false, 12800, 1500, 18, []string{"genre-scifi"}},
	{"book-fog-lane", "Murder on Fog Lane", "A retired inspector is pulled back in by a familiar calling card.", BookStatusPublished, false, 27600, 1900, 22, []string{"genre-mystery"}},
	{"book-ledger", "The Last Ledger", "An accountant finds a second set of books and a body.", BookStatusPublished, false, 9400, 700, 16, []string{"genre-mystery", "genre-thriller"}},
	{"book-winter-letters", "Winter Letters", "Two strangers swap letters through a library's lost-and-found.", BookStatusPublished, false, 30300, 4100, 20, []string{"genre-romance"}},
	{"book-hollow-house", "The Hollow House", "The new tenants keep finding rooms that were not there yesterday.", BookStatusPublished, false, 18700, 1200, 24, []string{"genre-horror"}},
	{"book-river-kings", "River Kings", "Rival barge families on the Thames in 1851.", BookStatusPublished, false, 6100, 450, 35, []string{"genre-historical"}},
	{"book-glass-oracle", "The Glass Oracle", "A seer who can only predict other people's lies.", BookStatusPublished, false, 15200, 1750, 28, []string{"genre-fantasy", "genre-mystery"}},
	{"book-unfinished", "Untitled Draft", "Work in progress.", BookStatusDraft, false, 0, 0, 3, []string{"genre-fantasy"}},
	{"book-removed", "Removed Title", "Taken down by the author.", BookStatusPublished, true, 5000, 300, 10, []string{"genre-horror"}},
}

var demoUsers = []struct {
	id, username string
	genres       []string
}{
	{DemoUserAvidReader, "avid", []string{"Fantasy", "Mystery"}},
	{DemoUserNewReader, "newcomer", nil},
	{DemoUserNoGenres, "undeclared", nil},
}

var demoEntries = []seedEntry{
	{DemoUserAvidReader, "book-ember-crown", LibraryStatusCompleted, 42, 36000, 30},
	{DemoUserAvidReader, "book-fog-lane", LibraryStatusCompleted, 22, 18000, 12},
	{DemoUserAvidReader, "book-removed", LibraryStatusCompleted, 10, 7200, 60},
	{DemoUserAvidReader, "book-salt-and-stars", LibraryStatusReading, 12, 9000, 1},
	{DemoUserNoGenres, "book-orbital-debt", LibraryStatusCompleted, 25, 21000, 5},
	{DemoUserNoGenres, "book-quiet-signal", LibraryStatusReading, 4, 2400, 2},
}

var demoReviews = []seedReview{
	{DemoUserAvidReader, "book-ember-crown", 5, "The dragon negotiations alone are worth it."},
	{DemoUserAvidReader, "book-fog-lane", 4, "Classic whodunit, great final chapter."},
	{DemoUserNoGenres, "book-orbital-debt", 5, "Hard sci-fi with a heart."},
	{DemoUserNoGenres, "book-quiet-signal", 2, "Slow start."},
}

// SeedDemoData loads a small demo catalog and three readers when the books
// table is empty. It is a no-op on a populated database.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var existing int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&existing); err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	if existing > 0 {
		logging.Debug().Int64("books", existing).Msg("Database already populated, skipping demo seed")
		return nil
	}

	logging.Info().Msg("Seeding database with demo catalog...")

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := seedRows(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logging.Info().
		Int("genres", len(demoGenres)).
		Int("books", len(demoBooks)).
		Int("users", len(demoUsers)).
		Msg("Demo catalog seeded")
	return nil
}

func seedRows(ctx context.Context, tx *sql.Tx) error {
	for _, g := range demoGenres {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO genres (id, name, slug) VALUES (?, ?, ?)`, g.id, g.name, g.slug); err != nil {
			return fmt.Errorf("failed to seed genre %s: %w", g.id, err)
		}
	}

	for _, b := range demoBooks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO books (id, title, slug, description, status, is_deleted, views, likes, total_chapters)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.id, b.title, strings.TrimPrefix(b.id, "book-"), b.description, b.status, b.deleted,
			b.views, b.likes, b.chapters); err != nil {
			return fmt.Errorf("failed to seed book %s: %w", b.id, err)
		}
		for pos, genreID := range b.genres {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO book_genres (book_id, genre_id, position) VALUES (?, ?, ?)`,
				b.id, genreID, pos); err != nil {
				return fmt.Errorf("failed to seed genres of %s: %w", b.id, err)
			}
		}
	}

	for _, u := range demoUsers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, username, favorite_genres) VALUES (?, ?, ?)`,
			u.id, u.username, strings.Join(u.genres, ",")); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.id, err)
		}
	}

	now := time.Now().UTC()
	for _, e := range demoEntries {
		at := now.AddDate(0, 0, -e.daysAgo)
		var completedAt any
		if e.status == LibraryStatusCompleted {
			completedAt = at
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO library_entries (user_id, book_id, status, current_chapter, reading_time_seconds, completed_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.user, e.book, e.status, e.chapter, e.seconds, completedAt, at); err != nil {
			return fmt.Errorf("failed to seed library entry %s/%s: %w", e.user, e.book, err)
		}
	}

	for _, r := range demoReviews {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reviews (user_id, book_id, rating, content) VALUES (?, ?, ?, ?)`,
			r.user, r.book, r.rating, r.content); err != nil {
			return fmt.Errorf("failed to seed review %s/%s: %w", r.user, r.book, err)
		}
	}

	return nil
}
