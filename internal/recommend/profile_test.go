// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestProfileAssembler_EmptyHistory(t *testing.T) {
	t.Parallel()

	a := NewProfileAssembler(&fakeHistory{}, nil, zerolog.Nop())
	p, err := a.Assemble(context.Background(), "new-reader")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if p.UserID != "new-reader" {
		t.Errorf("UserID = %q", p.UserID)
	}
	if p.CompletedBooks == nil || p.CurrentlyReading == nil || p.HighRatedBooks == nil || p.FavoriteGenres == nil {
		t.Errorf("lists must be empty, not nil: %+v", p)
	}
	if p.TotalReadingTimeSeconds != 0 {
		t.Errorf("TotalReadingTimeSeconds = %d", p.TotalReadingTimeSeconds)
	}
}

func TestProfileAssembler_DropsUnresolvedBooks(t *testing.T) {
	t.Parallel()

	a1, a2, r1 := testBook("a1", 0, 0), testBook("a2", 0, 0), testBook("r1", 0, 0)
	src := &fakeHistory{
		completed: []CompletedBook{{Book: &a1}, {Book: nil}, {Book: &a2}},
		reading:   []ReadingBook{{Book: nil}, {Book: &r1}},
		rated:     []RatedBook{{Book: nil, Rating: 5}, {Book: &a1, Rating: 5}, {Book: &a2, Rating: 3}},
		seconds:   -10,
	}

	p, err := NewProfileAssembler(src, nil, zerolog.Nop()).Assemble(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(p.CompletedBooks) != 2 || len(p.CurrentlyReading) != 1 {
		t.Errorf("completed=%d reading=%d, want 2 and 1", len(p.CompletedBooks), len(p.CurrentlyReading))
	}
	if len(p.HighRatedBooks) != 1 || p.HighRatedBooks[0].Book.ID != "a1" {
		t.Errorf("high rated = %+v, want only a1", p.HighRatedBooks)
	}
	if p.TotalReadingTimeSeconds != 0 {
		t.Errorf("negative reading time should clamp to 0, got %d", p.TotalReadingTimeSeconds)
	}
}

func TestProfileAssembler_FavoriteGenres(t *testing.T) {
	t.Parallel()

	f1 := testBook("f1", 0, 0, "Fantasy", "Adventure")
	f2 := testBook("f2", 0, 0, "fantasy")
	m1 := testBook("m1", 0, 0, "Mystery", "Adventure")
	h1 := testBook("h1", 0, 0, "Horror")

	src := &fakeHistory{
		declared:  []string{" Romance ", "", "romance", "Poetry"},
		completed: []CompletedBook{{Book: &f1}, {Book: &f2}, {Book: &m1}},
		rated:     []RatedBook{{Book: &f1, Rating: 5}, {Book: &h1, Rating: 4}},
	}

	cfg := DefaultConfig()
	cfg.MaxFavoriteGenres = 5

	p, err := NewProfileAssembler(src, cfg, zerolog.Nop()).Assemble(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	// Fantasy 3, Adventure 3, Horror 1, Mystery 1; ties by name.
	want := []string{"Romance", "Poetry", "Adventure", "Fantasy", "Horror"}
	if !reflect.DeepEqual(p.FavoriteGenres, want) {
		t.Errorf("FavoriteGenres = %v, want %v", p.FavoriteGenres, want)
	}
}

func TestProfileAssembler_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		_, err := NewProfileAssembler(&fakeHistory{notFound: true}, nil, zerolog.Nop()).Assemble(context.Background(), "ghost")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("source failure", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("duckdb: connection closed")
		_, err := NewProfileAssembler(&fakeHistory{err: boom}, nil, zerolog.Nop()).Assemble(context.Background(), "u1")
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want wrapped source error", err)
		}
	})
}
