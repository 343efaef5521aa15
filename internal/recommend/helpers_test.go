// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"strings"
	"sync/atomic"
)

// testBook builds a candidate whose genre ids are "g-" + lowercase name.
func testBook(id string, views, likes int64, genres ...string) CandidateBook {
	b := CandidateBook{
		ID:          id,
		Title:       "Title " + id,
		Slug:        "slug-" + id,
		Description: "Description of " + id,
		Views:       views,
		Likes:       likes,
		Genres:      make([]Genre, 0, len(genres)),
	}
	for _, g := range genres {
		b.Genres = append(b.Genres, Genre{ID: "g-" + strings.ToLower(g), Name: g, Slug: strings.ToLower(g)})
	}
	return b
}

func bookIDs(results []RecommendationResult) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.BookID)
	}
	return ids
}

// fakeGenres resolves names against a fixed genre list.
type fakeGenres struct {
	genres []Genre
	err    error
	calls  atomic.Int32
}

func newFakeGenres(names ...string) *fakeGenres {
	f := &fakeGenres{}
	for _, n := range names {
		f.genres = append(f.genres, Genre{ID: "g-" + strings.ToLower(n), Name: n, Slug: strings.ToLower(n)})
	}
	return f
}

func (f *fakeGenres) ResolveGenres(_ context.Context, names []string) ([]Genre, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	var out []Genre
	for _, n := range names {
		for _, g := range f.genres {
			if strings.EqualFold(g.Name, n) || strings.EqualFold(g.Slug, n) {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

// fakeHistory is an in-memory ReadingHistorySource.
type fakeHistory struct {
	declared  []string
	completed []CompletedBook
	reading   []ReadingBook
	rated     []RatedBook
	seconds   int64

	notFound bool
	err      error // returned from CompletedBooks
}

func (f *fakeHistory) DeclaredGenres(context.Context, string) ([]string, error) {
	if f.notFound {
		return nil, ErrUserNotFound
	}
	return f.declared, nil
}

func (f *fakeHistory) CompletedBooks(context.Context, string) ([]CompletedBook, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.completed, nil
}

func (f *fakeHistory) CurrentlyReading(context.Context, string) ([]ReadingBook, error) {
	return f.reading, nil
}

func (f *fakeHistory) RatedBooks(_ context.Context, _ string, minRating int) ([]RatedBook, error) {
	out := make([]RatedBook, 0, len(f.rated))
	for _, r := range f.rated {
		if r.Rating >= minRating {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHistory) TotalReadingTime(context.Context, string) (int64, error) {
	return f.seconds, nil
}

// fakeCatalog is an in-memory CatalogSource.
type fakeCatalog struct {
	books    []CandidateBook
	err      error
	maxCount atomic.Int32
}

func (f *fakeCatalog) SampleEligible(_ context.Context, maxCount int) ([]CandidateBook, error) {
	f.maxCount.Store(int32(maxCount))
	if f.err != nil {
		return nil, f.err
	}
	if len(f.books) > maxCount {
		return f.books[:maxCount], nil
	}
	return f.books, nil
}

// stubStrategy returns a fixed response and records its inputs.
type stubStrategy struct {
	resp       *RecommendationResponse
	err        error
	candidates []CandidateBook
	limit      int
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) Generate(_ context.Context, _ string, _ *UserProfile, candidates []CandidateBook, limit int) (*RecommendationResponse, error) {
	s.candidates = candidates
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}
