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

func fantasyCatalog() []CandidateBook {
	return []CandidateBook{
		testBook("n1", 1000, 5, "Science Fiction"),
		testBook("f3", 10, 1, "Fantasy"),
		testBook("f1", 100, 3, "Fantasy", "Adventure"),
		testBook("n2", 900, 4, "Mystery"),
		testBook("f2", 50, 2, "Fantasy"),
	}
}

func TestFallback_ScenarioGenreMatch(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(newFakeGenres("Fantasy", "Mystery"), zerolog.Nop())
	profile := &UserProfile{FavoriteGenres: []string{"Fantasy"}}

	resp, err := s.Generate(context.Background(), "u1", profile, fantasyCatalog(), 3)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if got, want := bookIDs(resp.Recommendations), []string{"f1", "f2", "f3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for _, r := range resp.Recommendations {
		if r.MatchScore != GenreMatchScore {
			t.Errorf("%s score = %v, want %d", r.BookID, r.MatchScore, GenreMatchScore)
		}
		if r.Reason != "matches favorite genre Fantasy" {
			t.Errorf("%s reason = %q", r.BookID, r.Reason)
		}
		if r.Slug != "slug-"+r.BookID || r.Book.ID != r.BookID || r.Title != r.Book.Title {
			t.Errorf("%s not attached to its catalog entry: %+v", r.BookID, r)
		}
	}
}

func TestFallback_ScenarioPopularity(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(nil, zerolog.Nop())
	candidates := []CandidateBook{
		testBook("a", 30, 0), testBook("b", 50, 0), testBook("c", 10, 0),
		testBook("d", 40, 0), testBook("e", 20, 0),
	}

	resp, err := s.Generate(context.Background(), "u1", &UserProfile{FavoriteGenres: []string{}}, candidates, 2)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if got, want := bookIDs(resp.Recommendations), []string{"b", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for _, r := range resp.Recommendations {
		if r.MatchScore != PopularMatchScore || r.Reason != "popular book" {
			t.Errorf("%s = (%v, %q), want (%d, popular book)", r.BookID, r.MatchScore, r.Reason, PopularMatchScore)
		}
	}
}

func TestFallback_BackfillAfterGenreMatches(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(newFakeGenres("Fantasy"), zerolog.Nop())
	profile := &UserProfile{FavoriteGenres: []string{"Fantasy"}}
	candidates := fantasyCatalog()

	tests := []struct {
		limit int
		want  []string
	}{
		{limit: 1, want: []string{"f1"}},
		{limit: 4, want: []string{"f1", "f2", "f3", "n1"}},
		{limit: 5, want: []string{"f1", "f2", "f3", "n1", "n2"}},
		{limit: 10, want: []string{"f1", "f2", "f3", "n1", "n2"}},
	}

	for _, tt := range tests {
		resp, err := s.Generate(context.Background(), "u1", profile, candidates, tt.limit)
		if err != nil {
			t.Fatalf("limit %d: Generate() error = %v", tt.limit, err)
		}
		got := bookIDs(resp.Recommendations)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("limit %d: ids = %v, want %v", tt.limit, got, tt.want)
		}
		if len(got) != min(tt.limit, len(candidates)) {
			t.Errorf("limit %d: returned %d, want %d", tt.limit, len(got), min(tt.limit, len(candidates)))
		}
		for i, r := range resp.Recommendations {
			wantScore := float64(GenreMatchScore)
			if i >= 3 {
				wantScore = PopularMatchScore
			}
			if r.MatchScore != wantScore {
				t.Errorf("limit %d: %s score = %v, want %v", tt.limit, r.BookID, r.MatchScore, wantScore)
			}
		}
	}
}

func TestFallback_Deterministic(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(newFakeGenres("Fantasy", "Mystery"), zerolog.Nop())
	profile := &UserProfile{FavoriteGenres: []string{"Mystery", "Fantasy"}}
	candidates := append(fantasyCatalog(),
		testBook("t1", 50, 2, "Fantasy"),
		testBook("t2", 50, 9, "Mystery"),
		testBook("p1", 0, 0),
	)

	first, _ := s.Generate(context.Background(), "u1", profile, candidates, 6)
	for i := 0; i < 10; i++ {
		again, _ := s.Generate(context.Background(), "u1", profile, candidates, 6)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%+v\n%+v", i, first, again)
		}
	}
}

func TestFallback_TieBreaks(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(nil, zerolog.Nop())
	profile := &UserProfile{FavoriteGenres: []string{"Horror"}}
	candidates := []CandidateBook{
		testBook("h-first", 10, 1, "Horror"),
		testBook("h-liked", 10, 5, "Horror"),
		testBook("h-second", 10, 1, "Horror"),
		testBook("p-first", 7, 3),
		testBook("p-second", 5, 5),
	}

	resp, _ := s.Generate(context.Background(), "u1", profile, candidates, 5)
	want := []string{"h-liked", "h-first", "h-second", "p-first", "p-second"}
	if got := bookIDs(resp.Recommendations); !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestFallback_ReasonUsesFirstFavoriteInProfileOrder(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(newFakeGenres("Fantasy", "Adventure"), zerolog.Nop())
	profile := &UserProfile{FavoriteGenres: []string{"adventure", "Fantasy"}}

	resp, _ := s.Generate(context.Background(), "u1", profile, []CandidateBook{testBook("f1", 1, 1, "Fantasy", "Adventure")}, 1)
	if got := resp.Recommendations[0].Reason; got != "matches favorite genre Adventure" {
		t.Errorf("reason = %q, want catalog name of first matching favorite", got)
	}
}

func TestFallback_LookupFailureMatchesByName(t *testing.T) {
	t.Parallel()

	genres := newFakeGenres("Fantasy")
	genres.err = errors.New("genre store unavailable")
	s := NewFallbackStrategy(genres, zerolog.Nop())

	resp, err := s.Generate(context.Background(), "u1", &UserProfile{FavoriteGenres: []string{"fantasy"}}, fantasyCatalog(), 3)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := bookIDs(resp.Recommendations), []string{"f1", "f2", "f3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if genres.calls.Load() != 1 {
		t.Errorf("lookup calls = %d, want 1", genres.calls.Load())
	}
}

func TestFallback_EmptyInputs(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(nil, zerolog.Nop())
	profile := &UserProfile{FavoriteGenres: []string{"Fantasy"}}

	tests := []struct {
		name       string
		profile    *UserProfile
		candidates []CandidateBook
		limit      int
	}{
		{name: "no candidates", profile: profile, candidates: nil, limit: 5},
		{name: "zero limit", profile: profile, candidates: fantasyCatalog(), limit: 0},
		{name: "negative limit", profile: profile, candidates: fantasyCatalog(), limit: -1},
		{name: "nil profile", profile: nil, candidates: nil, limit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := s.Generate(context.Background(), "u1", tt.profile, tt.candidates, tt.limit)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if resp.Recommendations == nil || len(resp.Recommendations) != 0 {
				t.Errorf("recommendations = %#v, want empty non-nil", resp.Recommendations)
			}
			if resp.Analysis.ReadingPace != PaceMedium || resp.Analysis.PreferredLength != LengthMedium {
				t.Errorf("analysis = %+v, want medium defaults", resp.Analysis)
			}
			if resp.Analysis.Themes == nil || resp.Analysis.FavoriteGenres == nil {
				t.Errorf("analysis lists must be non-nil: %+v", resp.Analysis)
			}
		})
	}
}

func TestFallback_AnalysisCopiesFavorites(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(nil, zerolog.Nop())
	profile := &UserProfile{FavoriteGenres: []string{"Fantasy", "Mystery"}}

	resp, _ := s.Generate(context.Background(), "u1", profile, fantasyCatalog(), 2)
	if !reflect.DeepEqual(resp.Analysis.FavoriteGenres, profile.FavoriteGenres) {
		t.Errorf("favoriteGenres = %v", resp.Analysis.FavoriteGenres)
	}

	resp.Analysis.FavoriteGenres[0] = "mutated"
	if profile.FavoriteGenres[0] != "Fantasy" {
		t.Error("analysis aliases the profile's favorite genres")
	}
}

func TestFallback_DuplicateCandidateIDs(t *testing.T) {
	t.Parallel()

	s := NewFallbackStrategy(nil, zerolog.Nop())
	candidates := []CandidateBook{testBook("a", 10, 0, "Fantasy"), testBook("a", 10, 0, "Fantasy"), testBook("b", 5, 0)}

	resp, _ := s.Generate(context.Background(), "u1", &UserProfile{FavoriteGenres: []string{"Fantasy"}}, candidates, 5)
	if got, want := bookIDs(resp.Recommendations), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}
