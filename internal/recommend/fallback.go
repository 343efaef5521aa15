// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/metrics"
)

// Fixed scores and reasons used by the fallback strategy.
const (
	GenreMatchScore   = 80
	PopularMatchScore = 60

	genreMatchReasonPrefix = "matches favorite genre "
	popularReason          = "popular book"
)

// FallbackStrategy ranks candidates using only deterministic signals:
// favorite genre overlap first, then popularity.
//
// For a fixed profile, candidate list and limit the output is identical across
// calls. Ties are broken by candidate order.
type FallbackStrategy struct {
	genres GenreLookup
	logger zerolog.Logger
}

// NewFallbackStrategy creates a fallback strategy. genres may be nil, in which
// case favorite genres are matched by name only.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFallbackStrategy(genres GenreLookup, logger zerolog.Logger) *FallbackStrategy {
	return &FallbackStrategy{
		genres: genres,
		logger: logger.With().Str("strategy", StrategyFallback).Logger(),
	}
}

// Name implements Strategy.
func (s *FallbackStrategy) Name() string {
	return StrategyFallback
}

// Generate implements Strategy. It never returns an error.
func (s *FallbackStrategy) Generate(ctx context.Context, userID string, profile *UserProfile, candidates []CandidateBook, limit int) (*RecommendationResponse, error) {
	if profile == nil {
		profile = &UserProfile{UserID: userID}
	}

	resp := &RecommendationResponse{
		Analysis:        fallbackAnalysis(profile),
		Recommendations: []RecommendationResult{},
	}
	if limit <= 0 || len(candidates) == 0 {
		metrics.RecordStrategyOutcome(StrategyFallback, "empty")
		return resp, nil
	}

	selected := make(map[string]struct{}, limit)
	results := make([]RecommendationResult, 0, limit)

	if len(profile.FavoriteGenres) > 0 {
		matcher := s.newGenreMatcher(ctx, profile.FavoriteGenres)
		for _, m := range matchFavoriteGenres(candidates, matcher) {
			if len(results) >= limit {
				break
			}
			results = append(results, newResult(m.book, genreMatchReasonPrefix+m.genre, GenreMatchScore))
			selected[m.book.ID] = struct{}{}
		}
	}

	if len(results) < limit {
		for _, book := range popularBackfill(candidates, selected) {
			if len(results) >= limit {
				break
			}
			results = append(results, newResult(book, popularReason, PopularMatchScore))
		}
	}

	resp.Recommendations = results
	metrics.RecordStrategyOutcome(StrategyFallback, "success")

	s.logger.Debug().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Int("returned", len(results)).
		Msg("fallback recommendations generated")

	return resp, nil
}

// fallbackAnalysis returns the analysis used when no pace/length inference is available.
func fallbackAnalysis(profile *UserProfile) RecommendationAnalysis {
	genres := make([]string, len(profile.FavoriteGenres))
	copy(genres, profile.FavoriteGenres)
	return RecommendationAnalysis{
		FavoriteGenres:  genres,
		ReadingPace:     PaceMedium,
		PreferredLength: LengthMedium,
		Themes:          []string{},
	}
}

func newResult(book *CandidateBook, reason string, score float64) RecommendationResult {
	return RecommendationResult{
		BookID:     book.ID,
		Title:      book.Title,
		Slug:       book.Slug,
		Reason:     reason,
		MatchScore: score,
		Book:       *book,
	}
}

// favoriteGenre is one favorite genre in profile order. When id is empty the
// genre could not be resolved and is matched by name.
type favoriteGenre struct {
	id   string
	name string
}

// genreMatcher finds the first favorite genre (in profile order) a book carries.
type genreMatcher struct {
	favorites []favoriteGenre
}

// newGenreMatcher resolves favorite genre names to catalog genres. Lookup
// failures degrade to case-insensitive name matching.
func (s *FallbackStrategy) newGenreMatcher(ctx context.Context, names []string) genreMatcher {
	favorites := make([]favoriteGenre, 0, len(names))
	for _, n := range names {
		favorites = append(favorites, favoriteGenre{name: n})
	}

	if s.genres == nil {
		return genreMatcher{favorites: favorites}
	}

	resolved, err := s.genres.ResolveGenres(ctx, names)
	if err != nil {
		s.logger.Warn().Err(err).Msg("genre lookup failed, matching favorite genres by name")
		return genreMatcher{favorites: favorites}
	}

	for i := range favorites {
		for _, g := range resolved {
			if strings.EqualFold(g.Name, favorites[i].name) || (g.Slug != "" && strings.EqualFold(g.Slug, favorites[i].name)) {
				favorites[i] = favoriteGenre{id: g.ID, name: g.Name}
				break
			}
		}
	}

	return genreMatcher{favorites: favorites}
}

// match returns the display name of the first favorite genre the book carries.
func (m genreMatcher) match(book *CandidateBook) (string, bool) {
	for _, fav := range m.favorites {
		for _, g := range book.Genres {
			if fav.id != "" && g.ID == fav.id {
				return fav.name, true
			}
			if fav.id == "" && strings.EqualFold(g.Name, fav.name) {
				return fav.name, true
			}
		}
	}
	return "", false
}

type genreMatch struct {
	book  *CandidateBook
	genre string
}

// matchFavoriteGenres returns candidates carrying a favorite genre ordered by
// views desc, then likes desc, then candidate order.
func matchFavoriteGenres(candidates []CandidateBook, matcher genreMatcher) []genreMatch {
	matches := make([]genreMatch, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for i := range candidates {
		book := &candidates[i]
		if _, dup := seen[book.ID]; dup {
			continue
		}
		if name, ok := matcher.match(book); ok {
			matches = append(matches, genreMatch{book: book, genre: name})
			seen[book.ID] = struct{}{}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].book, matches[j].book
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		return a.Likes > b.Likes
	})

	return matches
}

// popularBackfill returns unselected candidates ordered by views+likes desc,
// then candidate order.
func popularBackfill(candidates []CandidateBook, selected map[string]struct{}) []*CandidateBook {
	books := make([]*CandidateBook, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for i := range candidates {
		id := candidates[i].ID
		if _, ok := selected[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		books = append(books, &candidates[i])
	}

	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Views+books[i].Likes > books[j].Views+books[j].Likes
	})

	return books
}
