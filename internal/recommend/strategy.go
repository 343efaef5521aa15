// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import "context"

// Strategy names, used as metric and log labels.
const (
	StrategyAI       = "ai"
	StrategyFallback = "fallback"
)

// Strategy ranks a candidate set for a reader.
//
// Implementations must only return results whose BookID is present in
// candidates, and must not return more than limit results unless the
// strategy explicitly documents otherwise.
type Strategy interface {
	// Name returns the strategy identifier.
	Name() string

	// Generate produces the analysis and ranked results for the profile.
	Generate(ctx context.Context, userID string, profile *UserProfile, candidates []CandidateBook, limit int) (*RecommendationResponse, error)
}

// ReadingHistorySource provides the raw reading history used to build a UserProfile.
// Entries whose book no longer resolves are returned with a nil Book.
type ReadingHistorySource interface {
	// DeclaredGenres returns the genres the user picked in their settings.
	// Returns ErrUserNotFound if the user does not exist.
	DeclaredGenres(ctx context.Context, userID string) ([]string, error)

	// CompletedBooks returns finished books, most recent first.
	CompletedBooks(ctx context.Context, userID string) ([]CompletedBook, error)

	// CurrentlyReading returns in-progress books, most recent first.
	CurrentlyReading(ctx context.Context, userID string) ([]ReadingBook, error)

	// RatedBooks returns books rated at least minRating, best first.
	RatedBooks(ctx context.Context, userID string, minRating int) ([]RatedBook, error)

	// TotalReadingTime returns the accumulated reading time in seconds.
	TotalReadingTime(ctx context.Context, userID string) (int64, error)
}

// CatalogSource samples eligible (published, not deleted) books.
type CatalogSource interface {
	// SampleEligible returns up to maxCount eligible books in no particular order.
	SampleEligible(ctx context.Context, maxCount int) ([]CandidateBook, error)
}

// GenreLookup resolves genre names to catalog genres.
type GenreLookup interface {
	// ResolveGenres returns the genres matching names (by name or slug,
	// case-insensitively). Unknown names are omitted from the result.
	ResolveGenres(ctx context.Context, names []string) ([]Genre, error)
}
