// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"errors"
	"time"
)

// ErrUserNotFound is returned by a ReadingHistorySource when the user does not exist.
var ErrUserNotFound = errors.New("user not found")

// Reading pace values reported in RecommendationAnalysis.
const (
	PaceFast   = "fast"
	PaceMedium = "medium"
	PaceSlow   = "slow"
)

// Preferred book length values reported in RecommendationAnalysis.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// Genre is a catalog genre.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// CandidateBook is a read projection of an eligible catalog entry
// (published and not deleted).
type CandidateBook struct {
	// ID is the unique book identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Slug is the URL-safe book handle.
	Slug string `json:"slug"`

	// Description is the book blurb; may be empty.
	Description string `json:"description,omitempty"`

	// Genres lists the genres the book is filed under.
	Genres []Genre `json:"genres"`

	// Views is the lifetime view count.
	Views int64 `json:"views"`

	// Likes is the lifetime like count.
	Likes int64 `json:"likes"`
}

// GenreNames returns the names of the book's genres in catalog order.
func (b *CandidateBook) GenreNames() []string {
	names := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		names = append(names, g.Name)
	}
	return names
}

// ReadingProgress describes how far a reader is into a book.
type ReadingProgress struct {
	CurrentChapter int     `json:"current_chapter"`
	TotalChapters  int     `json:"total_chapters"`
	Percent        float64 `json:"percent"`
}

// CompletedBook is a finished book in the reader's history.
type CompletedBook struct {
	Book        *CandidateBook `json:"book"`
	CompletedAt time.Time      `json:"completed_at"`
}

// ReadingBook is a book the reader has in progress.
type ReadingBook struct {
	Book     *CandidateBook  `json:"book"`
	Progress ReadingProgress `json:"progress"`
}

// RatedBook is a book the reader reviewed.
type RatedBook struct {
	Book   *CandidateBook `json:"book"`
	Rating int            `json:"rating"`
	Review string         `json:"review,omitempty"`
}

// UserProfile is a per-request, read-only snapshot of a reader.
// After assembly every Book reference is non-nil.
type UserProfile struct {
	UserID                  string          `json:"user_id"`
	CompletedBooks          []CompletedBook `json:"completed_books"`
	CurrentlyReading        []ReadingBook   `json:"currently_reading"`
	HighRatedBooks          []RatedBook     `json:"high_rated_books"`
	FavoriteGenres          []string        `json:"favorite_genres"`
	TotalReadingTimeSeconds int64           `json:"total_reading_time_seconds"`
}

// readBookIDs returns the ids of books the reader has completed or started.
func (p *UserProfile) readBookIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(p.CompletedBooks)+len(p.CurrentlyReading))
	for _, c := range p.CompletedBooks {
		ids[c.Book.ID] = struct{}{}
	}
	for _, r := range p.CurrentlyReading {
		ids[r.Book.ID] = struct{}{}
	}
	return ids
}

// RecommendationResult is a single recommended book.
type RecommendationResult struct {
	// BookID references a book from the candidate set the strategy received.
	BookID string `json:"bookId"`

	Title string `json:"title"`
	Slug  string `json:"slug"`

	// Reason is a short human-readable explanation.
	Reason string `json:"reason"`

	// MatchScore is in [0, 100], higher is a better match.
	MatchScore float64 `json:"matchScore"`

	// Book is the full catalog projection.
	Book CandidateBook `json:"book"`
}

// RecommendationAnalysis describes why the result set looks the way it does.
type RecommendationAnalysis struct {
	FavoriteGenres  []string `json:"favoriteGenres"`
	ReadingPace     string   `json:"readingPace"`
	PreferredLength string   `json:"preferredLength"`
	Themes          []string `json:"themes"`
}

// RecommendationResponse is what a Strategy produces.
type RecommendationResponse struct {
	Analysis        RecommendationAnalysis `json:"analysis"`
	Recommendations []RecommendationResult `json:"recommendations"`
}

// Pagination is page metadata over a strategy's output.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// PersonalizedRecommendations is the envelope returned by Engine.
type PersonalizedRecommendations struct {
	Recommendations []RecommendationResult `json:"recommendations"`
	Pagination      Pagination             `json:"pagination"`
	Analysis        RecommendationAnalysis `json:"analysis"`
}
