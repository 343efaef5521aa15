// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ProfileAssembler builds UserProfile snapshots from a ReadingHistorySource.
// It holds no per-request state and is safe for concurrent use.
type ProfileAssembler struct {
	source    ReadingHistorySource
	minRating int
	maxGenres int
	logger    zerolog.Logger
}

// NewProfileAssembler creates a profile assembler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewProfileAssembler(source ReadingHistorySource, cfg *Config, logger zerolog.Logger) *ProfileAssembler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &ProfileAssembler{
		source:    source,
		minRating: cfg.HighRatingThreshold,
		maxGenres: cfg.MaxFavoriteGenres,
		logger:    logger.With().Str("component", "profile").Logger(),
	}
}

// Assemble returns the reading profile for userID. A user with no history gets
// a profile with empty lists. Entries whose book no longer resolves are
// dropped. ErrUserNotFound from the source is returned wrapped.
func (a *ProfileAssembler) Assemble(ctx context.Context, userID string) (*UserProfile, error) {
	var (
		declared  []string
		completed []CompletedBook
		reading   []ReadingBook
		rated     []RatedBook
		seconds   int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := a.source.DeclaredGenres(gctx, userID)
		if err != nil {
			return fmt.Errorf("declared genres: %w", err)
		}
		declared = v
		return nil
	})
	g.Go(func() error {
		v, err := a.source.CompletedBooks(gctx, userID)
		if err != nil {
			return fmt.Errorf("completed books: %w", err)
		}
		completed = v
		return nil
	})
	g.Go(func() error {
		v, err := a.source.CurrentlyReading(gctx, userID)
		if err != nil {
			return fmt.Errorf("currently reading: %w", err)
		}
		reading = v
		return nil
	})
	g.Go(func() error {
		v, err := a.source.RatedBooks(gctx, userID, a.minRating)
		if err != nil {
			return fmt.Errorf("rated books: %w", err)
		}
		rated = v
		return nil
	})
	g.Go(func() error {
		v, err := a.source.TotalReadingTime(gctx, userID)
		if err != nil {
			return fmt.Errorf("reading time: %w", err)
		}
		seconds = v
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assemble profile for %s: %w", userID, err)
	}

	profile := &UserProfile{
		UserID:                  userID,
		CompletedBooks:          keepResolved(completed, func(c CompletedBook) *CandidateBook { return c.Book }),
		CurrentlyReading:        keepResolved(reading, func(r ReadingBook) *CandidateBook { return r.Book }),
		HighRatedBooks:          keepHighRated(rated, a.minRating),
		TotalReadingTimeSeconds: max(seconds, 0),
	}
	profile.FavoriteGenres = deriveFavoriteGenres(declared, profile, a.maxGenres)

	dropped := len(completed) + len(reading) + len(rated) -
		len(profile.CompletedBooks) - len(profile.CurrentlyReading) - len(profile.HighRatedBooks)
	a.logger.Debug().
		Str("user_id", userID).
		Int("completed", len(profile.CompletedBooks)).
		Int("reading", len(profile.CurrentlyReading)).
		Int("high_rated", len(profile.HighRatedBooks)).
		Int("dropped", dropped).
		Strs("favorite_genres", profile.FavoriteGenres).
		Msg("profile assembled")

	return profile, nil
}

// keepResolved drops entries whose book reference is nil. The result is never nil.
func keepResolved[T any](entries []T, book func(T) *CandidateBook) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if book(e) != nil {
			out = append(out, e)
		}
	}
	return out
}

func keepHighRated(rated []RatedBook, minRating int) []RatedBook {
	out := make([]RatedBook, 0, len(rated))
	for _, r := range rated {
		if r.Book != nil && r.Rating >= minRating {
			out = append(out, r)
		}
	}
	return out
}

// deriveFavoriteGenres returns the declared genres followed by the genres of
// completed and highly rated books, most frequent first (ties by name),
// deduplicated case-insensitively and capped at limit.
func deriveFavoriteGenres(declared []string, profile *UserProfile, limit int) []string {
	favorites := make([]string, 0, limit)
	seen := make(map[string]struct{})

	add := func(name string) {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup || len(favorites) >= limit {
			return
		}
		seen[key] = struct{}{}
		favorites = append(favorites, name)
	}

	for _, name := range declared {
		if name = strings.TrimSpace(name); name != "" {
			add(name)
		}
	}

	type genreCount struct {
		name  string
		count int
	}
	counts := make(map[string]*genreCount)
	tally := func(book *CandidateBook) {
		for _, g := range book.Genres {
			name := strings.TrimSpace(g.Name)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if c, ok := counts[key]; ok {
				c.count++
			} else {
				counts[key] = &genreCount{name: name, count: 1}
			}
		}
	}
	for _, c := range profile.CompletedBooks {
		tally(c.Book)
	}
	for _, r := range profile.HighRatedBooks {
		tally(r.Book)
	}

	ranked := make([]*genreCount, 0, len(counts))
	for _, c := range counts {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return strings.ToLower(ranked[i].name) < strings.ToLower(ranked[j].name)
	})

	for _, c := range ranked {
		add(c.name)
	}

	return favorites
}
