// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// CatalogSampler draws bounded candidate sets from a CatalogSource.
type CatalogSampler struct {
	source CatalogSource
	logger zerolog.Logger
}

// NewCatalogSampler creates a catalog sampler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogSampler(source CatalogSource, logger zerolog.Logger) *CatalogSampler {
	return &CatalogSampler{
		source: source,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Sample returns up to maxCount eligible books. Entries without an id and
// repeated ids are dropped; source order is otherwise preserved.
func (s *CatalogSampler) Sample(ctx context.Context, maxCount int) ([]CandidateBook, error) {
	if maxCount <= 0 {
		return []CandidateBook{}, nil
	}

	books, err := s.source.SampleEligible(ctx, maxCount)
	if err != nil {
		return nil, fmt.Errorf("sample eligible books: %w", err)
	}

	out := make([]CandidateBook, 0, min(len(books), maxCount))
	seen := make(map[string]struct{}, len(books))
	for i := range books {
		if len(out) >= maxCount {
			break
		}
		id := books[i].ID
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, books[i])
	}

	if skipped := len(books) - len(out); skipped > 0 {
		s.logger.Debug().Int("skipped", skipped).Msg("dropped invalid catalog entries")
	}

	return out, nil
}

// ExcludeRead returns the candidates the reader has neither completed nor
// started. The input slice is not modified.
func ExcludeRead(candidates []CandidateBook, profile *UserProfile) []CandidateBook {
	if profile == nil {
		return candidates
	}
	read := profile.readBookIDs()
	if len(read) == 0 {
		return candidates
	}

	out := make([]CandidateBook, 0, len(candidates))
	for i := range candidates {
		if _, ok := read[candidates[i].ID]; !ok {
			out = append(out, candidates[i])
		}
	}
	return out
}
