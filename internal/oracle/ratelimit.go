// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package oracle

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited caps the call rate to the wrapped oracle. Calls over budget fail
// immediately with ErrRateLimited rather than queueing, so the recommendation
// request can fall back without spending its latency budget.
type RateLimited struct {
	next    TextOracle
	limiter *rate.Limiter
}

// NewRateLimited allows perSecond calls per second with the given burst.
// A non-positive perSecond disables limiting.
func NewRateLimited(next TextOracle, perSecond float64, burst int) *RateLimited {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Generate implements TextOracle.
func (r *RateLimited) Generate(ctx context.Context, prompt string) (string, error) {
	if !r.limiter.Allow() {
		return "", ErrRateLimited
	}
	return r.next.Generate(ctx, prompt)
}
