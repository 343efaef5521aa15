// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package oracle provides the generative text backends used by the
// recommendation engine.
//
// A TextOracle is treated as an opaque single-shot function from a prompt to
// raw text. It must return an error on any network or provider failure; there
// is no partial-success shape. Decorators add resilience without changing the
// contract:
//
//	base, _ := oracle.NewGemini(ctx, oracle.GeminiConfig{APIKey: key})
//	o := oracle.NewCircuitBreaker(oracle.NewRateLimited(base, 2, 4), oracle.DefaultBreakerConfig())
//	payload, err := oracle.GenerateJSON[myContract](ctx, o, prompt)
//
// Callers are expected to bound each call with a context deadline. None of the
// types in this package retry.
package oracle

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse is returned when the provider answers with no text.
	ErrEmptyResponse = errors.New("oracle returned an empty response")

	// ErrNoJSONObject is returned when no JSON object can be found in the response.
	ErrNoJSONObject = errors.New("oracle response contains no JSON object")

	// ErrMalformedResponse is returned when an extracted JSON object does not decode.
	ErrMalformedResponse = errors.New("oracle response is not valid JSON")

	// ErrRateLimited is returned when the local call budget is exhausted.
	ErrRateLimited = errors.New("oracle rate limit exceeded")
)

// TextOracle generates text for a prompt.
type TextOracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts an ordinary function to the TextOracle interface.
type Func func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
