// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package oracle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// countingOracle returns err (or "ok") and counts calls.
type countingOracle struct {
	calls atomic.Int32
	err   error
}

func (c *countingOracle) Generate(context.Context, string) (string, error) {
	c.calls.Add(1)
	if c.err != nil {
		return "", c.err
	}
	return "ok", nil
}

func testBreakerConfig(name string) BreakerConfig {
	cfg := DefaultBreakerConfig()
	cfg.Name = name
	cfg.MinRequests = 3
	cfg.Timeout = time.Hour
	return cfg
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	inner := &countingOracle{err: errors.New("503 from provider")}
	cb := NewCircuitBreaker(inner, testBreakerConfig("test-opens"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cb.Generate(ctx, "p"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", cb.State())
	}

	_, err := cb.Generate(ctx, "p")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if inner.calls.Load() != 3 {
		t.Errorf("inner calls = %d, want 3 (open breaker must not call through)", inner.calls.Load())
	}
}

func TestCircuitBreaker_StaysClosedBelowMinRequests(t *testing.T) {
	t.Parallel()

	inner := &countingOracle{err: errors.New("timeout")}
	cb := NewCircuitBreaker(inner, testBreakerConfig("test-min"))

	for i := 0; i < 2; i++ {
		_, _ = cb.Generate(context.Background(), "p")
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed below MinRequests", cb.State())
	}
}

func TestCircuitBreaker_CancellationIsNotFailure(t *testing.T) {
	t.Parallel()

	inner := &countingOracle{err: context.Canceled}
	cb := NewCircuitBreaker(inner, testBreakerConfig("test-cancel"))

	for i := 0; i < 5; i++ {
		_, _ = cb.Generate(context.Background(), "p")
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed when callers cancel", cb.State())
	}
}

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(&countingOracle{}, BreakerConfig{MaxRequests: 1, MinRequests: 1, FailureRatio: 0.5})
	got, err := cb.Generate(context.Background(), "p")
	if err != nil || got != "ok" {
		t.Errorf("Generate() = (%q, %v)", got, err)
	}
}

func TestStateToFloat(t *testing.T) {
	t.Parallel()

	tests := map[gobreaker.State]float64{
		gobreaker.StateClosed:   0,
		gobreaker.StateHalfOpen: 1,
		gobreaker.StateOpen:     2,
	}
	for state, want := range tests {
		if got := stateToFloat(state); got != want {
			t.Errorf("stateToFloat(%v) = %v, want %v", state, got, want)
		}
	}
}

func TestRateLimited_RejectsOverBudget(t *testing.T) {
	t.Parallel()

	inner := &countingOracle{}
	rl := NewRateLimited(inner, 0.001, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := rl.Generate(ctx, "p"); err != nil {
			t.Fatalf("call %d within burst: %v", i, err)
		}
	}
	if _, err := rl.Generate(ctx, "p"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited", err)
	}
	if inner.calls.Load() != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls.Load())
	}
}

func TestRateLimited_DisabledWhenNonPositive(t *testing.T) {
	t.Parallel()

	inner := &countingOracle{}
	rl := NewRateLimited(inner, 0, 0)

	for i := 0; i < 50; i++ {
		if _, err := rl.Generate(context.Background(), "p"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestDecoratorChain_RateLimitTripsBreaker(t *testing.T) {
	t.Parallel()

	inner := &countingOracle{}
	cfg := testBreakerConfig("test-chain")
	cfg.FailureRatio = 0.5
	cfg.MinRequests = 4
	o := NewCircuitBreaker(NewRateLimited(inner, 0.001, 1), cfg)

	for i := 0; i < 4; i++ {
		_, _ = o.Generate(context.Background(), "p")
	}
	if o.State() != gobreaker.StateOpen {
		t.Errorf("state = %v, want open after sustained rate limiting", o.State())
	}
	if inner.calls.Load() != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls.Load())
	}
}
