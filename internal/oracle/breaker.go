// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package oracle

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// BreakerConfig configures the oracle circuit breaker.
type BreakerConfig struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period in the closed state after which counts reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// MinRequests is the minimum number of requests before the failure ratio is considered.
	MinRequests uint32

	// FailureRatio opens the breaker once reached.
	FailureRatio float64
}

// DefaultBreakerConfig returns the production breaker settings.
// Opens after 60% failures across at least 5 calls and probes again after a minute.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "text-oracle",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// CircuitBreaker stops calling a failing oracle so requests fall back
// immediately instead of waiting for timeouts.
//
// The breaker uses real time for its interval and timeout; tests should drive
// it through request outcomes rather than the clock.
type CircuitBreaker struct {
	next TextOracle
	cb   *gobreaker.CircuitBreaker[string]
	name string
}

// NewCircuitBreaker wraps next with a circuit breaker.
func NewCircuitBreaker(next TextOracle, cfg BreakerConfig) *CircuitBreaker {
	if cfg.Name == "" {
		cfg.Name = "text-oracle"
	}
	name := cfg.Name

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("opening oracle circuit")
				return true
			}
			return false
		},
		// Caller cancellation is not counted as an oracle failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("oracle circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &CircuitBreaker{next: next, cb: cb, name: name}
}

// Generate implements TextOracle.
func (c *CircuitBreaker) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := c.cb.Execute(func() (string, error) {
		return c.next.Generate(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		}
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	return text, nil
}

// State returns the current breaker state.
func (c *CircuitBreaker) State() gobreaker.State {
	return c.cb.State()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
