// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPeriodicInterval replaces a non-positive interval, which
// time.NewTicker would reject with a panic.
const DefaultPeriodicInterval = time.Minute

// PeriodicTask is one unit of background work.
type PeriodicTask func(ctx context.Context) error

// PeriodicService runs a task on a fixed interval under suture supervision.
// Task failures are logged and retried on the next tick; they never make
// Serve return, so a flaky dependency does not trigger supervisor backoff.
type PeriodicService struct {
	name       string
	task       PeriodicTask
	interval   time.Duration
	timeout    time.Duration
	runOnStart bool
	logger     zerolog.Logger
}

// PeriodicConfig configures a PeriodicService.
type PeriodicConfig struct {
	// Interval between runs. Non-positive values use DefaultPeriodicInterval.
	Interval time.Duration

	// Timeout bounds a single run. 0 means Interval.
	Timeout time.Duration

	// RunOnStart runs the task once before the first tick.
	RunOnStart bool
}

// NewPeriodicService creates a periodic service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPeriodicService(name string, task PeriodicTask, cfg PeriodicConfig, logger zerolog.Logger) *PeriodicService {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPeriodicInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &PeriodicService{
		name:       name,
		task:       task,
		interval:   cfg.Interval,
		timeout:    cfg.Timeout,
		runOnStart: cfg.RunOnStart,
		logger:     logger.With().Str("service", name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	s.logger.Debug().
		Dur("interval", s.interval).
		Bool("run_on_start", s.runOnStart).
		Msg("periodic service starting")

	if s.runOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Msg("periodic task failed, will retry next interval")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("periodic task complete")
}

// String names the service in suture events.
func (s *PeriodicService) String() string {
	return s.name
}

// GenreWarmer preloads the genre lookup cache.
type GenreWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// NewGenreCacheWarmer refreshes the genre cache at startup and every interval,
// so recommendation requests rarely miss.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGenreCacheWarmer(cache GenreWarmer, interval time.Duration, logger zerolog.Logger) *PeriodicService {
	var svc *PeriodicService
	task := func(ctx context.Context) error {
		n, err := cache.Warm(ctx)
		if err != nil {
			return err
		}
		svc.logger.Debug().Int("genres", n).Msg("genre cache warmed")
		return nil
	}
	svc = NewPeriodicService("genre-cache-warmer", task, PeriodicConfig{
		Interval:   interval,
		Timeout:    30 * time.Second,
		RunOnStart: true,
	}, logger)
	return svc
}

// Checkpointer flushes the database write-ahead log.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// NewCheckpointService checkpoints DuckDB every interval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCheckpointService(db Checkpointer, interval time.Duration, logger zerolog.Logger) *PeriodicService {
	return NewPeriodicService("duckdb-checkpoint", db.Checkpoint, PeriodicConfig{
		Interval: interval,
		Timeout:  time.Minute,
	}, logger)
}
