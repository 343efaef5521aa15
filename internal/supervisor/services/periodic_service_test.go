// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

func TestPeriodicService_Interface(t *testing.T) {
	var _ suture.Service = (*PeriodicService)(nil)
}

func TestPeriodicService_RunsOnStartAndTicks(t *testing.T) {
	var runs atomic.Int32
	task := func(context.Context) error {
		runs.Add(1)
		return nil
	}
	svc := NewPeriodicService("ticker", task, PeriodicConfig{Interval: 20 * time.Millisecond, RunOnStart: true}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
	if got := runs.Load(); got < 3 {
		t.Errorf("runs = %d, want at least 3", got)
	}
}

func TestPeriodicService_NoRunOnStart(t *testing.T) {
	var runs atomic.Int32
	task := func(context.Context) error {
		runs.Add(1)
		return nil
	}
	svc := NewPeriodicService("lazy", task, PeriodicConfig{Interval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if runs.Load() != 0 {
		t.Errorf("runs = %d, want 0 before the first tick", runs.Load())
	}
}

func TestPeriodicService_TaskErrorDoesNotStopService(t *testing.T) {
	var runs atomic.Int32
	task := func(context.Context) error {
		runs.Add(1)
		return errors.New("database is locked")
	}
	svc := NewPeriodicService("flaky", task, PeriodicConfig{Interval: 10 * time.Millisecond, RunOnStart: true}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want it to run until the context ends", err)
	}
	if runs.Load() < 2 {
		t.Errorf("runs = %d, want retries after failure", runs.Load())
	}
}

func TestPeriodicService_NonPositiveIntervalUsesDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		svc := NewPeriodicService("x", func(context.Context) error { return nil }, PeriodicConfig{Interval: interval}, zerolog.Nop())
		if svc.interval != DefaultPeriodicInterval {
			t.Errorf("interval %v: got %v, want %v", interval, svc.interval, DefaultPeriodicInterval)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("interval %v: Serve() = %v, want deadline exceeded", interval, err)
		}
		cancel()
	}
}

func TestGenreCacheWarmer_ZeroInterval(t *testing.T) {
	svc := NewGenreCacheWarmer(nil, 0, zerolog.Nop())
	if svc.interval != DefaultPeriodicInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultPeriodicInterval)
	}
}

func TestPeriodicService_TimeoutDefaultsToInterval(t *testing.T) {
	svc := NewPeriodicService("x", func(context.Context) error { return nil }, PeriodicConfig{Interval: time.Minute}, zerolog.Nop())
	if svc.timeout != time.Minute {
		t.Errorf("timeout = %v, want interval", svc.timeout)
	}
	if svc.String() != "x" {
		t.Errorf("String() = %q", svc.String())
	}
}

type fakeWarmer struct {
	warms atomic.Int32
}

func (f *fakeWarmer) Warm(context.Context) (int, error) {
	f.warms.Add(1)
	return 7, nil
}

type fakeCheckpointer struct {
	checkpoints atomic.Int32
}

func (f *fakeCheckpointer) Checkpoint(context.Context) error {
	f.checkpoints.Add(1)
	return nil
}

func TestGenreCacheWarmer_WarmsImmediately(t *testing.T) {
	warmer := &fakeWarmer{}
	svc := NewGenreCacheWarmer(warmer, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if warmer.warms.Load() != 1 {
		t.Errorf("warms = %d, want 1 at startup", warmer.warms.Load())
	}
	if svc.String() != "genre-cache-warmer" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestCheckpointService_WaitsForInterval(t *testing.T) {
	db := &fakeCheckpointer{}
	svc := NewCheckpointService(db, 15*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if got := db.checkpoints.Load(); got < 2 {
		t.Errorf("checkpoints = %d, want at least 2", got)
	}
}
