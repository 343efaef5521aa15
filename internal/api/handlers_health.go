// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

const healthCheckTimeout = 2 * time.Second

var errNoStore = errors.New("database not configured")

// Health handles GET /health with per-dependency checks.
// It always returns 200; Status is "healthy" or "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	checks := map[string]string{}

	if err := h.ping(ctx); err != nil {
		status = "degraded"
		checks["database"] = err.Error()
	} else {
		checks["database"] = "ok"
		if n, err := h.store.CountEligibleBooks(ctx); err != nil {
			checks["catalog"] = err.Error()
		} else {
			checks["catalog"] = strconv.FormatInt(n, 10) + " eligible books"
		}
	}

	respondSuccess(w, r, h.healthStatus(status, checks), time.Time{})
}

// HealthLive handles GET /health/live. It only reports that the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.healthStatus("alive", nil), time.Time{})
}

// HealthReady handles GET /health/ready. Returns 503 until DuckDB answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeUnavailable,
			"Service not ready", map[string]interface{}{"database": err.Error()}, err)
		return
	}

	respondSuccess(w, r, h.healthStatus("ready", map[string]string{"database": "ok"}), time.Time{})
}

func (h *Handler) ping(ctx context.Context) error {
	if h.store == nil {
		return errNoStore
	}
	return h.store.Ping(ctx)
}

func (h *Handler) healthStatus(status string, checks map[string]string) models.HealthStatus {
	hs := models.HealthStatus{
		Status:    status,
		Checks:    checks,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
	}
	if h.engine != nil {
		hs.Strategy = h.engine.Stats().Strategy
	}
	return hs
}
