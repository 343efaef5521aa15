// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/folio/internal/api"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/supervisor"
	"github.com/tomtom215/folio/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("oracle_enabled", cfg.Oracle.Enabled).
		Msg("Starting Folio recommendation service")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedDemoData {
		logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")
		if err := db.SeedDemoData(ctx); err != nil {
			return err
		}
	}

	logger := logging.Component("recommend")
	genres, genreCache := initGenreLookup(cfg, db)

	engine, err := initEngine(ctx, cfg, db, genres, logger)
	if err != nil {
		return err
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(engine, db)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security)))

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       2 * time.Minute,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})

	serviceLogger := logging.Component("supervisor")
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout, serviceLogger))
	if genreCache != nil {
		tree.AddDataService(services.NewGenreCacheWarmer(genreCache, genreWarmInterval(cfg.Database.GenreCacheTTL), serviceLogger))
	}
	if cfg.Database.CheckpointInterval > 0 && !database.IsInMemory(&cfg.Database) {
		tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval, serviceLogger))
	}

	logging.Info().Str("addr", addr).Str("strategy", engine.Stats().Strategy).Msg("Supervisor tree starting")

	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within shutdown timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// writeTimeout leaves room for a full oracle round trip plus the database work around it.
func writeTimeout(cfg *config.Config) time.Duration {
	budget := cfg.Recommend.OracleTimeout + 10*time.Second
	if cfg.Server.Timeout > budget {
		return cfg.Server.Timeout
	}
	return budget
}

// minGenreWarmInterval bounds how often the genre cache is reloaded.
const minGenreWarmInterval = time.Second

// genreWarmInterval refreshes the cache at half its TTL so entries are
// replaced before they expire.
func genreWarmInterval(ttl time.Duration) time.Duration {
	return max(ttl/2, minGenreWarmInterval)
}
