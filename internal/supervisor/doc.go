// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package supervisor provides suture/v4 process supervision for Folio.

The tree has two layers under a root named "folio":

	folio
	├── data-layer   genre cache warmer, DuckDB checkpoints
	└── api-layer    HTTP server

Failed services are restarted with suture's threshold/decay/backoff policy.
Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, fed by the zerolog slog bridge in internal/logging:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewGenreCacheWarmer(cache, 5*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, 10*time.Second, logger))
	err := tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
