// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package services provides suture.Service wrappers for Folio's long-running
components.

  - HTTPServerService: the API server with graceful shutdown
  - PeriodicService: fixed-interval background work, used for
    NewGenreCacheWarmer (genre lookup cache refresh) and
    NewCheckpointService (DuckDB WAL checkpoints)

Every service honours context cancellation and implements fmt.Stringer so
suture events name it.

Example:

	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, 10*time.Second, logger))
	tree.AddDataService(services.NewGenreCacheWarmer(genreCache, 5*time.Minute, logger))
*/
package services
