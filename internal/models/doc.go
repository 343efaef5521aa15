// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package models defines the HTTP wire types shared by the API layer.

Key Components:

  - APIResponse: Standard response wrapper ({status, data, metadata, error})
  - APIError: Machine-readable error code plus message and details
  - Metadata: Response timestamp, handler latency and request id
  - HealthStatus: Liveness and readiness payload

Domain types (profiles, candidates, recommendations) live in package
recommend; handlers place them in APIResponse.Data unchanged.
*/
package models
