// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package api provides the HTTP surface of the dashboard.

Two kinds of client are served:

 1. Live map pages connect to /api/v1/ws. Each connection gets a session
    whose dashboard controller reacts to map events and pushes layer, source,
    sidebar and popup messages back (see package websocket).
 2. One-shot clients call /api/v1/view, which runs a single refresh cycle for
    a bbox and zoom and returns what a map page would display.

# Endpoints

Health (1000 req/min per IP):
  - GET /api/v1/health/live: liveness, always 200
  - GET /api/v1/health/ready: 200 when the fetcher is wired and the hub runs
  - GET /api/v1/health/performance: per-endpoint latency percentiles

Dashboard (RATE_LIMIT_REQUESTS per RATE_LIMIT_WINDOW per IP, gzip):
  - GET /api/v1/view?bbox=&zoom=: heatmap, layers and sidebar for a viewport
  - GET /api/v1/companies?bbox=: transports grouped by company
  - POST /api/v1/popup: hotspot properties to popup view

Sessions (30 upgrades/min per IP):
  - GET /api/v1/ws

Metrics:
  - GET /metrics: Prometheus exposition

# Response Format

Every JSON endpoint answers with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}
	}

Errors set success to false and carry error.code (BAD_REQUEST,
VALIDATION_FAILED, EXTERNAL_SERVICE_FAILED, TOO_MANY_REQUESTS, ...),
error.message and, for validation failures, error.details.

# Middleware

Global: request id with logging context, RealIP, Recoverer, CORS
(go-chi/cors), performance monitor. Per group: httprate limits, security
headers, Cache-Control no-store, Prometheus metrics and gzip.
*/
package api
