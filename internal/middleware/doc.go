// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package middleware provides HTTP middleware used by the API router.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern so query strings and ids do not explode cardinality
  - Compression: gzip for clients that accept it (heatmap payloads are large
    and repetitive)
  - PerformanceMonitor: sliding window of recent requests with per-endpoint
    percentiles and slow request logging

All wrappers share a status recorder that passes Hijack and Flush through,
so they can sit in front of the WebSocket upgrade endpoint.

Usage with chi:

	perf := middleware.NewPerformanceMonitor(1000)
	r.Use(perf.Middleware)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	    r.Use(chiMiddleware(middleware.Compression))
	    r.Get("/view", handler.View)
	})
*/
package middleware
