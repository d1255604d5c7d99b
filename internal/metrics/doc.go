// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and are
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

HTTP API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Transport API client:
  - upstream_requests_total{endpoint, status}
  - upstream_request_duration_seconds{endpoint}
  - upstream_malformed_responses_total{endpoint}

Refresh pipeline:
  - dashboard_refresh_cycles_total{trigger}
  - dashboard_refresh_duration_seconds
  - dashboard_sidebar_renders_total{state}
  - dashboard_debounced_events_total

WebSocket sessions:
  - websocket_connections
  - websocket_messages_sent_total, websocket_messages_received_total
  - websocket_errors_total{error_type}
  - websocket_events_throttled_total

# Usage

Components call the Record* helpers rather than touching collectors directly:

	start := time.Now()
	resp, err := client.Do(req)
	metrics.RecordUpstreamRequest("heatmap", statusCode, time.Since(start))
*/
package metrics
