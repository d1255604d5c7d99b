// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package config loads and validates the Transportmap configuration.

# Configuration Sources

Configuration is layered with Koanf v2, later sources overriding earlier ones:

 1. Built-in defaults
 2. YAML file: CONFIG_PATH, else config.yaml / config.yml in the working
    directory, else /etc/transportmap/config.yaml
 3. Environment variables

# Environment Variables

Upstream API:
  - UPSTREAM_BASE_URL / API_BASE_URL: base URL, e.g. https://api.example.com/api (required)
  - UPSTREAM_API_KEY / APP_KEY: sent as X-App-Key
  - UPSTREAM_TIMEOUT: per-request timeout (default: 30s)

Dashboard:
  - SIDEBAR_ZOOM_THRESHOLD: minimum zoom for the sidebar feed, 0 = always (default: 9)
  - DEBOUNCE_INTERVAL: quiet period after moveend/zoomend (default: 500ms)
  - BBOX_BUFFER_RATIO: bbox expansion per side, 0 = visible area (default: 0.2)
  - SIDEBAR_MODE: companies or transports (default: companies)
  - HEATMAP_STYLE: basic or detailed (default: basic)
  - DASHBOARD_TIMEZONE: zone for transport card times (default: Local)

HTTP Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:3857)
  - HTTP_TIMEOUT: read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: graceful shutdown limit (default: 10s)
  - ENVIRONMENT: development, staging or production

Security:
  - CORS_ORIGINS: comma-separated origins (default: *; rejected in production)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: per-IP HTTP limit (default: 100/1m)
  - DISABLE_RATE_LIMIT

WebSocket sessions:
  - WS_MAX_MESSAGE_SIZE: inbound frame limit in bytes (default: 65536)
  - WS_EVENT_RATE, WS_EVENT_BURST: per-session map event limit (default: 20/s, burst 40)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER

# Example YAML

	upstream:
	  base_url: https://api.example.com/api
	  api_key: secret
	dashboard:
	  sidebar_mode: transports
	  sidebar_zoom_threshold: 0
	security:
	  cors_origins: [https://map.example.com]

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
