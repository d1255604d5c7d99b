// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package main is the entry point for the Transportmap server.

Transportmap serves the data behind the transport activity map page: a
heatmap of hotspots for the visible area and a sidebar feed of the companies
(or individual transports) moving goods there. Both come from an upstream
transport API; the server buffers the requested area, gates the sidebar on
zoom, groups and ranks companies, and shapes the map layers.

# Process Layout

	root ("transportmap")
	├── messaging-layer
	│   └── websocket-hub    live map sessions (/api/v1/ws)
	└── api-layer
	    └── http-server      /api/v1/view, /companies, /popup, health, /metrics

# Configuration

Defaults, then config.yaml (or CONFIG_PATH), then environment variables.
The only required setting is the upstream base URL:

	export UPSTREAM_BASE_URL=https://transport.example.com/api
	export UPSTREAM_API_KEY=your-app-key
	./transportmap

See package config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server stops
accepting connections and drains in-flight requests for SERVER_SHUTDOWN_TIMEOUT;
the hub closes every session, which detaches its dashboard controller and
cancels pending upstream fetches.

# Port 3857

The default port refers to EPSG:3857, the Web Mercator projection used by
the map.
*/
package main
