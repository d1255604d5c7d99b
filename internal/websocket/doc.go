// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package websocket runs dashboard sessions over WebSocket connections.

Each browser map page opens one connection. The server side of the
connection is a Session holding a RemoteMap, a proxy that satisfies
dashboard.MapWidget by remembering the viewport reported by the browser
and forwarding every mutation back to it, and the dashboard.Controller
bound to that proxy.

	browser                         Session
	   │  {"type":"moveend",...}      │
	   ├─────────────────────────────►│ RemoteMap.Dispatch -> Controller
	   │                              │   debounce, fetch, render
	   │◄─────────────────────────────┤ add_source / set_data / sidebar
	   │  {"type":"sidebar",...}      │

Inbound messages:

  - ping: keepalive, answered with pong
  - load, moveend, zoomend: data {bounds: {sw, ne}, zoom}
  - click, mouseenter, mouseleave: data {layer, lngLat, properties}

Outbound messages:

  - session: {session_id}, sent once
  - add_source, add_layer, set_data: heatmap layer setup and updates
  - sidebar: the sidebar view model
  - popup, cursor: hotspot interaction
  - pong, error

Inbound map events are validated and rate limited per session with
golang.org/x/time/rate. A throttled event still updates the viewport but
runs no handlers.

The Hub tracks sessions and closes them all when its context is cancelled.
It is run by the supervisor tree:

	hub := websocket.NewHub()
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
*/
package websocket
