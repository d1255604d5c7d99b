// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/transportmap/internal/config"
	"github.com/tomtom215/transportmap/internal/dashboard"
	"github.com/tomtom215/transportmap/internal/middleware"
	ws "github.com/tomtom215/transportmap/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness, readiness and performance
//   - handlers_view.go: one-shot view, companies and popup
//   - handlers_websocket.go: live map sessions
type Handler struct {
	fetcher   dashboard.Fetcher
	config    *config.Config
	opts      dashboard.Options
	wsHub     *ws.Hub
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates the API handler. cfg may be nil in tests, in which case
// WebSocket origins are not checked and session limits use their defaults.
//
// Example:
//
//	handler := api.NewHandler(client, cfg, opts, hub)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":3857", router.SetupChi())
func NewHandler(fetcher dashboard.Fetcher, cfg *config.Config, opts dashboard.Options, wsHub *ws.Hub) *Handler {
	return &Handler{
		fetcher:   fetcher,
		config:    cfg,
		opts:      opts,
		wsHub:     wsHub,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		startTime: time.Now(),
	}
}

// PerformanceMonitor returns the monitor fed by the router.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// sessionConfig builds the per-session settings for a WebSocket client.
func (h *Handler) sessionConfig() ws.SessionConfig {
	cfg := ws.SessionConfig{
		Fetcher: h.fetcher,
		Options: h.opts,
	}
	if h.config != nil {
		cfg.MaxMessageSize = h.config.WebSocket.MaxMessageSize
		cfg.EventRate = h.config.WebSocket.EventRate
		cfg.EventBurst = h.config.WebSocket.EventBurst
	}
	return cfg
}

// sanitizeLogValue escapes control characters so client-supplied values
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
