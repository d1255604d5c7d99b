// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package api

import (
	"net/http"
	"time"
)

// LiveStatus is the liveness probe payload.
type LiveStatus struct {
	Alive  bool    `json:"alive"`
	Uptime float64 `json:"uptime_seconds"`
}

// ReadyStatus is the readiness probe payload.
type ReadyStatus struct {
	Ready              bool    `json:"ready"`
	UpstreamConfigured bool    `json:"upstream_configured"`
	WebSocketHub       bool    `json:"websocket_hub_running"`
	Sessions           int     `json:"sessions"`
	Uptime             float64 `json:"uptime_seconds"`
}

// HealthLive returns 200 while the process is alive, regardless of
// dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(LiveStatus{
		Alive:  true,
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 when a fetcher is wired and the WebSocket hub is
// running, 503 otherwise. The upstream API is not probed: it has no health
// endpoint and a failing upstream degrades the page rather than breaking it.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := ReadyStatus{
		UpstreamConfigured: h.fetcher != nil,
		Uptime:             time.Since(h.startTime).Seconds(),
	}
	if h.wsHub != nil {
		status.WebSocketHub = h.wsHub.Running()
		status.Sessions = h.wsHub.SessionCount()
	}
	status.Ready = status.UpstreamConfigured && status.WebSocketHub

	rw := NewResponseWriter(w, r)
	if !status.Ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service is not ready", status)
		return
	}
	rw.Success(status)
}

// Performance returns per-endpoint latency statistics of recent requests.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"endpoints": h.perfMon.GetStats(),
		"recent":    h.perfMon.GetRecentMetrics(20),
	})
}
