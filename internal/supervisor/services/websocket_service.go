// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package services

import (
	"context"
)

// SessionHub is the lifecycle of *websocket.Hub. Declared here so this
// package does not import the websocket package.
type SessionHub interface {
	RunWithContext(ctx context.Context) error
}

// WebSocketHubService runs the live map session hub under a supervisor.
// On shutdown the hub closes every session, which detaches each session's
// dashboard controller and cancels its in-flight upstream fetches.
//
//	hub := websocket.NewHub()
//	tree.AddMessagingService(services.NewWebSocketHubService(hub))
type WebSocketHubService struct {
	hub  SessionHub
	name string
}

// NewWebSocketHubService wraps hub.
func NewWebSocketHubService(hub SessionHub) *WebSocketHubService {
	return &WebSocketHubService{
		hub:  hub,
		name: "websocket-hub",
	}
}

// Serve implements suture.Service by delegating to the hub.
func (w *WebSocketHubService) Serve(ctx context.Context) error {
	return w.hub.RunWithContext(ctx)
}

// String names the service in supervisor events.
func (w *WebSocketHubService) String() string {
	return w.name
}
