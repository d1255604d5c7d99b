// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/transportmap/internal/logging"
	"github.com/tomtom215/transportmap/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Hub tracks the live dashboard sessions. Sessions are added and removed
// through the Register and Unregister channels while RunWithContext is
// running; when the hub is stopped, Add and Remove update the registry
// directly.
type Hub struct {
	sessions   map[*Session]bool
	Register   chan *Session
	Unregister chan *Session
	mu         sync.RWMutex

	runMu   sync.Mutex
	stopped chan struct{}
}

// NewHub creates a stopped hub.
func NewHub() *Hub {
	stopped := make(chan struct{})
	close(stopped)
	return &Hub{
		sessions:   make(map[*Session]bool),
		Register:   make(chan *Session),
		Unregister: make(chan *Session),
		stopped:    stopped,
	}
}

// Done returns a channel that is closed while the hub is not running.
func (h *Hub) Done() <-chan struct{} {
	h.runMu.Lock()
	defer h.runMu.Unlock()
	return h.stopped
}

// Running reports whether RunWithContext is active.
func (h *Hub) Running() bool {
	select {
	case <-h.Done():
		return false
	default:
		return true
	}
}

// Add registers s, going through the run loop when the hub is running.
func (h *Hub) Add(s *Session) {
	select {
	case h.Register <- s:
	case <-h.Done():
		h.addSession(s)
	}
}

// Remove unregisters s and closes its outbound queue.
func (h *Hub) Remove(s *Session) {
	select {
	case h.Unregister <- s:
	case <-h.Done():
		h.removeSession(s)
	}
}

// RunWithContext runs the registry loop until ctx is done, then closes every
// session. It is restartable and designed for suture supervision.
//
// Lifecycle events are handled with priority over each other in a fixed
// order: shutdown first, then register/unregister.
func (h *Hub) RunWithContext(ctx context.Context) error {
	h.runMu.Lock()
	h.stopped = make(chan struct{})
	h.runMu.Unlock()

	defer func() {
		h.runMu.Lock()
		close(h.stopped)
		h.runMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case s := <-h.Register:
			h.addSession(s)
		case s := <-h.Unregister:
			h.removeSession(s)
		}
	}
}

func (h *Hub) addSession(s *Session) {
	h.mu.Lock()
	h.sessions[s] = true
	total := len(h.sessions)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Info().Str("session_id", s.ID()).Int("total_sessions", total).Msg("dashboard session connected")
}

func (h *Hub) removeSession(s *Session) {
	h.mu.Lock()
	_, ok := h.sessions[s]
	if ok {
		delete(h.sessions, s)
	}
	total := len(h.sessions)
	h.mu.Unlock()

	if !ok {
		return
	}
	s.closeSend()
	metrics.WSConnections.Dec()
	logging.Info().Str("session_id", s.ID()).Int("total_sessions", total).Msg("dashboard session disconnected")
}

// logGracefulShutdown closes every session and logs the reason. ctx.Err() is
// not logged as an error: cancellation is the expected shutdown path.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	closed := h.closeAllSessions()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("sessions_closed", closed).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// closeAllSessions closes sessions in connection order.
func (h *Hub) closeAllSessions() int {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		sessions = append(sessions, s)
	}
	for _, s := range sessions {
		delete(h.sessions, s)
	}
	h.mu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].seq < sessions[j].seq
	})
	for _, s := range sessions {
		s.closeSend()
		metrics.WSConnections.Dec()
	}
	return len(sessions)
}

// SessionCount returns the number of connected sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
