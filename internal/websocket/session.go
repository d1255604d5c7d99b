// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package websocket

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomtom215/transportmap/internal/dashboard"
	"github.com/tomtom215/transportmap/internal/logging"
	"github.com/tomtom215/transportmap/internal/metrics"
	"github.com/tomtom215/transportmap/internal/validation"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 256

	// DefaultMaxMessageSize bounds inbound frames.
	DefaultMaxMessageSize = 64 * 1024
	// DefaultEventRate is the sustained inbound event rate per session.
	DefaultEventRate = 20.0
	// DefaultEventBurst is the inbound event burst per session.
	DefaultEventBurst = 40
)

// Error codes sent in error messages.
const (
	ErrorCodeInvalidMessage = "INVALID_MESSAGE"
	ErrorCodeRateLimited    = "TOO_MANY_REQUESTS"
)

var sessionSeq atomic.Uint64

// SessionConfig configures the dashboard controller and limits of a session.
type SessionConfig struct {
	Fetcher        dashboard.Fetcher
	Options        dashboard.Options
	MaxMessageSize int64
	EventRate      float64
	EventBurst     int
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.EventRate <= 0 {
		c.EventRate = DefaultEventRate
	}
	if c.EventBurst <= 0 {
		c.EventBurst = DefaultEventBurst
	}
	return c
}

// Session is one browser map page. It owns a RemoteMap and the refresh
// controller bound to it.
type Session struct {
	id  string
	seq uint64

	hub  *Hub
	conn *websocket.Conn

	sendMu     sync.Mutex
	send       chan Message
	sendClosed bool

	limiter        *rate.Limiter
	maxMessageSize int64

	remote     *RemoteMap
	controller *dashboard.Controller

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a session for conn. Call Start to run it.
func NewSession(hub *Hub, conn *websocket.Conn, cfg SessionConfig) *Session {
	cfg = cfg.withDefaults()

	s := &Session{
		id:             uuid.NewString(),
		seq:            sessionSeq.Add(1),
		hub:            hub,
		conn:           conn,
		send:           make(chan Message, sendBufferSize),
		limiter:        rate.NewLimiter(rate.Limit(cfg.EventRate), cfg.EventBurst),
		maxMessageSize: cfg.MaxMessageSize,
	}
	s.ctx, s.cancel = context.WithCancel(logging.ContextWithSessionID(context.Background(), s.id))
	s.remote = NewRemoteMap(s.queue)
	s.controller = dashboard.New(s.remote, s.remote, cfg.Fetcher, cfg.Options)
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Start attaches the controller and starts the read and write pumps.
func (s *Session) Start() {
	s.controller.Attach(s.ctx)
	s.queue(Message{Type: MessageTypeSession, Data: SessionData{SessionID: s.id}})

	go s.writePump()
	go s.readPump()
}

// queue enqueues msg without blocking. It reports false when the queue is
// closed or full.
func (s *Session) queue(msg Message) bool {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.sendClosed {
		return false
	}
	select {
	case s.send <- msg:
		return true
	default:
		metrics.RecordWSError("send_buffer_full")
		logging.Ctx(s.ctx).Warn().Str("message_type", msg.Type).Msg("send buffer full, dropping message")
		return false
	}
}

func (s *Session) closeSend() {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if !s.sendClosed {
		s.sendClosed = true
		close(s.send)
	}
}

func (s *Session) readPump() {
	defer func() {
		s.controller.Close()
		s.cancel()
		s.hub.Remove(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(s.maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Ctx(s.ctx).Error().Err(err).Msg("failed to set read deadline")
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				metrics.RecordWSError("unexpected_close")
				logging.Ctx(s.ctx).Warn().Err(err).Msg("unexpected websocket close")
			}
			return
		}
		metrics.WSMessagesReceived.Inc()
		s.handleFrame(raw)
	}
}

// handleFrame decodes one inbound frame and feeds it to the remote map.
// Rate-limited events still update the viewport state but run no handlers.
func (s *Session) handleFrame(raw []byte) {
	ev, data, isEvent, err := decodeEvent(raw)
	if err != nil {
		metrics.RecordWSError("invalid_message")
		msg := err.Error()
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			msg = verr.ToAPIError().Message
		}
		s.queue(Message{Type: MessageTypeError, Data: ErrorData{Code: ErrorCodeInvalidMessage, Message: msg}})
		return
	}
	if !isEvent {
		s.queue(Message{Type: MessageTypePong})
		return
	}

	if !s.limiter.Allow() {
		metrics.WSEventsThrottled.Inc()
		s.remote.Dispatch(dashboard.MapEvent{}, data)
		s.queue(Message{Type: MessageTypeError, Data: ErrorData{Code: ErrorCodeRateLimited, Message: "Too many map events"}})
		return
	}
	s.remote.Dispatch(ev, data)
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Ctx(s.ctx).Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			payload, err := MarshalMessage(msg)
			if err != nil {
				metrics.RecordWSError("marshal")
				logging.Ctx(s.ctx).Error().Err(err).Str("message_type", msg.Type).Msg("failed to marshal message")
				continue
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				metrics.RecordWSError("write")
				logging.Ctx(s.ctx).Debug().Err(err).Msg("failed to write message")
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
