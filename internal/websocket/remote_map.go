// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package websocket

import (
	"sync"

	"github.com/tomtom215/transportmap/internal/dashboard"
	"github.com/tomtom215/transportmap/internal/geo"
	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/render"
)

// RemoteMap mirrors a browser map widget. Viewport state comes from inbound
// events; every mutation is forwarded to the browser through send.
type RemoteMap struct {
	send func(Message) bool

	mu        sync.Mutex
	bounds    geo.Viewport
	hasBounds bool
	zoom      float64
	sources   map[string]*remoteSource
	handlers  map[handlerKey][]*dashboard.Handler
}

type handlerKey struct {
	event dashboard.Event
	layer string
}

var _ dashboard.MapWidget = (*RemoteMap)(nil)

// NewRemoteMap creates a proxy that forwards mutations through send. send
// reports whether the message was queued.
func NewRemoteMap(send func(Message) bool) *RemoteMap {
	return &RemoteMap{
		send:     send,
		sources:  make(map[string]*remoteSource),
		handlers: make(map[handlerKey][]*dashboard.Handler),
	}
}

// Bounds returns the last viewport reported by the browser. ok is false until
// the first event carrying bounds has been dispatched.
func (m *RemoteMap) Bounds() (geo.Viewport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bounds, m.hasBounds
}

// Zoom returns the last zoom level reported by the browser.
func (m *RemoteMap) Zoom() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zoom
}

// Source returns a previously added source.
func (m *RemoteMap) Source(id string) (dashboard.GeoJSONSource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[id]
	if !ok {
		return nil, false
	}
	return src, true
}

// AddSource registers the source locally and sends add_source.
func (m *RemoteMap) AddSource(id string, spec render.SourceSpec) {
	m.mu.Lock()
	m.sources[id] = &remoteSource{id: id, send: m.send}
	m.mu.Unlock()

	m.send(Message{Type: MessageTypeAddSource, Data: AddSourceData{ID: id, Source: spec}})
}

// AddLayer sends add_layer.
func (m *RemoteMap) AddLayer(spec render.LayerSpec) {
	m.send(Message{Type: MessageTypeAddLayer, Data: spec})
}

// On registers fn for event. A non-empty layer restricts the handler to
// events on that layer; an empty layer receives every event of the type.
func (m *RemoteMap) On(event dashboard.Event, layer string, fn dashboard.Handler) func() {
	key := handlerKey{event: event, layer: layer}
	h := &fn

	m.mu.Lock()
	m.handlers[key] = append(m.handlers[key], h)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		list := m.handlers[key]
		for i, existing := range list {
			if existing == h {
				m.handlers[key] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// ShowPopup sends popup.
func (m *RemoteMap) ShowPopup(at geo.LngLat, view render.PopupView) {
	m.send(Message{Type: MessageTypePopup, Data: PopupData{LngLat: at, View: view}})
}

// SetCursor sends cursor.
func (m *RemoteMap) SetCursor(cursor string) {
	m.send(Message{Type: MessageTypeCursor, Data: CursorData{Cursor: cursor}})
}

// RenderSidebar sends sidebar. RemoteMap doubles as the dashboard.Sidebar
// of its session.
func (m *RemoteMap) RenderSidebar(view render.SidebarView) {
	m.send(Message{Type: MessageTypeSidebar, Data: view})
}

// Dispatch applies the map state carried by data and runs the handlers
// registered for ev. Handlers run on the caller's goroutine.
func (m *RemoteMap) Dispatch(ev dashboard.MapEvent, data *EventData) {
	m.mu.Lock()
	if data != nil {
		if data.Bounds != nil {
			m.bounds = *data.Bounds
			m.hasBounds = true
		}
		if data.Zoom != nil {
			m.zoom = *data.Zoom
		}
	}
	var list []*dashboard.Handler
	list = append(list, m.handlers[handlerKey{event: ev.Type}]...)
	if ev.Layer != "" {
		list = append(list, m.handlers[handlerKey{event: ev.Type, layer: ev.Layer}]...)
	}
	m.mu.Unlock()

	for _, h := range list {
		(*h)(ev)
	}
}

// HandlerCount returns the number of registered handlers.
func (m *RemoteMap) HandlerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, list := range m.handlers {
		n += len(list)
	}
	return n
}

type remoteSource struct {
	id   string
	send func(Message) bool
}

func (s *remoteSource) SetData(fc *models.FeatureCollection) {
	s.send(Message{Type: MessageTypeSetData, Data: SetDataData{ID: s.id, Data: fc}})
}
