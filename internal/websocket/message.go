// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package websocket

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/transportmap/internal/dashboard"
	"github.com/tomtom215/transportmap/internal/geo"
	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/render"
	"github.com/tomtom215/transportmap/internal/validation"
)

// Message types sent by the server.
const (
	MessageTypeAddSource = "add_source"
	MessageTypeAddLayer  = "add_layer"
	MessageTypeSetData   = "set_data"
	MessageTypeSidebar   = "sidebar"
	MessageTypePopup     = "popup"
	MessageTypeCursor    = "cursor"
	MessageTypePong      = "pong"
	MessageTypeError     = "error"
	MessageTypeSession   = "session"
)

// MessageTypePing is sent by the browser as a keepalive.
const MessageTypePing = "ping"

// Message is the envelope for every frame in both directions.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// inboundMessage is Message as read from the wire, with Data left raw until
// the type is known.
type inboundMessage struct {
	Type string          `json:"type" validate:"required,oneof=ping load moveend zoomend click mouseenter mouseleave"`
	Data json.RawMessage `json:"data"`
}

// EventData is the payload of a map event. Bounds and Zoom describe the map
// state after the event and are optional on pointer events.
type EventData struct {
	Bounds     *geo.Viewport             `json:"bounds,omitempty"`
	Zoom       *float64                  `json:"zoom,omitempty" validate:"omitempty,gte=0,lte=24"`
	Layer      string                    `json:"layer,omitempty" validate:"omitempty,max=128"`
	LngLat     *geo.LngLat               `json:"lngLat,omitempty"`
	Properties *models.HotspotProperties `json:"properties,omitempty"`
}

// AddSourceData is the payload of add_source.
type AddSourceData struct {
	ID     string            `json:"id"`
	Source render.SourceSpec `json:"source"`
}

// SetDataData is the payload of set_data.
type SetDataData struct {
	ID   string                    `json:"id"`
	Data *models.FeatureCollection `json:"data"`
}

// PopupData is the payload of popup.
type PopupData struct {
	LngLat geo.LngLat       `json:"lngLat"`
	View   render.PopupView `json:"view"`
}

// CursorData is the payload of cursor.
type CursorData struct {
	Cursor string `json:"cursor"`
}

// ErrorData is the payload of error.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionData is sent once after the connection is established.
type SessionData struct {
	SessionID string `json:"session_id"`
}

// decodeEvent parses and validates one inbound frame. Ping frames return a
// zero event with ok=false.
func decodeEvent(raw []byte) (dashboard.MapEvent, *EventData, bool, error) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return dashboard.MapEvent{}, nil, false, fmt.Errorf("decode message: %w", err)
	}
	if verr := validation.ValidateStruct(&msg); verr != nil {
		return dashboard.MapEvent{}, nil, false, verr
	}
	if msg.Type == MessageTypePing {
		return dashboard.MapEvent{}, nil, false, nil
	}

	data := &EventData{}
	if len(msg.Data) > 0 && string(msg.Data) != "null" {
		if err := json.Unmarshal(msg.Data, data); err != nil {
			return dashboard.MapEvent{}, nil, false, fmt.Errorf("decode %s data: %w", msg.Type, err)
		}
	}
	if verr := validation.ValidateStruct(data); verr != nil {
		return dashboard.MapEvent{}, nil, false, verr
	}
	if data.Bounds != nil {
		if _, err := geo.ParseBBox(data.Bounds.String()); err != nil {
			return dashboard.MapEvent{}, nil, false, fmt.Errorf("%s bounds: %w", msg.Type, err)
		}
	}

	ev := dashboard.MapEvent{
		Type:       dashboard.Event(msg.Type),
		Layer:      data.Layer,
		Properties: data.Properties,
	}
	if data.LngLat != nil {
		ev.LngLat = *data.LngLat
	}
	return ev, data, true, nil
}

// MarshalMessage converts a message to JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
