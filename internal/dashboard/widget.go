// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package dashboard

import (
	"context"

	"github.com/tomtom215/transportmap/internal/geo"
	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/render"
	"github.com/tomtom215/transportmap/internal/upstream"
)

// Event names emitted by the map widget.
type Event string

const (
	EventLoad       Event = "load"
	EventMoveEnd    Event = "moveend"
	EventZoomEnd    Event = "zoomend"
	EventClick      Event = "click"
	EventMouseEnter Event = "mouseenter"
	EventMouseLeave Event = "mouseleave"
)

// Valid reports whether e is a known map event.
func (e Event) Valid() bool {
	switch e {
	case EventLoad, EventMoveEnd, EventZoomEnd, EventClick, EventMouseEnter, EventMouseLeave:
		return true
	default:
		return false
	}
}

// MapEvent is delivered to event handlers.
type MapEvent struct {
	Type  Event
	Layer string
	// LngLat is the pointer position for click events.
	LngLat geo.LngLat
	// Properties of the clicked feature, nil when the click hit nothing.
	Properties *models.HotspotProperties
}

// Handler receives map events.
type Handler func(MapEvent)

// GeoJSONSource is an existing map source whose data can be replaced.
type GeoJSONSource interface {
	SetData(fc *models.FeatureCollection)
}

// MapWidget is the part of the map engine the controller drives.
type MapWidget interface {
	// Bounds returns the visible extent; false before the map is initialized.
	Bounds() (geo.Viewport, bool)
	Zoom() float64
	Source(id string) (GeoJSONSource, bool)
	AddSource(id string, spec render.SourceSpec)
	AddLayer(spec render.LayerSpec)
	// On subscribes fn to event, optionally scoped to a layer ("" for the
	// whole map). The returned func removes the subscription.
	On(event Event, layer string, fn Handler) (unsubscribe func())
	ShowPopup(at geo.LngLat, view render.PopupView)
	SetCursor(cursor string)
}

// Sidebar displays sidebar views.
type Sidebar interface {
	RenderSidebar(view render.SidebarView)
}

// SidebarFunc adapts a function to the Sidebar interface.
type SidebarFunc func(view render.SidebarView)

// RenderSidebar calls f(view).
func (f SidebarFunc) RenderSidebar(view render.SidebarView) { f(view) }

// Fetcher loads data from the transport API. *upstream.Client implements it.
type Fetcher interface {
	FetchHeatmap(ctx context.Context, bbox string, zoom float64) (*upstream.HeatmapResult, error)
	FetchCompanyTransports(ctx context.Context, bbox string) (*upstream.TransportsResult, error)
}

var _ Fetcher = (*upstream.Client)(nil)
