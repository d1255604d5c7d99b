// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package dashboard

import (
	"context"
	"sync"

	"github.com/tomtom215/transportmap/internal/geo"
	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/render"
	"github.com/tomtom215/transportmap/internal/upstream"
)

// Heatmap outcomes reported by Snapshot.
const (
	HeatmapOK     = "ok"
	HeatmapAbsent = "absent"
	HeatmapFailed = "failed"
)

// View is the result of a one-shot refresh.
type View struct {
	BBox    string                    `json:"bbox"`
	Zoom    float64                   `json:"zoom"`
	Heatmap *models.FeatureCollection `json:"heatmap"`
	// HeatmapStatus tells a failed fetch from a body without features when
	// Heatmap is null.
	HeatmapStatus string             `json:"heatmap_status"`
	Layers        []render.LayerSpec `json:"layers,omitempty"`
	// Sidebar is the final sidebar view of the cycle.
	Sidebar render.SidebarView `json:"sidebar"`
}

// Snapshot runs one refresh cycle against a fixed viewport and returns what
// a map client would display. Heatmap is nil when the heatmap fetch failed.
func Snapshot(ctx context.Context, fetcher Fetcher, opts Options, vp geo.Viewport, zoom float64) View {
	m := NewStaticMap(vp, zoom)
	var last render.SidebarView
	sidebar := SidebarFunc(func(v render.SidebarView) { last = v })
	observed := &heatmapObserver{Fetcher: fetcher, status: HeatmapFailed}

	New(m, sidebar, observed, opts).refresh(ctx, TriggerOneShot)

	bbox, _ := geo.BufferedBBox(&vp, opts.BufferRatio)
	view := View{
		BBox:          bbox,
		Zoom:          zoom,
		Heatmap:       m.Data(render.SourceID),
		HeatmapStatus: observed.status,
		Layers:        m.Layers(),
		Sidebar:       last,
	}
	return view
}

// heatmapObserver records the outcome of the heatmap fetch of one cycle.
type heatmapObserver struct {
	Fetcher
	status string
}

func (o *heatmapObserver) FetchHeatmap(ctx context.Context, bbox string, zoom float64) (*upstream.HeatmapResult, error) {
	res, err := o.Fetcher.FetchHeatmap(ctx, bbox, zoom)
	switch {
	case err != nil:
		o.status = HeatmapFailed
	case res.Present:
		o.status = HeatmapOK
	default:
		o.status = HeatmapAbsent
	}
	return res, err
}

// StaticMap is a MapWidget with a fixed viewport that records what the
// controller does to it. It never emits events.
type StaticMap struct {
	vp   geo.Viewport
	zoom float64

	mu      sync.Mutex
	sources map[string]*staticSource
	layers  []render.LayerSpec
}

// NewStaticMap creates a map fixed at vp and zoom.
func NewStaticMap(vp geo.Viewport, zoom float64) *StaticMap {
	return &StaticMap{vp: vp, zoom: zoom, sources: make(map[string]*staticSource)}
}

type staticSource struct {
	mu   sync.Mutex
	data *models.FeatureCollection
}

func (s *staticSource) SetData(fc *models.FeatureCollection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fc
}

// Bounds implements MapWidget.
func (m *StaticMap) Bounds() (geo.Viewport, bool) { return m.vp, true }

// Zoom implements MapWidget.
func (m *StaticMap) Zoom() float64 { return m.zoom }

// Source implements MapWidget.
func (m *StaticMap) Source(id string) (GeoJSONSource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[id]
	if !ok {
		return nil, false
	}
	return src, true
}

// AddSource implements MapWidget.
func (m *StaticMap) AddSource(id string, spec render.SourceSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[id] = &staticSource{data: spec.Data}
}

// AddLayer implements MapWidget.
func (m *StaticMap) AddLayer(spec render.LayerSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers = append(m.layers, spec)
}

// On implements MapWidget. A static map emits no events.
func (m *StaticMap) On(Event, string, Handler) func() { return func() {} }

// ShowPopup implements MapWidget. Popups need a pointer and are ignored.
func (m *StaticMap) ShowPopup(geo.LngLat, render.PopupView) {}

// SetCursor implements MapWidget. It is a no-op.
func (m *StaticMap) SetCursor(string) {}

// Data returns the current data of source id, or nil.
func (m *StaticMap) Data(id string) *models.FeatureCollection {
	m.mu.Lock()
	src, ok := m.sources[id]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	src.mu.Lock()
	defer src.mu.Unlock()
	return src.data
}

// Layers returns the layers added so far.
func (m *StaticMap) Layers() []render.LayerSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]render.LayerSpec, len(m.layers))
	copy(out, m.layers)
	return out
}
