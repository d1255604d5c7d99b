// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/transportmap/internal/geo"
	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/render"
	"github.com/tomtom215/transportmap/internal/upstream"
)

// fakeMap is an in-memory MapWidget that lets tests emit events.
type fakeMap struct {
	mu          sync.Mutex
	vp          *geo.Viewport
	zoom        float64
	handlers    map[string][]*Handler
	sources     map[string]*fakeSource
	addSources  int
	layers      []render.LayerSpec
	popups      []render.PopupView
	cursor      string
	cursorCalls int
}

type fakeSource struct {
	mu      sync.Mutex
	data    *models.FeatureCollection
	setData int
}

func (s *fakeSource) SetData(fc *models.FeatureCollection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fc
	s.setData++
}

func newFakeMap(vp *geo.Viewport, zoom float64) *fakeMap {
	return &fakeMap{
		vp:       vp,
		zoom:     zoom,
		handlers: make(map[string][]*Handler),
		sources:  make(map[string]*fakeSource),
	}
}

func handlerKey(event Event, layer string) string {
	return string(event) + "|" + layer
}

func (m *fakeMap) Bounds() (geo.Viewport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vp == nil {
		return geo.Viewport{}, false
	}
	return *m.vp, true
}

func (m *fakeMap) Zoom() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zoom
}

func (m *fakeMap) setZoom(z float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zoom = z
}

func (m *fakeMap) Source(id string) (GeoJSONSource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[id]
	if !ok {
		return nil, false
	}
	return src, true
}

func (m *fakeMap) AddSource(id string, spec render.SourceSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[id] = &fakeSource{data: spec.Data}
	m.addSources++
}

func (m *fakeMap) AddLayer(spec render.LayerSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers = append(m.layers, spec)
}

func (m *fakeMap) On(event Event, layer string, fn Handler) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := handlerKey(event, layer)
	h := &fn
	m.handlers[key] = append(m.handlers[key], h)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		list := m.handlers[key]
		for i, existing := range list {
			if existing == h {
				m.handlers[key] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

func (m *fakeMap) ShowPopup(_ geo.LngLat, view render.PopupView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.popups = append(m.popups, view)
}

func (m *fakeMap) SetCursor(cursor string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = cursor
	m.cursorCalls++
}

func (m *fakeMap) emit(ev MapEvent) {
	m.mu.Lock()
	list := append([]*Handler(nil), m.handlers[handlerKey(ev.Type, ev.Layer)]...)
	m.mu.Unlock()
	for _, h := range list {
		(*h)(ev)
	}
}

func (m *fakeMap) handlerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, list := range m.handlers {
		n += len(list)
	}
	return n
}

// fakeFetcher records calls and returns canned results.
type fakeFetcher struct {
	mu              sync.Mutex
	heatmapCalls    int
	transportCalls  int
	heatmapBBoxes   []string
	transportBBoxes []string

	heatmap       *upstream.HeatmapResult
	heatmapErr    error
	transports    *upstream.TransportsResult
	transportsErr error

	// block, when set, holds FetchHeatmap until closed or ctx is done.
	block chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	fc, _, _ := models.DecodeFeatureCollection([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature"}]}`))
	return &fakeFetcher{
		heatmap: &upstream.HeatmapResult{Collection: fc, Present: true},
		transports: &upstream.TransportsResult{
			Present: true,
			Transports: []models.TransportRecord{
				{CompanyName: "Alpha", Role: "emitent"},
				{CompanyName: "Alpha", Role: "destinatar"},
				{CompanyName: "Beta", Role: "receptor"},
			},
		},
	}
}

func (f *fakeFetcher) FetchHeatmap(ctx context.Context, bbox string, _ float64) (*upstream.HeatmapResult, error) {
	f.mu.Lock()
	f.heatmapCalls++
	f.heatmapBBoxes = append(f.heatmapBBoxes, bbox)
	block := f.block
	res, err := f.heatmap, f.heatmapErr
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, &upstream.NetworkError{Endpoint: upstream.EndpointHeatmap, Err: ctx.Err()}
		}
	}
	return res, err
}

func (f *fakeFetcher) FetchCompanyTransports(_ context.Context, bbox string) (*upstream.TransportsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transportCalls++
	f.transportBBoxes = append(f.transportBBoxes, bbox)
	return f.transports, f.transportsErr
}

func (f *fakeFetcher) counts() (heatmap, transports int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heatmapCalls, f.transportCalls
}

// recordingSidebar keeps every rendered view.
type recordingSidebar struct {
	mu    sync.Mutex
	views []render.SidebarView
}

func (s *recordingSidebar) RenderSidebar(view render.SidebarView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, view)
}

func (s *recordingSidebar) states() []render.SidebarState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]render.SidebarState, 0, len(s.views))
	for _, v := range s.views {
		out = append(out, v.State)
	}
	return out
}

func (s *recordingSidebar) last() render.SidebarView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.views) == 0 {
		return render.SidebarView{}
	}
	return s.views[len(s.views)-1]
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met: %s", msg)
}

func testViewport() *geo.Viewport {
	return &geo.Viewport{
		SouthWest: geo.LngLat{Lng: 20, Lat: 43.5},
		NorthEast: geo.LngLat{Lng: 30, Lat: 48.5},
	}
}
