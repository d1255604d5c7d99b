// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package dashboard implements the view refresh pipeline behind the map page.

A Controller is bound to one map widget and one sidebar. Once attached it
listens to map events and runs refresh cycles:

	viewport event -> debounce -> bbox -> heatmap fetch -> layer update
	               -> zoom gate -> transports fetch -> sidebar view

The load event refreshes immediately. moveend and zoomend share one debouncer,
so a pan-and-zoom burst produces a single cycle. Cycles never overlap: a new
cycle waits for the previous one to finish, which keeps later responses from
being overwritten by earlier ones.

	c := dashboard.New(m, sidebar, client, dashboard.DefaultOptions())
	c.Attach(ctx)
	defer c.Close()
*/
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/transportmap/internal/geo"
	"github.com/tomtom215/transportmap/internal/logging"
	"github.com/tomtom215/transportmap/internal/metrics"
	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/render"
)

// Refresh triggers, used as metric labels.
const (
	TriggerLoad    = "load"
	TriggerMove    = "moveend"
	TriggerManual  = "manual"
	TriggerOneShot = "oneshot"
)

// Cursor values set on hotspot hover.
const (
	CursorPointer = "pointer"
	CursorDefault = ""
)

// Options configures a Controller.
type Options struct {
	// ZoomThreshold is the minimum zoom at which transports are fetched.
	// Zero fetches at every zoom level.
	ZoomThreshold float64

	// DebounceInterval is the quiet period after moveend/zoomend.
	DebounceInterval time.Duration

	// BufferRatio expands the bbox on each side. Zero requests the visible area.
	BufferRatio float64

	Style render.Style

	Mode render.SidebarMode

	// Location is used for transport card times. Nil means UTC.
	Location *time.Location
}

// DefaultOptions returns the map page settings.
func DefaultOptions() Options {
	return Options{
		ZoomThreshold:    9,
		DebounceInterval: 500 * time.Millisecond,
		BufferRatio:      geo.DefaultBufferRatio,
		Style:            render.StyleBasic,
		Mode:             render.ModeCompanies,
		Location:         time.UTC,
	}
}

// Controller runs refresh cycles for one map widget.
type Controller struct {
	m        MapWidget
	sidebar  Sidebar
	fetcher  Fetcher
	opts     Options
	renderer *render.SidebarRenderer

	debouncer *Debouncer

	// cycleMu serializes refresh cycles.
	cycleMu sync.Mutex

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	unsubs   []func()
	attached bool
	closed   bool
	inflight sync.WaitGroup
}

// New creates a controller. It does nothing until Attach is called.
func New(m MapWidget, sidebar Sidebar, fetcher Fetcher, opts Options) *Controller {
	if opts.Style == "" {
		opts.Style = render.StyleBasic
	}
	c := &Controller{
		m:        m,
		sidebar:  sidebar,
		fetcher:  fetcher,
		opts:     opts,
		renderer: render.NewSidebarRenderer(opts.Mode, opts.Location),
	}
	c.debouncer = NewDebouncer(opts.DebounceInterval, func() {
		c.runTracked(TriggerMove)
	})
	return c
}

// Attach subscribes to the map's events. Cycles started by events use a
// context derived from ctx, cancelled by Close. Attach may be called once.
func (c *Controller) Attach(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attached || c.closed {
		return
	}
	c.attached = true
	c.ctx, c.cancel = context.WithCancel(ctx)

	c.unsubs = append(c.unsubs,
		c.m.On(EventLoad, "", func(MapEvent) { c.spawn(TriggerLoad) }),
		c.m.On(EventMoveEnd, "", func(MapEvent) { c.debouncer.Trigger() }),
		c.m.On(EventZoomEnd, "", func(MapEvent) { c.debouncer.Trigger() }),
		c.m.On(EventClick, render.ClickLayerID, c.handleClick),
		c.m.On(EventMouseEnter, render.ClickLayerID, func(MapEvent) { c.m.SetCursor(CursorPointer) }),
		c.m.On(EventMouseLeave, render.ClickLayerID, func(MapEvent) { c.m.SetCursor(CursorDefault) }),
	)
}

// Close unsubscribes from the map, cancels the pending debounce and any
// in-flight fetch, and waits for the running cycle to return.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	unsubs := c.unsubs
	c.unsubs = nil
	cancel := c.cancel
	c.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	c.debouncer.Stop()
	if cancel != nil {
		cancel()
	}
	c.inflight.Wait()
}

// Refresh runs one cycle synchronously.
func (c *Controller) Refresh(ctx context.Context) {
	c.refresh(ctx, TriggerManual)
}

// spawn starts a tracked cycle on a new goroutine.
func (c *Controller) spawn(trigger string) {
	ctx, ok := c.track()
	if !ok {
		return
	}
	go func() {
		defer c.inflight.Done()
		c.refresh(ctx, trigger)
	}()
}

// runTracked runs a tracked cycle on the calling goroutine.
func (c *Controller) runTracked(trigger string) {
	ctx, ok := c.track()
	if !ok {
		return
	}
	defer c.inflight.Done()
	c.refresh(ctx, trigger)
}

func (c *Controller) track() (context.Context, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.attached {
		return nil, false
	}
	c.inflight.Add(1)
	return c.ctx, true
}

func (c *Controller) refresh(ctx context.Context, trigger string) {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := logging.Ctx(ctx)

	vp, ok := c.m.Bounds()
	if !ok {
		log.Debug().Str("trigger", trigger).Msg("Map not initialized, skipping refresh")
		return
	}
	zoom := c.m.Zoom()
	bbox, _ := geo.BufferedBBox(&vp, c.opts.BufferRatio)

	heatmap, err := c.fetcher.FetchHeatmap(ctx, bbox, zoom)
	switch {
	case err != nil && errors.Is(err, context.Canceled):
		return
	case err != nil:
		log.Warn().Err(err).Str("bbox", bbox).Msg("Heatmap fetch failed, keeping previous layer")
	case heatmap.Present:
		c.updateHeatmap(heatmap.Collection)
	}

	if ctx.Err() != nil {
		return
	}

	if zoom >= c.opts.ZoomThreshold {
		c.render(c.renderer.Loading())

		transports, err := c.fetcher.FetchCompanyTransports(ctx, bbox)
		switch {
		case err != nil && errors.Is(err, context.Canceled):
			return
		case err != nil:
			log.Error().Err(err).Str("bbox", bbox).Msg("Transports fetch failed")
			c.render(c.renderer.Failed())
		default:
			c.render(c.renderer.List(transports.Transports))
		}
	} else {
		c.render(c.renderer.ZoomIn())
	}

	elapsed := time.Since(start)
	metrics.RecordRefreshCycle(trigger, elapsed)
	log.Debug().
		Str("trigger", trigger).
		Str("bbox", bbox).
		Float64("zoom", zoom).
		Dur("duration", elapsed).
		Msg("Refresh complete")
}

// updateHeatmap replaces the source data when the source exists and creates
// the source and its layers otherwise.
func (c *Controller) updateHeatmap(fc *models.FeatureCollection) {
	if src, ok := c.m.Source(render.SourceID); ok {
		src.SetData(fc)
		return
	}
	c.m.AddSource(render.SourceID, render.HeatmapSource(fc))
	for _, layer := range render.HeatmapLayers(c.opts.Style) {
		c.m.AddLayer(layer)
	}
}

func (c *Controller) render(view render.SidebarView) {
	metrics.RecordSidebarRender(string(view.State))
	c.sidebar.RenderSidebar(view)
}

func (c *Controller) handleClick(ev MapEvent) {
	if ev.Properties == nil {
		return
	}
	c.m.ShowPopup(ev.LngLat, render.Popup(*ev.Properties))
}
