// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package render maps domain data to view models for the dashboard.

Every function in this package is pure: it takes decoded data and returns a
JSON-serializable struct describing what to display. Nothing here talks to the
network or to the map widget, so the same view models serve the WebSocket
session, the one-shot HTTP view and tests.

Heatmap layers use the MapLibre style specification. Paint properties are
expressions encoded as nested JSON arrays:

	["interpolate", ["linear"], ["zoom"], 0, 2, 9, 20, 15, 50]
*/
package render

import (
	"fmt"

	"github.com/tomtom215/transportmap/internal/models"
)

// Map object identifiers.
const (
	SourceID     = "heatmap-source"
	LayerID      = "heatmap-layer"
	ClickLayerID = "heatmap-click-layer"
)

// heatmapMaxZoom hides the heatmap layer beyond street level.
const heatmapMaxZoom = 15

// Style selects the heatmap paint preset.
type Style string

const (
	// StyleBasic is the three-colour ramp used by the map page.
	StyleBasic Style = "basic"
	// StyleDetailed is the six-stop translucent ramp used by the landing page.
	StyleDetailed Style = "detailed"
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleBasic, StyleDetailed:
		return Style(s), nil
	case "":
		return StyleBasic, nil
	default:
		return "", fmt.Errorf("unknown heatmap style %q", s)
	}
}

// SourceSpec describes a GeoJSON source.
type SourceSpec struct {
	Type string                    `json:"type"`
	Data *models.FeatureCollection `json:"data"`
}

// LayerSpec describes a map layer.
type LayerSpec struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Source  string         `json:"source"`
	MaxZoom float64        `json:"maxzoom,omitempty"`
	Paint   map[string]any `json:"paint"`
}

// HeatmapSource wraps a feature collection as the heatmap source.
func HeatmapSource(fc *models.FeatureCollection) SourceSpec {
	if fc == nil {
		fc = models.EmptyFeatureCollection()
	}
	return SourceSpec{Type: "geojson", Data: fc}
}

// HeatmapLayers returns the layers added when the source is first created:
// the heatmap itself and the transparent circle layer that receives clicks.
func HeatmapLayers(style Style) []LayerSpec {
	return []LayerSpec{HeatmapLayer(style), ClickLayer()}
}

// HeatmapLayer returns the heatmap layer for the given style.
func HeatmapLayer(style Style) LayerSpec {
	paint := basicPaint()
	if style == StyleDetailed {
		paint = detailedPaint()
	}
	return LayerSpec{
		ID:      LayerID,
		Type:    "heatmap",
		Source:  SourceID,
		MaxZoom: heatmapMaxZoom,
		Paint:   paint,
	}
}

// ClickLayer returns the invisible circle layer used for hotspot hit testing.
func ClickLayer() LayerSpec {
	return LayerSpec{
		ID:     ClickLayerID,
		Type:   "circle",
		Source: SourceID,
		Paint: map[string]any{
			"circle-radius":       15,
			"circle-opacity":      0,
			"circle-stroke-width": 0,
		},
	}
}

func interpolate(input []any, stops ...any) []any {
	expr := make([]any, 0, 3+len(stops))
	expr = append(expr, "interpolate", []any{"linear"}, input)
	return append(expr, stops...)
}

var (
	byWeight  = []any{"get", "weight"}
	byZoom    = []any{"zoom"}
	byDensity = []any{"heatmap-density"}
)

func basicPaint() map[string]any {
	return map[string]any{
		"heatmap-weight":    interpolate(byWeight, 0, 0, 1, 1),
		"heatmap-intensity": interpolate(byZoom, 0, 1, 15, 3),
		"heatmap-color": interpolate(byDensity,
			0, "rgba(0,0,0,0)",
			0.2, "#0d9488",
			0.6, "#facc15",
			1, "#ef4444",
		),
		"heatmap-radius":  interpolate(byZoom, 0, 2, 9, 20, 15, 50),
		"heatmap-opacity": 0.85,
	}
}

func detailedPaint() map[string]any {
	return map[string]any{
		"heatmap-weight":    interpolate(byWeight, 0, 0, 1, 0.3, 10, 0.6, 50, 0.9, 100, 1),
		"heatmap-intensity": interpolate(byZoom, 0, 1, 7, 2, 10, 3, 15, 4),
		"heatmap-color": interpolate(byDensity,
			0, "rgba(0, 0, 0, 0)",
			0.2, "rgba(20, 184, 166, 0.4)",
			0.4, "rgba(20, 184, 166, 0.7)",
			0.6, "rgba(234, 179, 8, 0.8)",
			0.8, "rgba(251, 146, 60, 0.9)",
			1, "rgba(239, 68, 68, 1)",
		),
		"heatmap-radius":  interpolate(byZoom, 0, 3, 7, 15, 10, 25, 15, 50),
		"heatmap-opacity": interpolate(byZoom, 0, 0.9, 7, 0.95, 15, 1),
	}
}
