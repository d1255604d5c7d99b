// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package render

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/transportmap/internal/models"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Style
		wantErr bool
	}{
		{"basic", StyleBasic, false},
		{"detailed", StyleDetailed, false},
		{"", StyleBasic, false},
		{"neon", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStyle(%q) = (%q, %v), want (%q, err=%v)", tt.input, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestHeatmapLayers(t *testing.T) {
	t.Parallel()

	for _, style := range []Style{StyleBasic, StyleDetailed} {
		layers := HeatmapLayers(style)
		if len(layers) != 2 {
			t.Fatalf("%s: len(layers) = %d, want 2", style, len(layers))
		}

		heat := layers[0]
		if heat.ID != LayerID || heat.Type != "heatmap" || heat.Source != SourceID || heat.MaxZoom != 15 {
			t.Errorf("%s: heatmap layer = %+v", style, heat)
		}
		for _, prop := range []string{"heatmap-weight", "heatmap-intensity", "heatmap-color", "heatmap-radius", "heatmap-opacity"} {
			if _, ok := heat.Paint[prop]; !ok {
				t.Errorf("%s: paint missing %s", style, prop)
			}
		}

		click := layers[1]
		if click.ID != ClickLayerID || click.Type != "circle" || click.Source != SourceID {
			t.Errorf("%s: click layer = %+v", style, click)
		}
	}
}

func TestHeatmapLayer_BasicPaintJSON(t *testing.T) {
	t.Parallel()

	layer := HeatmapLayer(StyleBasic)
	data, err := json.Marshal(layer.Paint["heatmap-radius"])
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `["interpolate",["linear"],["zoom"],0,2,9,20,15,50]`
	if string(data) != want {
		t.Errorf("heatmap-radius = %s, want %s", data, want)
	}
	if layer.Paint["heatmap-opacity"] != 0.85 {
		t.Errorf("heatmap-opacity = %v, want 0.85", layer.Paint["heatmap-opacity"])
	}
}

func TestHeatmapLayer_DetailedOpacityIsZoomDriven(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(HeatmapLayer(StyleDetailed).Paint["heatmap-opacity"])
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `["interpolate",["linear"],["zoom"],0,0.9,7,0.95,15,1]`
	if string(data) != want {
		t.Errorf("heatmap-opacity = %s, want %s", data, want)
	}
}

func TestHeatmapSource_NilUsesEmptyCollection(t *testing.T) {
	t.Parallel()

	src := HeatmapSource(nil)
	if src.Type != "geojson" || src.Data == nil || src.Data.FeatureCount() != 0 {
		t.Errorf("HeatmapSource(nil) = %+v", src)
	}
}

func TestBorderColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		emitent, destinatar bool
		want                string
	}{
		{true, true, ColorBothRoles},
		{true, false, ColorEmitent},
		{false, true, ColorDestinatar},
		{false, false, ColorNoRole},
	}
	for _, tt := range tests {
		c := models.CompanyAggregate{IsEmitent: tt.emitent, IsDestinatar: tt.destinatar}
		if got := BorderColor(&c); got != tt.want {
			t.Errorf("BorderColor(emitent=%v, destinatar=%v) = %s, want %s", tt.emitent, tt.destinatar, got, tt.want)
		}
	}
}

func TestSidebar_CompaniesList(t *testing.T) {
	t.Parallel()

	r := NewSidebarRenderer(ModeCompanies, nil)
	view := r.List([]models.TransportRecord{
		{CompanyName: "Alpha", Role: "emitent"},
		{CompanyName: "Alpha", Role: "destinatar"},
		{CompanyName: "Beta", Role: "receptor"},
	})

	if view.State != SidebarList || view.FeedCount != "2 companii" {
		t.Fatalf("view = (%s, %q), want (list, \"2 companii\")", view.State, view.FeedCount)
	}
	if len(view.Companies) != 2 {
		t.Fatalf("len(Companies) = %d, want 2", len(view.Companies))
	}

	alpha := view.Companies[0]
	if alpha.Name != "Alpha" || alpha.Count != 2 || alpha.BorderColor != ColorBothRoles {
		t.Errorf("Companies[0] = %+v", alpha)
	}
	var labels []string
	for _, b := range alpha.Badges {
		labels = append(labels, b.Label)
	}
	if !reflect.DeepEqual(labels, []string{"EMITENT", "DESTINATAR"}) {
		t.Errorf("Alpha badges = %v", labels)
	}

	beta := view.Companies[1]
	if beta.BorderColor != ColorDestinatar || len(beta.Badges) != 1 || beta.Badges[0].Label != "DESTINATAR" {
		t.Errorf("Companies[1] = %+v", beta)
	}
}

func TestSidebar_States(t *testing.T) {
	t.Parallel()

	r := NewSidebarRenderer(ModeCompanies, nil)

	if v := r.Loading(); v.State != SidebarLoading || v.Message != "Se analizează companiile..." || v.FeedCount != "" {
		t.Errorf("Loading() = %+v", v)
	}
	if v := r.ZoomIn(); v.State != SidebarZoomIn || v.FeedCount != "---" || v.Message != "Zona prea mare." || !strings.Contains(v.Hint, "Zoom In") {
		t.Errorf("ZoomIn() = %+v", v)
	}
	if v := r.Failed(); v.State != SidebarError || v.Message != "Eroare la încărcare date." {
		t.Errorf("Failed() = %+v", v)
	}
	if v := r.List(nil); v.State != SidebarEmpty || v.FeedCount != "0 companii" || v.Message != "Nicio companie activă în zonă." {
		t.Errorf("List(nil) = %+v", v)
	}
}

func TestSidebar_TransportsMode(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("EET", 2*60*60)
	r := NewSidebarRenderer(ModeTransports, loc)

	view := r.List([]models.TransportRecord{
		{
			TransportID:   "abcdef1234567890",
			CompanyName:   "Alpha",
			Role:          "EMITENT",
			FirstPosition: &models.FirstPosition{Timestamp: models.ParseTimestamp("2024-03-05T14:07:00Z")},
		},
		{Role: "receptor"},
	})

	if view.State != SidebarList || view.FeedCount != "2 transports" {
		t.Fatalf("view = (%s, %q)", view.State, view.FeedCount)
	}

	want := []TransportCard{
		{Company: "Alpha", RoleClass: "emitent", RoleLabel: "Emitent", ShortID: "abcdef12...", Time: "16:07"},
		{Company: "Unknown", RoleClass: "destinatar", RoleLabel: "Destinatar", ShortID: "N/A", Time: "N/A"},
	}
	if !reflect.DeepEqual(view.Transports, want) {
		t.Errorf("Transports = %+v, want %+v", view.Transports, want)
	}

	if v := r.Loading(); v.Placeholders != 3 {
		t.Errorf("Loading().Placeholders = %d, want 3", v.Placeholders)
	}
	if v := r.List([]models.TransportRecord{}); v.State != SidebarEmpty || v.Message != "No transports in this area" || v.FeedCount != "0 transports" {
		t.Errorf("List(empty) = %+v", v)
	}
	if v := r.Failed(); v.Message != "Error loading transports" {
		t.Errorf("Failed() = %+v", v)
	}
}

func TestTransportFeedCount(t *testing.T) {
	t.Parallel()

	for n, want := range map[int]string{0: "0 transports", 1: "1 transport", 5: "5 transports"} {
		if got := TransportFeedCount(n); got != want {
			t.Errorf("TransportFeedCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                 "N/A",
		"abc":              "abc...",
		"12345678":         "12345678...",
		"1234567890abcdef": "12345678...",
	}
	for in, want := range tests {
		if got := ShortID(in); got != want {
			t.Errorf("ShortID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPopup(t *testing.T) {
	t.Parallel()

	props := models.HotspotProperties{
		PointCount: json.RawMessage(`42`),
		Operators: json.RawMessage(`"[` +
			`{\"name\":\"Small\",\"count\":1},` +
			`{\"operator_name\":\"Big\",\"point_count\":30},` +
			`{\"name\":\"Mid\",\"count\":8},` +
			`{\"count\":3}]"`),
	}

	view := Popup(props)
	if view.Title != "Hotspot Activity" || view.Subtitle != "42 points detected" {
		t.Errorf("header = (%q, %q)", view.Title, view.Subtitle)
	}

	want := []PopupOperator{{Name: "Big", Count: 30}, {Name: "Mid", Count: 8}, {Name: "Unknown", Count: 3}}
	if !reflect.DeepEqual(view.Operators, want) {
		t.Errorf("Operators = %+v, want %+v", view.Operators, want)
	}
	if view.EmptyMessage != "" {
		t.Errorf("EmptyMessage = %q, want empty", view.EmptyMessage)
	}
}

func TestPopup_NoOperatorData(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{``, `"not json"`, `{}`} {
		view := Popup(models.HotspotProperties{Operators: json.RawMessage(raw)})
		if view.EmptyMessage != "No operator data available" {
			t.Errorf("operators %q: EmptyMessage = %q", raw, view.EmptyMessage)
		}
		if view.Subtitle != "0 points detected" {
			t.Errorf("operators %q: Subtitle = %q", raw, view.Subtitle)
		}
		if view.Operators == nil {
			t.Errorf("operators %q: Operators = nil, want empty slice", raw)
		}
	}
}
