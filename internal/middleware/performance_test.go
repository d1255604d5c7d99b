// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestPerformanceMonitorWindow(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3)
	for i := int64(1); i <= 5; i++ {
		pm.RecordRequest(&RequestMetrics{Route: "/a", Method: http.MethodGet, DurationMS: i})
	}

	recent := pm.GetRecentMetrics(10)
	if len(recent) != 3 {
		t.Fatalf("len(recent) = %d, want 3", len(recent))
	}
	if recent[0].DurationMS != 3 || recent[2].DurationMS != 5 {
		t.Errorf("window = %v, want durations 3..5", recent)
	}
	if got := pm.GetRecentMetrics(0); len(got) != 0 {
		t.Errorf("GetRecentMetrics(0) = %v, want empty", got)
	}
}

func TestPerformanceMonitorStats(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(100)
	for _, d := range []int64{40, 10, 30, 20} {
		pm.RecordRequest(&RequestMetrics{Route: "/api/v1/view", Method: http.MethodGet, DurationMS: d, StatusCode: 200})
	}
	pm.RecordRequest(&RequestMetrics{Route: "/api/v1/companies", Method: http.MethodGet, DurationMS: 5, StatusCode: 502})

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	view := stats[0]
	if view.Endpoint != "GET /api/v1/view" {
		t.Fatalf("busiest endpoint = %q, want GET /api/v1/view", view.Endpoint)
	}
	if view.RequestCount != 4 || view.MinDuration != 10 || view.MaxDuration != 40 {
		t.Errorf("view stats = %+v", view)
	}
	if view.AvgDuration != 25 {
		t.Errorf("AvgDuration = %v, want 25", view.AvgDuration)
	}
	if view.P50Duration != 20 {
		t.Errorf("P50Duration = %d, want 20", view.P50Duration)
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("companies ErrorCount = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitorMiddleware(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(10)
	pm.SetSlowThreshold(time.Nanosecond)

	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/api/v1/companies", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/companies?bbox=1,2,3,4", nil))

	recent := pm.GetRecentMetrics(1)
	if len(recent) != 1 {
		t.Fatalf("recorded %d requests, want 1", len(recent))
	}
	m := recent[0]
	if m.Route != "/api/v1/companies" || m.StatusCode != http.StatusBadGateway || m.Bytes != int64(len("upstream down")) {
		t.Errorf("recorded = %+v", m)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sorted []int64
		p      float64
		want   int64
	}{
		{nil, 0.5, 0},
		{[]int64{7}, 0.99, 7},
		{[]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.5, 5},
		{[]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.95, 9},
	}
	for _, tt := range tests {
		if got := percentile(tt.sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%v, %v) = %d, want %d", tt.sorted, tt.p, got, tt.want)
		}
	}
}
