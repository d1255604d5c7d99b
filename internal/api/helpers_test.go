// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/transportmap/internal/config"
	"github.com/tomtom215/transportmap/internal/dashboard"
	"github.com/tomtom215/transportmap/internal/logging"
	"github.com/tomtom215/transportmap/internal/upstream"
	ws "github.com/tomtom215/transportmap/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

const (
	heatmapBody    = `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[25,46]},"properties":{"point_count":4}}]}`
	transportsBody = `{"transports":[{"company_name":"Alpha","role":"emitent"},{"company_name":"Beta","role":"destinatar"},{"company_name":"Alpha","role":"receptor"}]}`
)

// testEnvelope mirrors APIResponse with a raw data member.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

// setupUpstream serves fixed heatmap and transport responses. A non-zero
// transportsStatus makes the transports endpoint fail with that status.
func setupUpstream(t *testing.T, transportsStatus int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/heatmap":
			_, _ = w.Write([]byte(heatmapBody))
		case "/api/area/companies/transports":
			if transportsStatus != 0 {
				w.WriteHeader(transportsStatus)
				return
			}
			_, _ = w.Write([]byte(transportsBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newUpstreamClient(srv *httptest.Server) *upstream.Client {
	return upstream.NewClient(srv.URL+"/api", "test-key", 2*time.Second)
}

func testOptions() dashboard.Options {
	opts := dashboard.DefaultOptions()
	opts.DebounceInterval = 10 * time.Millisecond
	return opts
}

// testConfig returns a development configuration with the given origins.
func testConfig(origins ...string) *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     origins,
		},
		WebSocket: config.WebSocketConfig{
			MaxMessageSize: 64 * 1024,
			EventRate:      20,
			EventBurst:     40,
		},
	}
}

func newTestHandler(fetcher dashboard.Fetcher, cfg *config.Config, hub *ws.Hub) (*Handler, http.Handler) {
	h := NewHandler(fetcher, cfg, testOptions(), hub)
	return h, NewRouter(h, cfg).SetupChi()
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// failingFetcher fails every call.
type failingFetcher struct{}

var errUpstreamDown = errors.New("connection refused")

func (failingFetcher) FetchHeatmap(context.Context, string, float64) (*upstream.HeatmapResult, error) {
	return nil, &upstream.NetworkError{Endpoint: upstream.EndpointHeatmap, Err: errUpstreamDown}
}

func (failingFetcher) FetchCompanyTransports(context.Context, string) (*upstream.TransportsResult, error) {
	return nil, &upstream.NetworkError{Endpoint: upstream.EndpointTransports, Err: errUpstreamDown}
}

// runHub runs hub until the test ends.
func runHub(t *testing.T, hub *ws.Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.RunWithContext(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	deadline := time.Now().Add(2 * time.Second)
	for !hub.Running() {
		if time.Now().After(deadline) {
			t.Fatal("hub did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
