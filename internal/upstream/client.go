// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package upstream implements the client for the remote transport API.

Two endpoints are used, both authenticated with the X-App-Key header:

	GET {base}/heatmap?zoom={int}&bbox={bbox}
	GET {base}/area/companies/transports?bbox={bbox}

Each call issues exactly one request. Failures are reported as *NetworkError;
a well-formed body that lacks the expected collection field is not a failure
and yields an empty result with Present set to false.
*/
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/transportmap/internal/logging"
	"github.com/tomtom215/transportmap/internal/metrics"
	"github.com/tomtom215/transportmap/internal/models"
)

// Endpoint labels used in errors, logs and metrics.
const (
	EndpointHeatmap    = "heatmap"
	EndpointTransports = "transports"
)

// AppKeyHeader carries the API key on every request.
const AppKeyHeader = "X-App-Key"

const (
	// maxErrorBodySize caps how much of a failed response is kept for diagnostics.
	maxErrorBodySize = 64 * 1024

	// maxResponseSize caps successful response bodies.
	maxResponseSize = 32 * 1024 * 1024

	defaultTimeout = 30 * time.Second
)

// HeatmapResult is the outcome of a heatmap fetch.
type HeatmapResult struct {
	Collection *models.FeatureCollection
	// Present is false when the body had no "features" array. Collection is
	// nil in that case.
	Present bool
}

// TransportsResult is the outcome of an area transports fetch.
type TransportsResult struct {
	Transports []models.TransportRecord
	// Present is false when the body had no "transports" array.
	Present bool
}

// Client provides access to the transport API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a transport API client. A zero timeout uses 30s.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTPClient creates a client using a caller-supplied http.Client.
func NewClientWithHTTPClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// FetchHeatmap fetches the heatmap features inside bbox. zoom is floored to
// an integer before it is sent.
func (c *Client) FetchHeatmap(ctx context.Context, bbox string, zoom float64) (*HeatmapResult, error) {
	reqURL := fmt.Sprintf("%s/heatmap?zoom=%d&bbox=%s", c.baseURL, int(math.Floor(zoom)), bbox)

	body, err := c.get(ctx, EndpointHeatmap, reqURL)
	if err != nil {
		return nil, err
	}

	if !isJSONObject(body) {
		return c.emptyHeatmap(ctx), nil
	}

	fc, ok, err := models.DecodeFeatureCollection(body)
	if err != nil {
		return nil, &NetworkError{Endpoint: EndpointHeatmap, StatusCode: http.StatusOK, Err: err}
	}
	if !ok {
		return c.emptyHeatmap(ctx), nil
	}

	logging.Ctx(ctx).Debug().
		Int("features", fc.FeatureCount()).
		Msg("Heatmap fetched")
	return &HeatmapResult{Collection: fc, Present: true}, nil
}

// FetchCompanyTransports fetches the transports active inside bbox.
func (c *Client) FetchCompanyTransports(ctx context.Context, bbox string) (*TransportsResult, error) {
	reqURL := fmt.Sprintf("%s/area/companies/transports?bbox=%s", c.baseURL, bbox)

	body, err := c.get(ctx, EndpointTransports, reqURL)
	if err != nil {
		return nil, err
	}

	if !isJSONObject(body) {
		return c.emptyTransports(ctx), nil
	}

	var probe struct {
		Transports json.RawMessage `json:"transports"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, &NetworkError{Endpoint: EndpointTransports, StatusCode: http.StatusOK, Err: fmt.Errorf("decode body: %w", err)}
	}

	raw := bytes.TrimSpace(probe.Transports)
	if len(raw) == 0 || raw[0] != '[' {
		return c.emptyTransports(ctx), nil
	}

	var records []models.TransportRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &NetworkError{Endpoint: EndpointTransports, StatusCode: http.StatusOK, Err: fmt.Errorf("decode transports: %w", err)}
	}
	if records == nil {
		records = []models.TransportRecord{}
	}

	logging.Ctx(ctx).Debug().
		Int("transports", len(records)).
		Msg("Area transports fetched")
	return &TransportsResult{Transports: records, Present: true}, nil
}

func (c *Client) emptyHeatmap(ctx context.Context) *HeatmapResult {
	metrics.RecordMalformedResponse(EndpointHeatmap)
	logging.Ctx(ctx).Debug().Msg("Heatmap response has no features array")
	return &HeatmapResult{}
}

func (c *Client) emptyTransports(ctx context.Context) *TransportsResult {
	metrics.RecordMalformedResponse(EndpointTransports)
	logging.Ctx(ctx).Debug().Msg("Transports response has no transports array")
	return &TransportsResult{Transports: []models.TransportRecord{}}
}

// get performs one authenticated GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set(AppKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(endpoint, 0, time.Since(start))
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstreamRequest(endpoint, resp.StatusCode, time.Since(start))
		return nil, &NetworkError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	metrics.RecordUpstreamRequest(endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if !json.Valid(body) {
		return nil, &NetworkError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: errors.New("response body is not valid JSON")}
	}
	return body, nil
}

// readBodyForError reads at most maxErrorBodySize bytes of an error response.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

func isJSONObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
