// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package api

import (
	"net/http"

	"github.com/tomtom215/transportmap/internal/dashboard"
	"github.com/tomtom215/transportmap/internal/logging"
	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/render"
	"github.com/tomtom215/transportmap/internal/transform"
	"github.com/tomtom215/transportmap/internal/upstream"
)

// CompaniesResponse is the payload of GET /companies.
type CompaniesResponse struct {
	BBox           string                    `json:"bbox"`
	TransportCount int                       `json:"transport_count"`
	Companies      []models.CompanyAggregate `json:"companies"`
}

// View runs one refresh cycle for the requested viewport and returns the
// heatmap data, the layers a client should add and the final sidebar view.
// A failed heatmap fetch leaves heatmap null and heatmap_status says why.
// A failed transports fetch shows up as the sidebar error state. Neither is
// an HTTP error.
//
// GET /api/v1/view?bbox=swLng,swLat,neLng,neLat&zoom=10
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, vp, rerr := parseViewRequest(r)
	if rerr != nil {
		rerr.write(rw)
		return
	}

	view := dashboard.Snapshot(r.Context(), h.fetcher, h.opts, vp, req.Zoom)
	rw.Success(view)
}

// Companies returns the transports of the area grouped by company, busiest
// first. Unlike View it reports an upstream failure as 502.
//
// GET /api/v1/companies?bbox=swLng,swLat,neLng,neLat
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	bbox, rerr := parseCompaniesRequest(r)
	if rerr != nil {
		rerr.write(rw)
		return
	}

	result, err := h.fetcher.FetchCompanyTransports(r.Context(), bbox)
	if err != nil {
		rw.ExternalServiceError(upstream.EndpointTransports, err)
		return
	}

	companies := transform.GroupByCompany(result.Transports)
	logging.Ctx(r.Context()).Debug().
		Str("bbox", bbox).
		Int("transports", len(result.Transports)).
		Int("companies", len(companies)).
		Msg("Companies aggregated")

	rw.Success(CompaniesResponse{
		BBox:           bbox,
		TransportCount: len(result.Transports),
		Companies:      companies,
	})
}

// Popup renders the popup for a clicked hotspot. The body is the feature's
// properties object or the feature itself.
//
// POST /api/v1/popup
func (h *Handler) Popup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	props, rerr := decodePopupRequest(w, r)
	if rerr != nil {
		rerr.write(rw)
		return
	}
	rw.Success(render.Popup(props))
}
