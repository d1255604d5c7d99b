// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/transportmap/internal/geo"
	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/validation"
)

// maxPopupBodyBytes bounds POST /popup bodies. Operator lists are small.
const maxPopupBodyBytes = 64 * 1024

// ViewRequest holds the query parameters of GET /view.
//
// Fields:
//   - BBox: visible area as swLng,swLat,neLng,neLat
//   - Zoom: map zoom level (0-24)
type ViewRequest struct {
	BBox string  `validate:"required,bbox"`
	Zoom float64 `validate:"gte=0,lte=24"`
}

// CompaniesRequest holds the query parameters of GET /companies.
type CompaniesRequest struct {
	BBox string `validate:"required,bbox"`
}

// requestError is a client error found while parsing a request. It is a
// 400 unless tooLarge is set.
type requestError struct {
	message    string
	tooLarge   bool
	validation *validation.RequestValidationError
}

func (e *requestError) Error() string {
	if e.validation != nil {
		return e.validation.Error()
	}
	return e.message
}

func (e *requestError) write(rw *ResponseWriter) {
	switch {
	case e.validation != nil:
		rw.ValidationFailed(e.validation)
	case e.tooLarge:
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge, e.message)
	default:
		rw.BadRequest(e.message)
	}
}

func validateRequest(req interface{}) *requestError {
	if verr := validation.ValidateStruct(req); verr != nil {
		return &requestError{validation: verr}
	}
	return nil
}

// parseViewRequest reads bbox and zoom. The returned viewport is the parsed
// bbox.
func parseViewRequest(r *http.Request) (ViewRequest, geo.Viewport, *requestError) {
	q := r.URL.Query()
	req := ViewRequest{BBox: strings.TrimSpace(q.Get("bbox"))}

	rawZoom := strings.TrimSpace(q.Get("zoom"))
	if rawZoom == "" {
		return req, geo.Viewport{}, &requestError{message: "zoom is required"}
	}
	zoom, err := strconv.ParseFloat(rawZoom, 64)
	if err != nil {
		return req, geo.Viewport{}, &requestError{message: fmt.Sprintf("zoom must be a number, got %q", rawZoom)}
	}
	req.Zoom = zoom

	if rerr := validateRequest(&req); rerr != nil {
		return req, geo.Viewport{}, rerr
	}

	vp, err := geo.ParseBBox(req.BBox)
	if err != nil {
		return req, geo.Viewport{}, &requestError{message: err.Error()}
	}
	return req, vp, nil
}

// parseCompaniesRequest reads bbox and returns it in canonical form.
func parseCompaniesRequest(r *http.Request) (string, *requestError) {
	req := CompaniesRequest{BBox: strings.TrimSpace(r.URL.Query().Get("bbox"))}
	if rerr := validateRequest(&req); rerr != nil {
		return "", rerr
	}
	vp, err := geo.ParseBBox(req.BBox)
	if err != nil {
		return "", &requestError{message: err.Error()}
	}
	bbox, _ := geo.BBox(&vp)
	return bbox, nil
}

// decodePopupRequest reads hotspot properties from a JSON body. Both a bare
// properties object and a GeoJSON feature with a properties member are
// accepted.
func decodePopupRequest(w http.ResponseWriter, r *http.Request) (models.HotspotProperties, *requestError) {
	var props models.HotspotProperties

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPopupBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return props, &requestError{
				message:  fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit),
				tooLarge: true,
			}
		}
		return props, &requestError{message: "failed to read request body"}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return props, &requestError{message: "request body is required"}
	}

	var envelope struct {
		Type       string                    `json:"type"`
		Properties *models.HotspotProperties `json:"properties"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return props, &requestError{message: "request body must be a JSON object"}
	}
	if envelope.Type == "Feature" && envelope.Properties != nil {
		return *envelope.Properties, nil
	}
	if err := json.Unmarshal(body, &props); err != nil {
		return props, &requestError{message: "request body must be a JSON object"}
	}
	return props, nil
}
