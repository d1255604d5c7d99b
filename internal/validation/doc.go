// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

// Package validation wraps go-playground/validator v10 with a shared validator
// instance and API-friendly error messages.
//
// It validates HTTP query parameters, inbound WebSocket events and the
// loaded configuration:
//
//	type viewRequest struct {
//	    BBox string  `validate:"required,bbox"`
//	    Zoom float64 `validate:"gte=0,lte=24"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // apiErr.Code == "VALIDATION_FAILED"
//	}
package validation
