// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package models

import "github.com/goccy/go-json"

// UnknownOperatorName is shown for operators without a name.
const UnknownOperatorName = "Unknown"

// Operator is one entry of a hotspot's operators property.
type Operator struct {
	Name         string  `json:"name,omitempty"`
	OperatorName string  `json:"operator_name,omitempty"`
	Count        float64 `json:"count,omitempty"`
	PointCount   float64 `json:"point_count,omitempty"`
}

// DisplayName returns name, then operator_name, then UnknownOperatorName.
func (o *Operator) DisplayName() string {
	switch {
	case o.Name != "":
		return o.Name
	case o.OperatorName != "":
		return o.OperatorName
	default:
		return UnknownOperatorName
	}
}

// EffectiveCount returns count, then point_count, then 0.
func (o *Operator) EffectiveCount() float64 {
	if o.Count != 0 {
		return o.Count
	}
	return o.PointCount
}

// HotspotProperties are the properties of a clicked heatmap feature.
// Both members are kept raw: point_count may arrive as a number or a string
// and operators as an array or a string holding an array.
type HotspotProperties struct {
	PointCount json.RawMessage `json:"point_count,omitempty"`
	Operators  json.RawMessage `json:"operators,omitempty"`
}
