// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// FeatureCollection is a GeoJSON-like heatmap payload. The body is kept as
// received and handed to the map layer unmodified.
type FeatureCollection struct {
	raw          []byte
	featureCount int
}

// DecodeFeatureCollection checks that body is a JSON object whose "features"
// member is an array. ok is false when the member is missing or not an array;
// err is non-nil only when body is not valid JSON.
func DecodeFeatureCollection(body []byte) (fc *FeatureCollection, ok bool, err error) {
	var probe struct {
		Features json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, false, fmt.Errorf("decode heatmap body: %w", err)
	}

	features := bytes.TrimSpace(probe.Features)
	if len(features) == 0 || features[0] != '[' {
		return nil, false, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(features, &items); err != nil {
		return nil, false, fmt.Errorf("decode heatmap features: %w", err)
	}

	raw := make([]byte, len(body))
	copy(raw, body)
	return &FeatureCollection{raw: raw, featureCount: len(items)}, true, nil
}

// EmptyFeatureCollection returns a collection with no features.
func EmptyFeatureCollection() *FeatureCollection {
	return &FeatureCollection{raw: []byte(`{"type":"FeatureCollection","features":[]}`)}
}

// FeatureCount returns the number of features in the collection.
func (fc *FeatureCollection) FeatureCount() int {
	if fc == nil {
		return 0
	}
	return fc.featureCount
}

// Raw returns the collection exactly as received.
func (fc *FeatureCollection) Raw() []byte {
	if fc == nil {
		return nil
	}
	return fc.raw
}

// MarshalJSON implements json.Marshaler by emitting the original body.
func (fc *FeatureCollection) MarshalJSON() ([]byte, error) {
	if fc == nil || len(fc.raw) == 0 {
		return []byte("null"), nil
	}
	return fc.raw, nil
}
