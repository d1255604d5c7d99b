// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package transform

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/transportmap/internal/models"
)

// PopupOperatorLimit is how many operators a hotspot popup lists.
const PopupOperatorLimit = 3

// ParseOperators decodes the operators property of a hotspot feature.
//
// Map engines flatten nested feature properties to strings, so the value may
// be a JSON array or a string containing one. Anything else, including a
// string that is not valid JSON, yields an empty list.
func ParseOperators(raw json.RawMessage) []models.Operator {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []models.Operator{}
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return []models.Operator{}
		}
		raw = bytes.TrimSpace([]byte(encoded))
	}

	if len(raw) == 0 || raw[0] != '[' {
		return []models.Operator{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.Operator{}
	}

	ops := make([]models.Operator, 0, len(items))
	for _, item := range items {
		var op models.Operator
		if err := json.Unmarshal(item, &op); err != nil {
			// Non-object entries still occupy a slot with no name or count.
			op = models.Operator{}
		}
		ops = append(ops, op)
	}
	return ops
}

// TopOperators returns the n operators with the highest effective count.
// Ties keep their input order. The input slice is not modified.
func TopOperators(ops []models.Operator, n int) []models.Operator {
	sorted := make([]models.Operator, len(ops))
	copy(sorted, ops)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveCount() > sorted[j].EffectiveCount()
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// PointCount reads the point_count property, which may be a number or a
// numeric string. Missing or unparseable values count as 0.
func PointCount(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		raw = []byte(s)
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0
	}
	return f
}
