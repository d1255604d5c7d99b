// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

// Package transform turns upstream records into the aggregates shown by the
// dashboard. All functions are pure.
package transform

import (
	"sort"

	"github.com/tomtom215/transportmap/internal/models"
)

// GroupByCompany aggregates transport records per company name.
//
// Records without a company name are grouped under models.UnknownCompanyName.
// A company is flagged emitent or destinatar when at least one of its records
// carries that role (case-insensitive, "receptor" counts as destinatar). The
// result is sorted by descending count; companies with equal counts keep the
// order in which they were first seen. An empty input yields an empty slice.
func GroupByCompany(records []models.TransportRecord) []models.CompanyAggregate {
	index := make(map[string]int, len(records))
	groups := make([]models.CompanyAggregate, 0, len(records))

	for i := range records {
		rec := &records[i]

		name := rec.CompanyName
		if name == "" {
			name = models.UnknownCompanyName
		}

		pos, ok := index[name]
		if !ok {
			pos = len(groups)
			index[name] = pos
			groups = append(groups, models.CompanyAggregate{Name: name})
		}

		g := &groups[pos]
		g.Count++
		if rec.IsEmitent() {
			g.IsEmitent = true
		}
		if rec.IsDestinatar() {
			g.IsDestinatar = true
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}
