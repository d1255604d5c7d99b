// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package models

// UnknownCompanyName is used when a transport has no company name.
const UnknownCompanyName = "Necunoscut"

// CompanyAggregate summarizes the transports of one company in the current area.
type CompanyAggregate struct {
	Name         string `json:"name"`
	Count        int    `json:"count"`
	IsEmitent    bool   `json:"is_emitent"`
	IsDestinatar bool   `json:"is_destinatar"`
}

// HasBothRoles reports whether the company appears as sender and receiver.
func (c *CompanyAggregate) HasBothRoles() bool {
	return c.IsEmitent && c.IsDestinatar
}
