// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package models defines the data exchanged with the upstream transport API
and the values derived from it.

Upstream payloads:

  - FeatureCollection: the heatmap GeoJSON, kept as raw bytes so features
    pass through to the map unchanged
  - HotspotProperties, Operator: properties of a clicked hotspot feature
  - TransportRecord, FirstPosition, Timestamp: one entry of the company
    transports response

Derived values:

  - CompanyAggregate: transports grouped by company with role flags

Upstream fields are loosely typed. Numbers may arrive as strings and nested
objects as JSON-encoded strings, so the decoding helpers here and in package
transform accept both and fall back to zero values instead of failing.
*/
package models
