// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

// Package models contains the data types exchanged with the upstream transport
// API and the aggregates derived from them.
package models

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Transport roles as reported by the upstream API. Comparison is case-insensitive.
const (
	RoleEmitent    = "emitent"
	RoleDestinatar = "destinatar"
	RoleReceptor   = "receptor"
)

// TransportRecord is a single transport active inside the requested area.
type TransportRecord struct {
	TransportID   TransportID    `json:"transport_id,omitempty"`
	CompanyName   string         `json:"company_name,omitempty"`
	Role          string         `json:"role,omitempty"`
	FirstPosition *FirstPosition `json:"first_position,omitempty"`
}

// TransportID identifies a transport. The upstream API sends it either as a
// string or as a number; numbers keep their JSON text. Other JSON values
// decode to an empty ID.
type TransportID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *TransportID) UnmarshalJSON(data []byte) error {
	*id = ""

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil //nolint:nilerr // an unreadable ID renders as N/A
		}
		*id = TransportID(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*id = TransportID(n.String())
		}
	}
	return nil
}

// NormalizedRole returns the role lowercased.
func (t *TransportRecord) NormalizedRole() string {
	return strings.ToLower(t.Role)
}

// IsEmitent reports whether the record has the sender role.
func (t *TransportRecord) IsEmitent() bool {
	return t.NormalizedRole() == RoleEmitent
}

// IsDestinatar reports whether the record has a receiver role.
// Both "destinatar" and "receptor" count as receivers.
func (t *TransportRecord) IsDestinatar() bool {
	role := t.NormalizedRole()
	return role == RoleDestinatar || role == RoleReceptor
}

// FirstPosition is the earliest known position of a transport.
type FirstPosition struct {
	Timestamp Timestamp `json:"timestamp"`
}

// Timestamp accepts RFC 3339 strings, common date-time layouts and Unix
// milliseconds. Unparseable values decode without error and stay invalid.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000",
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil //nolint:nilerr // invalid timestamps render as N/A
		}
		*ts = ParseTimestamp(s)
		return nil
	}

	if ms, err := strconv.ParseFloat(string(data), 64); err == nil {
		*ts = Timestamp{Time: time.UnixMilli(int64(ms)).UTC(), Valid: true}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}

// ParseTimestamp parses a timestamp string using the accepted layouts.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Valid: true}
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Timestamp{Time: time.UnixMilli(ms).UTC(), Valid: true}
	}
	return Timestamp{}
}
