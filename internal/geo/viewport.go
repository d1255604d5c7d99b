// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

// Package geo provides viewport and bounding box helpers for the map dashboard.
//
// A Viewport is the southwest/northeast corner pair reported by the map widget.
// Upstream endpoints take the viewport as a bbox query value formatted as
// "swLng,swLat,neLng,neLat". The heatmap and transport feeds are requested with
// a buffered bbox so that short pans do not expose empty margins.
//
//	vp := geo.Viewport{
//	    SouthWest: geo.LngLat{Lng: 20, Lat: 43.5},
//	    NorthEast: geo.LngLat{Lng: 30, Lat: 48.5},
//	}
//	bbox, ok := geo.BufferedBBox(&vp, geo.DefaultBufferRatio)
//	// bbox == "18,42.5,32,49.5"
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// DefaultBufferRatio expands the viewport by 20% of its span on each side.
const DefaultBufferRatio = 0.2

// ErrInvalidBBox is returned by ParseBBox for malformed bbox strings.
var ErrInvalidBBox = errors.New("invalid bbox")

// LngLat is a longitude/latitude pair in degrees.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Viewport is the rectangular extent currently shown by the map.
type Viewport struct {
	SouthWest LngLat `json:"sw"`
	NorthEast LngLat `json:"ne"`
}

// Span returns the longitude and latitude extent of the viewport.
func (v Viewport) Span() (lngSpan, latSpan float64) {
	return v.NorthEast.Lng - v.SouthWest.Lng, v.NorthEast.Lat - v.SouthWest.Lat
}

// Buffered returns the viewport expanded by ratio of its span on each side.
func (v Viewport) Buffered(ratio float64) Viewport {
	lngSpan, latSpan := v.Span()
	return Viewport{
		SouthWest: LngLat{
			Lng: v.SouthWest.Lng - lngSpan*ratio,
			Lat: v.SouthWest.Lat - latSpan*ratio,
		},
		NorthEast: LngLat{
			Lng: v.NorthEast.Lng + lngSpan*ratio,
			Lat: v.NorthEast.Lat + latSpan*ratio,
		},
	}
}

// String formats the viewport as "swLng,swLat,neLng,neLat".
func (v Viewport) String() string {
	var b strings.Builder
	b.Grow(64)
	b.WriteString(formatCoord(v.SouthWest.Lng))
	b.WriteByte(',')
	b.WriteString(formatCoord(v.SouthWest.Lat))
	b.WriteByte(',')
	b.WriteString(formatCoord(v.NorthEast.Lng))
	b.WriteByte(',')
	b.WriteString(formatCoord(v.NorthEast.Lat))
	return b.String()
}

// StrictlyContains reports whether o lies inside v without touching any edge.
func (v Viewport) StrictlyContains(o Viewport) bool {
	return v.SouthWest.Lng < o.SouthWest.Lng &&
		v.SouthWest.Lat < o.SouthWest.Lat &&
		v.NorthEast.Lng > o.NorthEast.Lng &&
		v.NorthEast.Lat > o.NorthEast.Lat
}

// Rect converts the viewport to an s2 latitude/longitude rectangle.
// Coordinates outside the valid geographic range are clamped.
func (v Viewport) Rect() s2.Rect {
	lat := r1.Interval{
		Lo: degreesToRadians(clamp(v.SouthWest.Lat, -90, 90)),
		Hi: degreesToRadians(clamp(v.NorthEast.Lat, -90, 90)),
	}

	lngSpan, _ := v.Span()
	if lngSpan >= 360 {
		return s2.Rect{Lat: lat, Lng: s1.FullInterval()}
	}

	lng := s1.IntervalFromEndpoints(
		degreesToRadians(clamp(v.SouthWest.Lng, -180, 180)),
		degreesToRadians(clamp(v.NorthEast.Lng, -180, 180)),
	)
	return s2.Rect{Lat: lat, Lng: lng}
}

// Contains reports whether o is fully covered by v on the sphere.
func (v Viewport) Contains(o Viewport) bool {
	return v.Rect().Contains(o.Rect())
}

// BBox formats the unbuffered viewport. It returns false when no viewport is
// available yet (the map has not been initialized).
func BBox(v *Viewport) (string, bool) {
	if v == nil {
		return "", false
	}
	return v.String(), true
}

// BufferedBBox formats the viewport expanded by bufferRatio on each side.
// It returns false when no viewport is available yet.
func BufferedBBox(v *Viewport, bufferRatio float64) (string, bool) {
	if v == nil {
		return "", false
	}
	return v.Buffered(bufferRatio).String(), true
}

// ParseBBox parses a "swLng,swLat,neLng,neLat" string.
func ParseBBox(s string) (Viewport, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return Viewport{}, fmt.Errorf("%w: expected 4 comma-separated values, got %d", ErrInvalidBBox, len(parts))
	}

	var vals [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Viewport{}, fmt.Errorf("%w: value %d: %w", ErrInvalidBBox, i+1, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Viewport{}, fmt.Errorf("%w: value %d is not finite", ErrInvalidBBox, i+1)
		}
		vals[i] = f
	}

	v := Viewport{
		SouthWest: LngLat{Lng: vals[0], Lat: vals[1]},
		NorthEast: LngLat{Lng: vals[2], Lat: vals[3]},
	}
	if v.SouthWest.Lng > v.NorthEast.Lng || v.SouthWest.Lat > v.NorthEast.Lat {
		return Viewport{}, fmt.Errorf("%w: southwest corner must not exceed northeast corner", ErrInvalidBBox)
	}
	return v, nil
}

// formatCoord uses the shortest representation that round-trips.
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func degreesToRadians(d float64) float64 {
	return (s1.Angle(d) * s1.Degree).Radians()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
