// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package render

import (
	"strconv"

	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/transform"
)

const (
	popupTitle        = "Hotspot Activity"
	popupNoOperators  = "No operator data available"
	popupSubtitleTail = " points detected"
)

// PopupOperator is one operator row of a hotspot popup.
type PopupOperator struct {
	Name  string  `json:"name"`
	Count float64 `json:"count"`
}

// PopupView describes the popup opened on a hotspot click.
type PopupView struct {
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	PointCount float64         `json:"point_count"`
	Operators  []PopupOperator `json:"operators"`
	// EmptyMessage is set when there are no operators to list.
	EmptyMessage string `json:"empty_message,omitempty"`
}

// Popup builds the popup for a clicked hotspot. Unparseable operator data
// renders the empty message.
func Popup(props models.HotspotProperties) PopupView {
	pointCount := transform.PointCount(props.PointCount)
	top := transform.TopOperators(transform.ParseOperators(props.Operators), transform.PopupOperatorLimit)

	view := PopupView{
		Title:      popupTitle,
		Subtitle:   formatNumber(pointCount) + popupSubtitleTail,
		PointCount: pointCount,
		Operators:  make([]PopupOperator, 0, len(top)),
	}
	for i := range top {
		view.Operators = append(view.Operators, PopupOperator{
			Name:  top[i].DisplayName(),
			Count: top[i].EffectiveCount(),
		})
	}
	if len(view.Operators) == 0 {
		view.EmptyMessage = popupNoOperators
	}
	return view
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
