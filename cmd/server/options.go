// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package main

import (
	"fmt"

	"github.com/tomtom215/transportmap/internal/config"
	"github.com/tomtom215/transportmap/internal/dashboard"
	"github.com/tomtom215/transportmap/internal/render"
)

// dashboardOptions converts the dashboard section into controller options.
func dashboardOptions(cfg *config.Config) (dashboard.Options, error) {
	mode, err := render.ParseSidebarMode(cfg.Dashboard.SidebarMode)
	if err != nil {
		return dashboard.Options{}, err
	}
	style, err := render.ParseStyle(cfg.Dashboard.HeatmapStyle)
	if err != nil {
		return dashboard.Options{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return dashboard.Options{}, fmt.Errorf("timezone %q: %w", cfg.Dashboard.Timezone, err)
	}

	return dashboard.Options{
		ZoomThreshold:    cfg.Dashboard.SidebarZoomThreshold,
		DebounceInterval: cfg.Dashboard.DebounceInterval,
		BufferRatio:      cfg.Dashboard.BBoxBufferRatio,
		Style:            style,
		Mode:             mode,
		Location:         loc,
	}, nil
}
