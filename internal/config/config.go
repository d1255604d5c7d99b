// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	WebSocket WebSocketConfig `koanf:"websocket"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// UpstreamConfig points at the transport data API.
//
// Environment Variables:
//   - UPSTREAM_BASE_URL (or API_BASE_URL): base URL including any path prefix
//   - UPSTREAM_API_KEY (or APP_KEY): value of the X-App-Key header
//   - UPSTREAM_TIMEOUT: per-request timeout (default: 30s)
type UpstreamConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// DashboardConfig holds the map page behaviour.
type DashboardConfig struct {
	// SidebarZoomThreshold is the minimum zoom at which the sidebar feed is
	// fetched. 0 fetches at every zoom level.
	SidebarZoomThreshold float64 `koanf:"sidebar_zoom_threshold" validate:"gte=0,lte=24"`

	// DebounceInterval is the quiet period after moveend/zoomend.
	DebounceInterval time.Duration `koanf:"debounce_interval"`

	// BBoxBufferRatio expands the requested area on each side. 0 requests
	// exactly the visible area.
	BBoxBufferRatio float64 `koanf:"bbox_buffer_ratio" validate:"gte=0,lte=5"`

	// SidebarMode is companies (grouped cards) or transports (raw cards).
	SidebarMode string `koanf:"sidebar_mode" validate:"oneof=companies transports"`

	// HeatmapStyle is basic or detailed.
	HeatmapStyle string `koanf:"heatmap_style" validate:"oneof=basic detailed"`

	// Timezone is used for transport card times (IANA name or "Local").
	Timezone string `koanf:"timezone" validate:"required"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// SecurityConfig holds CORS and HTTP rate limit settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// WebSocketConfig holds per-session limits.
type WebSocketConfig struct {
	MaxMessageSize int64   `koanf:"max_message_size" validate:"min=512,max=1048576"`
	EventRate      float64 `koanf:"event_rate" validate:"gt=0"`
	EventBurst     int     `koanf:"event_burst" validate:"min=1"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console. JSON is recommended for production.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Location resolves Dashboard.Timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Dashboard.Timezone)
}

// Load reads configuration from, in increasing precedence:
//  1. Built-in defaults
//  2. Config file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables
func Load() (*Config, error) {
	return LoadWithKoanf()
}
