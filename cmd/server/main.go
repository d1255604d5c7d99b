// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/transportmap/internal/api"
	"github.com/tomtom215/transportmap/internal/config"
	"github.com/tomtom215/transportmap/internal/logging"
	"github.com/tomtom215/transportmap/internal/metrics"
	"github.com/tomtom215/transportmap/internal/supervisor"
	"github.com/tomtom215/transportmap/internal/supervisor/services"
	"github.com/tomtom215/transportmap/internal/upstream"
	ws "github.com/tomtom215/transportmap/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; the default logger writes to stderr.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.SetAppInfo(version, runtime.Version())

	opts, err := dashboardOptions(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid dashboard configuration")
	}

	logging.Info().
		Str("version", version).
		Str("upstream", cfg.Upstream.BaseURL).
		Str("environment", cfg.Server.Environment).
		Float64("sidebar_zoom_threshold", opts.ZoomThreshold).
		Str("sidebar_mode", string(opts.Mode)).
		Str("heatmap_style", string(opts.Style)).
		Msg("Starting Transportmap")

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.Timeout)
	hub := ws.NewHub()

	handler := api.NewHandler(client, cfg, opts, hub)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Each view request makes two sequential upstream calls.
		WriteTimeout: cfg.Server.Timeout + 2*cfg.Upstream.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Supervisor events are bridged from slog into zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
