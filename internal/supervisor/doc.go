// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

/*
Package supervisor runs the server's long-lived services under suture v4.

The tree has two layers so a failure in one does not stop the other:

	root ("transportmap")
	├── messaging-layer
	│   └── WebSocketHubService   live map sessions
	└── api-layer
	    └── HTTPServerService     REST endpoints, metrics, WebSocket upgrade

A service that returns an error is restarted. After FailureThreshold
failures (decaying at FailureDecay per second) the supervisor backs off for
FailureBackoff before trying again. On shutdown every service gets
ShutdownTimeout to return; UnstoppedServiceReport lists the ones that did
not.

Supervisor events go to a *slog.Logger through sutureslog. The server passes
logging.NewSlogLogger(), which writes them into the zerolog stream.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	<-errCh

The service wrappers live in the services subpackage.
*/
package supervisor
