// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

// Package services adapts the server's components to suture.Service.
//
// Each wrapper takes a small interface instead of the concrete type, so the
// package imports neither net/http servers nor the websocket package:
//
//   - HTTPServerService: ListenAndServe on a goroutine, graceful Shutdown
//     when the supervisor context ends
//   - WebSocketHubService: delegates to Hub.RunWithContext
//
// Both return ctx.Err() on a clean stop and a wrapped error otherwise, which
// suture treats as a crash and restarts.
package services
