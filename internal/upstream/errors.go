// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package upstream

import (
	"errors"
	"fmt"
)

// NetworkError reports a failed call to the transport API: a transport
// failure, a non-2xx status or an undecodable body.
type NetworkError struct {
	Endpoint string
	// StatusCode is 0 when no response was received.
	StatusCode int
	// Body holds the start of a non-2xx response body.
	Body string
	Err  error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s request failed with status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Endpoint, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s request failed with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s request failed with status %d", e.Endpoint, e.StatusCode)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
