// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

type hijackableRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackableRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	t.Run("first status wins", func(t *testing.T) {
		t.Parallel()
		rec := newStatusRecorder(httptest.NewRecorder())
		rec.WriteHeader(http.StatusBadGateway)
		rec.WriteHeader(http.StatusOK)
		if rec.statusCode != http.StatusBadGateway {
			t.Errorf("statusCode = %d, want 502", rec.statusCode)
		}
	})

	t.Run("implicit 200 and byte count", func(t *testing.T) {
		t.Parallel()
		rec := newStatusRecorder(httptest.NewRecorder())
		_, _ = rec.Write([]byte("hello"))
		_, _ = rec.Write([]byte(" world"))
		if rec.statusCode != http.StatusOK || rec.bytes != 11 {
			t.Errorf("status/bytes = %d/%d, want 200/11", rec.statusCode, rec.bytes)
		}
	})

	t.Run("hijack passes through", func(t *testing.T) {
		t.Parallel()
		inner := &hijackableRecorder{ResponseRecorder: httptest.NewRecorder()}
		rec := newStatusRecorder(inner)
		if _, _, err := rec.Hijack(); err != nil {
			t.Fatalf("Hijack() error = %v", err)
		}
		if !inner.hijacked {
			t.Error("underlying Hijack was not called")
		}
		if rec.statusCode != http.StatusSwitchingProtocols {
			t.Errorf("statusCode = %d, want 101", rec.statusCode)
		}
	})

	t.Run("hijack unsupported", func(t *testing.T) {
		t.Parallel()
		rec := newStatusRecorder(httptest.NewRecorder())
		if _, _, err := rec.Hijack(); err == nil {
			t.Error("Hijack() error = nil, want unsupported error")
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()
		inner := httptest.NewRecorder()
		rec := newStatusRecorder(inner)
		if rec.Unwrap() != inner {
			t.Error("Unwrap() did not return the wrapped writer")
		}
	})
}
