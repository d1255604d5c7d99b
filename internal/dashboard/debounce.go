// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package dashboard

import (
	"sync"
	"time"

	"github.com/tomtom215/transportmap/internal/metrics"
)

// Debouncer runs fn once a burst of Trigger calls has been quiet for the
// configured interval. Each Trigger cancels the pending run and reschedules.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	timer    *time.Timer
	stopped  bool
}

// NewDebouncer creates a debouncer. fn runs on its own goroutine.
func NewDebouncer(interval time.Duration, fn func()) *Debouncer {
	return &Debouncer{interval: interval, fn: fn}
}

// Trigger schedules fn after the quiet period, replacing any pending run.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		metrics.RecordDebouncedEvent()
	}
	d.timer = time.AfterFunc(d.interval, d.fn)
}

// Stop cancels any pending run. Later Trigger calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
