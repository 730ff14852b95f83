// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Registry metrics
	IncUserCreated()

	// Event log metrics
	IncEventRecorded(eventType string) // "in" or "out"

	// Badge scan metrics
	IncScanAccepted()
	IncScanDebounced()
	IncScanUnknownCard()

	// Presence query metrics
	ObservePresenceQueryDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
