package metrics

import "time"

// NoopRecorder discards all metrics.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncEventRecorded is a no-op.
func (n *NoopRecorder) IncEventRecorded(eventType string) {}

// IncScanAccepted is a no-op.
func (n *NoopRecorder) IncScanAccepted() {}

// IncScanDebounced is a no-op.
func (n *NoopRecorder) IncScanDebounced() {}

// IncScanUnknownCard is a no-op.
func (n *NoopRecorder) IncScanUnknownCard() {}

// ObservePresenceQueryDuration is a no-op.
func (n *NoopRecorder) ObservePresenceQueryDuration(duration time.Duration) {}
