package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated         uint64
	EventsRecordedIn     uint64
	EventsRecordedOut    uint64
	ScansAccepted        uint64
	ScansDebounced       uint64
	ScansUnknownCard     uint64
	PresenceQueryCount   uint64
	PresenceQueryTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersCreated         uint64
	eventsRecordedIn     uint64
	eventsRecordedOut    uint64
	scansAccepted        uint64
	scansDebounced       uint64
	scansUnknownCard     uint64
	presenceQueryCount   uint64
	presenceQueryTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:         atomic.LoadUint64(&m.usersCreated),
		EventsRecordedIn:     atomic.LoadUint64(&m.eventsRecordedIn),
		EventsRecordedOut:    atomic.LoadUint64(&m.eventsRecordedOut),
		ScansAccepted:        atomic.LoadUint64(&m.scansAccepted),
		ScansDebounced:       atomic.LoadUint64(&m.scansDebounced),
		ScansUnknownCard:     atomic.LoadUint64(&m.scansUnknownCard),
		PresenceQueryCount:   atomic.LoadUint64(&m.presenceQueryCount),
		PresenceQueryTotalNs: atomic.LoadInt64(&m.presenceQueryTotalNs),
	}
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncEventRecorded increments the event counter for the given type.
func (m *InMemoryRecorder) IncEventRecorded(eventType string) {
	if eventType == "in" {
		atomic.AddUint64(&m.eventsRecordedIn, 1)
		return
	}
	atomic.AddUint64(&m.eventsRecordedOut, 1)
}

// IncScanAccepted increments the accepted scan counter.
func (m *InMemoryRecorder) IncScanAccepted() {
	atomic.AddUint64(&m.scansAccepted, 1)
}

// IncScanDebounced increments the debounced scan counter.
func (m *InMemoryRecorder) IncScanDebounced() {
	atomic.AddUint64(&m.scansDebounced, 1)
}

// IncScanUnknownCard increments the unknown card counter.
func (m *InMemoryRecorder) IncScanUnknownCard() {
	atomic.AddUint64(&m.scansUnknownCard, 1)
}

// ObservePresenceQueryDuration records a presence query duration.
func (m *InMemoryRecorder) ObservePresenceQueryDuration(duration time.Duration) {
	atomic.AddUint64(&m.presenceQueryCount, 1)
	atomic.AddInt64(&m.presenceQueryTotalNs, duration.Nanoseconds())
}
