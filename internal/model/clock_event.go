package model

import "time"

// EventType is the direction of a clock event.
type EventType string

// Valid event types.
const (
	EventIn  EventType = "in"
	EventOut EventType = "out"
)

// IsValid reports whether t is a known event type.
func (t EventType) IsValid() bool {
	return t == EventIn || t == EventOut
}

// Toggle returns the opposite direction. A badge scan after an "in" event
// clocks the user out, anything else (including no events at all) clocks in.
func (t EventType) Toggle() EventType {
	if t == EventIn {
		return EventOut
	}
	return EventIn
}

// ClockEvent is one row of the append-only clock event log.
// Events for a user are totally ordered by (Timestamp, ID); the ID tie-break
// matters because two events can share a timestamp.
type ClockEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EventType EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"` // Assigned by the database at insertion
}

// EventWithUser is a clock event joined with the identity of its user,
// as shown in event reports.
type EventWithUser struct {
	ClockEvent
	UserName string `json:"user_name"`
	CardUID  string `json:"card_uid"`
}

// Stats holds aggregate counts over the registry and the event log.
// The three counts are individually correct but not taken in a single
// transaction; concurrent writes may skew them relative to each other.
type Stats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalEvents    int64 `json:"total_events"`
	ClockedInCount int64 `json:"clocked_in_count"`
}
