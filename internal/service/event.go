package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/punchdeck/punchdeck/internal/model"
	"github.com/punchdeck/punchdeck/internal/repository"
)

// RecordEvent appends a clock event for a user. The timestamp is assigned by
// the storage layer at insertion. Consecutive events of the same type are
// allowed: the log records raw scans and leaves reconciliation to the viewer.
func (s *AttendanceService) RecordEvent(ctx context.Context, userID int64, eventType model.EventType) (*model.ClockEvent, error) {
	if !eventType.IsValid() {
		return nil, ErrInvalidEventType
	}

	event := &model.ClockEvent{
		UserID:    userID,
		EventType: eventType,
	}

	if err := s.events.InsertEvent(ctx, event); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to record event: %w", err)
	}

	s.metrics.IncEventRecorded(string(eventType))

	return event, nil
}

// EventFilter narrows an event report.
type EventFilter struct {
	UserID *int64
	From   *time.Time
	To     *time.Time
	Limit  int
}

// ListRecentEvents returns the most recent events joined with user identity,
// newest first with event ID as the tie-break. Limit defaults to
// DefaultEventLimit and is capped at MaxEventLimit.
func (s *AttendanceService) ListRecentEvents(ctx context.Context, limit int) ([]*model.EventWithUser, error) {
	return s.ListEvents(ctx, EventFilter{Limit: limit})
}

// ListEvents returns a filtered event report with the same ordering
// guarantees as ListRecentEvents.
func (s *AttendanceService) ListEvents(ctx context.Context, filter EventFilter) ([]*model.EventWithUser, error) {
	events, err := s.events.ListEvents(ctx, repository.EventFilter{
		UserID: filter.UserID,
		From:   filter.From,
		To:     filter.To,
		Limit:  normalizeLimit(filter.Limit, DefaultEventLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}
