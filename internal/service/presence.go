package service

import (
	"context"
	"fmt"
	"time"

	"github.com/punchdeck/punchdeck/internal/model"
)

// CurrentlyIn returns the users whose latest clock event is "in", ordered by
// user ID ascending. The result is recomputed from the live event log on
// every call; it is never cached, since staleness would misreport presence.
func (s *AttendanceService) CurrentlyIn(ctx context.Context) ([]*model.User, error) {
	start := time.Now()

	users, err := s.events.CurrentlyIn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute presence: %w", err)
	}

	s.metrics.ObservePresenceQueryDuration(time.Since(start))

	return users, nil
}

// Stats returns aggregate counts. The three figures are each correct at the
// moment they are read but are not taken in a single transaction.
func (s *AttendanceService) Stats(ctx context.Context) (*model.Stats, error) {
	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalEvents, err := s.events.CountEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	currentlyIn, err := s.CurrentlyIn(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Stats{
		TotalUsers:     totalUsers,
		TotalEvents:    totalEvents,
		ClockedInCount: int64(len(currentlyIn)),
	}, nil
}

// Dashboard bundles the admin landing view: aggregate stats, today's event
// count, and the latest DashboardEventLimit events.
type Dashboard struct {
	Stats        *model.Stats
	EventsToday  int64
	RecentEvents []*model.EventWithUser
}

// GetDashboard assembles the dashboard view.
func (s *AttendanceService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	eventsToday, err := s.events.CountEventsBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count today's events: %w", err)
	}

	recent, err := s.ListEvents(ctx, EventFilter{Limit: DashboardEventLimit})
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats:        stats,
		EventsToday:  eventsToday,
		RecentEvents: recent,
	}, nil
}
