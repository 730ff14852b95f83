// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/punchdeck/punchdeck/internal/metrics"
	"github.com/punchdeck/punchdeck/internal/model"
	"github.com/punchdeck/punchdeck/internal/repository"
)

// Service errors.
var (
	ErrCardUIDExists    = errors.New("card uid already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrUnknownCard      = errors.New("unknown card")
	ErrInvalidEventType = errors.New("invalid event type")
	ErrScanDebounced    = errors.New("scan debounced")
)

// Default and maximum listing limits.
const (
	DefaultEventLimit   = 50
	DashboardEventLimit = 10
	MaxEventLimit       = 1000
)

// UserStore is the storage surface the service needs for the user registry.
// *repository.Repository satisfies it; tests substitute an in-memory store.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByCardUID(ctx context.Context, cardUID string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// EventStore is the storage surface for the append-only clock event log.
type EventStore interface {
	InsertEvent(ctx context.Context, event *model.ClockEvent) error
	LatestEventType(ctx context.Context, userID int64) (model.EventType, error)
	ListEvents(ctx context.Context, filter repository.EventFilter) ([]*model.EventWithUser, error)
	CurrentlyIn(ctx context.Context) ([]*model.User, error)
	CountEvents(ctx context.Context) (int64, error)
	CountEventsBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// *repository.Repository implements both storage surfaces.
var (
	_ UserStore  = (*repository.Repository)(nil)
	_ EventStore = (*repository.Repository)(nil)
)

// ScanDebouncer suppresses repeated reads of the same card within a window.
// Acquire returns false when the card was already seen inside the window.
type ScanDebouncer interface {
	Acquire(ctx context.Context, cardUID string, window time.Duration) (bool, error)
}

// AttendanceService implements the attendance core: user registry commands,
// clock event recording, and the derived presence and stats views.
type AttendanceService struct {
	users          UserStore
	events         EventStore
	debouncer      ScanDebouncer
	debounceWindow time.Duration
	metrics        metrics.Recorder
}

// Option configures an AttendanceService.
type Option func(*AttendanceService)

// WithScanDebounce enables scan debouncing with the given window.
func WithScanDebounce(debouncer ScanDebouncer, window time.Duration) Option {
	return func(s *AttendanceService) {
		s.debouncer = debouncer
		s.debounceWindow = window
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(s *AttendanceService) {
		s.metrics = recorder
	}
}

// New creates a new AttendanceService.
func New(users UserStore, events EventStore, opts ...Option) *AttendanceService {
	s := &AttendanceService{
		users:   users,
		events:  events,
		metrics: metrics.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// normalizeLimit clamps a caller-supplied limit into [1, MaxEventLimit],
// falling back to def when the limit is unset or nonsensical.
func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxEventLimit {
		return MaxEventLimit
	}
	return limit
}

// trimmed returns s with surrounding whitespace removed.
func trimmed(s string) string {
	return strings.TrimSpace(s)
}
