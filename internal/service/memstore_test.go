package service

import (
	"context"
	"sort"
	"time"

	"github.com/punchdeck/punchdeck/internal/model"
	"github.com/punchdeck/punchdeck/internal/repository"
)

// memStore is an in-memory UserStore + EventStore for exercising the core
// without a database. It honors the same constraints the schema enforces:
// unique card UIDs, foreign keys, and (timestamp, id) event ordering.
type memStore struct {
	users  []*model.User
	events []*model.ClockEvent

	nextUserID  int64
	nextEventID int64

	// now lets tests force timestamp collisions.
	now func() time.Time
}

func newMemStore() *memStore {
	return &memStore{now: time.Now}
}

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.CardUID == user.CardUID {
			return repository.ErrCardUIDExists
		}
	}
	m.nextUserID++
	user.ID = m.nextUserID
	user.CreatedAt = m.now()
	m.users = append(m.users, user)
	return nil
}

func (m *memStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) GetUserByCardUID(_ context.Context, cardUID string) (*model.User, error) {
	for _, u := range m.users {
		if u.CardUID == cardUID {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) ListUsers(_ context.Context) ([]*model.User, error) {
	out := append([]*model.User(nil), m.users...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CountUsers(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *memStore) InsertEvent(ctx context.Context, event *model.ClockEvent) error {
	if _, err := m.GetUserByID(ctx, event.UserID); err != nil {
		return repository.ErrUserNotFound
	}
	m.nextEventID++
	event.ID = m.nextEventID
	event.Timestamp = m.now()
	m.events = append(m.events, event)
	return nil
}

// after reports whether event a sorts after b in the (timestamp, id) order.
func after(a, b *model.ClockEvent) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}

func (m *memStore) latestEvent(userID int64) *model.ClockEvent {
	var latest *model.ClockEvent
	for _, e := range m.events {
		if e.UserID != userID {
			continue
		}
		if latest == nil || after(e, latest) {
			latest = e
		}
	}
	return latest
}

func (m *memStore) LatestEventType(_ context.Context, userID int64) (model.EventType, error) {
	latest := m.latestEvent(userID)
	if latest == nil {
		return "", nil
	}
	return latest.EventType, nil
}

func (m *memStore) ListEvents(ctx context.Context, filter repository.EventFilter) ([]*model.EventWithUser, error) {
	var out []*model.EventWithUser
	for _, e := range m.events {
		if filter.UserID != nil && e.UserID != *filter.UserID {
			continue
		}
		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.Timestamp.Before(*filter.To) {
			continue
		}
		user, err := m.GetUserByID(ctx, e.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, &model.EventWithUser{
			ClockEvent: *e,
			UserName:   user.Name,
			CardUID:    user.CardUID,
		})
	}

	sort.Slice(out, func(i, j int) bool { return after(&out[i].ClockEvent, &out[j].ClockEvent) })

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memStore) CurrentlyIn(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range m.users {
		if latest := m.latestEvent(u.ID); latest != nil && latest.EventType == model.EventIn {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CountEvents(_ context.Context) (int64, error) {
	return int64(len(m.events)), nil
}

func (m *memStore) CountEventsBetween(_ context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, e := range m.events {
		if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			count++
		}
	}
	return count, nil
}
