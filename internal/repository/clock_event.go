package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/punchdeck/punchdeck/internal/model"
)

// EventFilter defines filters for listing clock events.
type EventFilter struct {
	UserID *int64
	From   *time.Time
	To     *time.Time
	Limit  int
}

// InsertEvent appends one row to the clock event log and fills in the
// assigned ID and timestamp. The timestamp is assigned by the database at
// the moment of insertion. Returns ErrUserNotFound if the user does not exist.
func (r *Repository) InsertEvent(ctx context.Context, event *model.ClockEvent) error {
	query := `
		INSERT INTO clock_events (user_id, event_type)
		VALUES ($1, $2)
		RETURNING id, timestamp
	`

	err := r.pool.QueryRow(ctx, query, event.UserID, event.EventType).Scan(
		&event.ID,
		&event.Timestamp,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to insert clock event: %w", err)
	}

	return nil
}

// LatestEventType returns the type of the user's most recent event by
// (timestamp, id) ordering. Returns ("", nil) if the user has no events.
func (r *Repository) LatestEventType(ctx context.Context, userID int64) (model.EventType, error) {
	query := `
		SELECT event_type
		FROM clock_events
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	var eventType model.EventType
	err := r.pool.QueryRow(ctx, query, userID).Scan(&eventType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get latest event type: %w", err)
	}

	return eventType, nil
}

// ListEvents returns clock events joined with user identity, newest first.
// Timestamp ties are broken by event ID descending so the order is stable.
func (r *Repository) ListEvents(ctx context.Context, filter EventFilter) ([]*model.EventWithUser, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT c.id, c.user_id, c.event_type, c.timestamp, u.name, u.card_uid
		FROM clock_events c
		JOIN users u ON c.user_id = u.id
	`)

	var conds []string
	var args []any

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, "c.user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, "c.timestamp >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, "c.timestamp < $"+strconv.Itoa(len(args)))
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	sb.WriteString(" ORDER BY c.timestamp DESC, c.id DESC")

	args = append(args, filter.Limit)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*model.EventWithUser
	for rows.Next() {
		var ev model.EventWithUser
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.EventType, &ev.Timestamp, &ev.UserName, &ev.CardUID); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &ev)
	}

	return events, rows.Err()
}

// CurrentlyIn returns the users whose latest event is "in", ordered by user
// ID ascending. DISTINCT ON picks the single latest event per user under the
// (timestamp, id) total order; the query always runs against the live log.
func (r *Repository) CurrentlyIn(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT u.id, u.card_uid, u.name, u.created_at
		FROM users u
		JOIN (
			SELECT DISTINCT ON (user_id) user_id, event_type
			FROM clock_events
			ORDER BY user_id, timestamp DESC, id DESC
		) latest ON latest.user_id = u.id
		WHERE latest.event_type = 'in'
		ORDER BY u.id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currently in: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.CardUID, &user.Name, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// CountEvents returns the total number of clock events.
func (r *Repository) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clock_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// CountEventsBetween returns the number of events in [from, to).
func (r *Repository) CountEventsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM clock_events
		WHERE timestamp >= $1 AND timestamp < $2
	`

	var count int64
	err := r.pool.QueryRow(ctx, query, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events in range: %w", err)
	}
	return count, nil
}
