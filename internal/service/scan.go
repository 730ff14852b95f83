package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/punchdeck/punchdeck/internal/model"
)

// ScanReceipt is the acknowledgement returned to a badge terminal after a
// successful scan. The receipt ID identifies this scan in logs.
type ScanReceipt struct {
	ReceiptID string            `json:"receipt_id"`
	User      *model.User       `json:"user"`
	Event     *model.ClockEvent `json:"event"`
}

// ProcessScan handles one badge tap: it resolves the card to a user, derives
// the toggled direction from the user's latest event (clocked "in" becomes
// "out", everything else becomes "in"), and appends the event.
//
// When debouncing is configured, a second tap of the same card inside the
// window fails with ErrScanDebounced; readers commonly emit several reads
// for one physical tap. The card is resolved before the debounce slot is
// taken: an unknown card always reports ErrUnknownCard, however often it is
// retried, and never occupies a debounce window.
func (s *AttendanceService) ProcessScan(ctx context.Context, cardUID string) (*ScanReceipt, error) {
	cardUID = trimmed(cardUID)

	if n := utf8.RuneCountInString(cardUID); n < model.MinCardUIDLength || n > model.MaxCardUIDLength {
		return nil, ValidationErrors{{
			Field: "card_uid",
			Message: fmt.Sprintf("must be between %d and %d characters",
				model.MinCardUIDLength, model.MaxCardUIDLength),
		}}
	}

	user, err := s.GetUserByCard(ctx, cardUID)
	if err != nil {
		if errors.Is(err, ErrUnknownCard) {
			s.metrics.IncScanUnknownCard()
		}
		return nil, err
	}

	if s.debouncer != nil {
		acquired, err := s.debouncer.Acquire(ctx, cardUID, s.debounceWindow)
		if err != nil {
			// Fail open: a broken debounce store must not block clock-ins.
			acquired = true
		}
		if !acquired {
			s.metrics.IncScanDebounced()
			return nil, ErrScanDebounced
		}
	}

	last, err := s.events.LatestEventType(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest event: %w", err)
	}

	event, err := s.RecordEvent(ctx, user.ID, last.Toggle())
	if err != nil {
		return nil, err
	}

	s.metrics.IncScanAccepted()

	return &ScanReceipt{
		ReceiptID: ulid.Make().String(),
		User:      user,
		Event:     event,
	}, nil
}
