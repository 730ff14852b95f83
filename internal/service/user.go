package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/punchdeck/punchdeck/internal/model"
	"github.com/punchdeck/punchdeck/internal/repository"
)

// CreateUserInput defines input for registering a user.
type CreateUserInput struct {
	CardUID string
	Name    string
}

// validate trims both fields in place and collects every violation.
// Callers are expected to trim too, but inputs are never trusted here.
func (in *CreateUserInput) validate() ValidationErrors {
	in.CardUID = trimmed(in.CardUID)
	in.Name = trimmed(in.Name)

	var verrs ValidationErrors

	// Length is counted in characters, not bytes; card UIDs may be non-ASCII.
	if n := utf8.RuneCountInString(in.CardUID); n < model.MinCardUIDLength || n > model.MaxCardUIDLength {
		verrs = append(verrs, FieldError{
			Field: "card_uid",
			Message: fmt.Sprintf("must be between %d and %d characters",
				model.MinCardUIDLength, model.MaxCardUIDLength),
		})
	}

	if in.Name == "" {
		verrs = append(verrs, FieldError{
			Field:   "name",
			Message: "must not be empty",
		})
	}

	return verrs
}

// CreateUser registers a new user. Validation runs before any storage access
// and reports all field violations together. A duplicate card UID is reported
// as ErrCardUIDExists rather than a generic validation failure.
func (s *AttendanceService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if verrs := input.validate(); len(verrs) > 0 {
		return nil, verrs
	}

	user := &model.User{
		CardUID: input.CardUID,
		Name:    input.Name,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrCardUIDExists) {
			return nil, ErrCardUIDExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserCreated()

	return user, nil
}

// ListUsers returns all registered users ordered by name ascending.
func (s *AttendanceService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUserByCard looks up a user by badge card UID. The UID is trimmed
// before lookup, matching the trim done at registration.
func (s *AttendanceService) GetUserByCard(ctx context.Context, cardUID string) (*model.User, error) {
	cardUID = trimmed(cardUID)

	user, err := s.users.GetUserByCardUID(ctx, cardUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnknownCard
		}
		return nil, fmt.Errorf("failed to get user by card: %w", err)
	}

	return user, nil
}
