// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/punchdeck/punchdeck/internal/model"
	"github.com/punchdeck/punchdeck/internal/service"
)

// CreateUserRequest represents the request body for registering a user.
type CreateUserRequest struct {
	CardUID string `json:"card_uid"`
	Name    string `json:"name"`
}

// RecordEventRequest represents the request body for recording a clock event.
type RecordEventRequest struct {
	UserID    int64  `json:"user_id"`
	EventType string `json:"event_type"`
}

// ScanRequest represents a badge scan submitted by a terminal.
type ScanRequest struct {
	CardUID string `json:"card_uid"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	CardUID   string    `json:"card_uid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse represents a list of users.
type UserListResponse struct {
	Data  []UserResponse `json:"data"`
	Count int            `json:"count"`
}

// EventResponse represents a clock event joined with its user.
type EventResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	CardUID   string    `json:"card_uid,omitempty"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// EventListResponse represents a list of clock events.
type EventListResponse struct {
	Data  []EventResponse `json:"data"`
	Count int             `json:"count"`
}

// ScanResponse acknowledges an accepted badge scan.
type ScanResponse struct {
	ReceiptID string        `json:"receipt_id"`
	User      UserResponse  `json:"user"`
	Event     EventResponse `json:"event"`
}

// PresenceResponse lists the users currently clocked in.
type PresenceResponse struct {
	Data  []UserResponse `json:"data"`
	Count int            `json:"count"`
}

// StatsResponse carries aggregate counts.
type StatsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	TotalEvents    int64 `json:"total_events"`
	ClockedInCount int64 `json:"clocked_in_count"`
}

// DashboardResponse bundles the admin landing view.
type DashboardResponse struct {
	Stats        StatsResponse   `json:"stats"`
	EventsToday  int64           `json:"events_today"`
	RecentEvents []EventResponse `json:"recent_events"`
}

// FieldViolation describes a single invalid input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error  string           `json:"error"`
	Code   string           `json:"code"`
	Fields []FieldViolation `json:"fields,omitempty"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		CardUID:   user.CardUID,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserListResponse converts a slice of User models to UserListResponse.
func ToUserListResponse(users []*model.User) UserListResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return UserListResponse{Data: responses, Count: len(responses)}
}

// ToEventResponse converts a bare ClockEvent to EventResponse.
func ToEventResponse(event *model.ClockEvent) EventResponse {
	return EventResponse{
		ID:        event.ID,
		UserID:    event.UserID,
		EventType: string(event.EventType),
		Timestamp: event.Timestamp,
	}
}

// ToEventWithUserResponse converts a joined event row to EventResponse.
func ToEventWithUserResponse(event *model.EventWithUser) EventResponse {
	resp := ToEventResponse(&event.ClockEvent)
	resp.UserName = event.UserName
	resp.CardUID = event.CardUID
	return resp
}

// ToEventListResponse converts joined event rows to EventListResponse.
func ToEventListResponse(events []*model.EventWithUser) EventListResponse {
	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = ToEventWithUserResponse(event)
	}
	return EventListResponse{Data: responses, Count: len(responses)}
}

// ToScanResponse converts a scan receipt to ScanResponse.
func ToScanResponse(receipt *service.ScanReceipt) ScanResponse {
	return ScanResponse{
		ReceiptID: receipt.ReceiptID,
		User:      ToUserResponse(receipt.User),
		Event:     ToEventResponse(receipt.Event),
	}
}

// ToStatsResponse converts a Stats model to StatsResponse.
func ToStatsResponse(stats *model.Stats) StatsResponse {
	return StatsResponse{
		TotalUsers:     stats.TotalUsers,
		TotalEvents:    stats.TotalEvents,
		ClockedInCount: stats.ClockedInCount,
	}
}

// ToValidationFields converts service field errors to response violations.
func ToValidationFields(verrs service.ValidationErrors) []FieldViolation {
	fields := make([]FieldViolation, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldViolation{Field: fe.Field, Message: fe.Message}
	}
	return fields
}
