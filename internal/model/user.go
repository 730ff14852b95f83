// Package model defines domain entities for the application.
package model

import "time"

// User represents a person identified by a physical badge card.
type User struct {
	ID        int64     `json:"id"`
	CardUID   string    `json:"card_uid"` // External badge identifier, unique
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Card UID length constraints. Readers emit UIDs of varying length and
// character set (including non-ASCII), so only length is constrained.
const (
	MinCardUIDLength = 2
	MaxCardUIDLength = 64
)
