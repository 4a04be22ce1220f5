package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated login. Token is an opaque bearer secret,
// only ever handed out at creation time.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Valid reports whether the session has not expired yet.
func (s *Session) Valid() bool {
	return time.Now().Before(s.ExpiresAt)
}
