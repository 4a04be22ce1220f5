package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivationToken is a single-use token mailed to a fresh user. Its ID is
// the value embedded in the activation link. UsedAt nil means unredeemed;
// once set it never changes.
type ActivationToken struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	UsedAt    *time.Time `json:"used_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Valid reports whether the token can still be redeemed.
func (t *ActivationToken) Valid() bool {
	return t.UsedAt == nil && time.Now().Before(t.ExpiresAt)
}
