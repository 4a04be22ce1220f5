// Package models holds the persistent records of the identity subsystem:
// users, activation tokens, and sessions.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Password always carries the bcrypt hash;
// plaintext never reaches this struct after hashing.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Features  FeatureSet `json:"features"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
