package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is an anonymous owner of a favorites list.
type Profile struct {
	ID        uuid.UUID `json:"profile_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
