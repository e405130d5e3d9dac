package models

import (
	"time"
)

// User mirrors an identity issued by the external auth provider.
// Rows are synced lazily from verified token claims; the optional
// password hash only exists for locally seeded development users.
type User struct {
	ID           string    `json:"id"`
	Email        *string   `json:"email,omitempty"`
	Name         *string   `json:"name,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	PasswordHash *string   `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
