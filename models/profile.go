package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Profile is a public-facing worker listing. Exactly one profile may
// exist per user; the profiles.user_id column carries a UNIQUE
// constraint so concurrent duplicate creates collapse to one conflict.
type Profile struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           string    `json:"role"`
	BusinessName   *string   `json:"business_name,omitempty"`
	WorkArea       *string   `json:"work_area,omitempty"`
	Skills         []string  `json:"skills"`
	BackgroundText *string   `json:"background_text,omitempty"`
	AboutText      *string   `json:"about_text,omitempty"`
	Summary        *string   `json:"summary,omitempty"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	AvatarPath     *string   `json:"-"` // storage key, not part of the API
	Initials       string    `json:"initials"`
	IsPublic       bool      `json:"is_public"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DeriveInitials builds the display fallback shown when a profile has
// no avatar: first letter of each name, upper-cased. Works on runes so
// non-ASCII names keep their first character intact.
func DeriveInitials(firstName, lastName string) string {
	var b strings.Builder
	for _, name := range []string{firstName, lastName} {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		r := []rune(trimmed)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
