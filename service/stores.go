package service

import (
	"context"

	"proboard-backend/models"

	"github.com/google/uuid"
)

// Store interfaces consumed by the services. The pgx repositories
// satisfy them; tests substitute in-memory fakes.

// ProfileStore persists worker profiles
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SearchPublic(ctx context.Context, query, category string) ([]*models.Profile, error)
	ListPublic(ctx context.Context) ([]*models.Profile, error)
}

// SettingsStore persists per-user settings
type SettingsStore interface {
	Get(ctx context.Context, userID string) (*models.Settings, error)
	Create(ctx context.Context, settings *models.Settings) error
	Update(ctx context.Context, settings *models.Settings) error
}

// UserStore persists the local mirror of external identities
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}
