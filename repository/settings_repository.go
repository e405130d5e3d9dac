package repository

import (
	"context"

	"proboard-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository handles database operations for user settings
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the settings row for a user
func (r *SettingsRepository) Get(ctx context.Context, userID string) (*models.Settings, error) {
	settings := &models.Settings{}
	query := `
		SELECT user_id, profile_style, show_in_public_search,
			email_on_profile_view, email_profile_tips, created_at, updated_at
		FROM settings
		WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.ProfileStyle,
		&settings.ShowInPublicSearch,
		&settings.EmailOnProfileView,
		&settings.EmailProfileTips,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Create inserts a settings row
func (r *SettingsRepository) Create(ctx context.Context, settings *models.Settings) error {
	query := `
		INSERT INTO settings (
			user_id, profile_style, show_in_public_search,
			email_on_profile_view, email_profile_tips
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		settings.UserID,
		settings.ProfileStyle,
		settings.ShowInPublicSearch,
		settings.EmailOnProfileView,
		settings.EmailProfileTips,
	).Scan(&settings.CreatedAt, &settings.UpdatedAt)
}

// Update writes the full settings row and refreshes updated_at
func (r *SettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	query := `
		UPDATE settings SET
			profile_style = $2,
			show_in_public_search = $3,
			email_on_profile_view = $4,
			email_profile_tips = $5,
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		settings.UserID,
		settings.ProfileStyle,
		settings.ShowInPublicSearch,
		settings.EmailOnProfileView,
		settings.EmailProfileTips,
	).Scan(&settings.UpdatedAt)
}
