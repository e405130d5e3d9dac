package repository

import (
	"context"
	"errors"
	"fmt"

	"proboard-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateProfile is returned when the user_id unique constraint
// rejects a second profile for the same user.
var ErrDuplicateProfile = errors.New("profile already exists for user")

const profileColumns = `id, user_id, first_name, last_name, role, business_name,
	work_area, skills, background_text, about_text, summary,
	avatar_url, avatar_path, initials, is_public, created_at, updated_at`

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile. The unique constraint on user_id makes
// this an atomic insert-if-absent: a duplicate returns ErrDuplicateProfile.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, first_name, last_name, role, business_name,
			work_area, skills, background_text, about_text, summary,
			avatar_url, avatar_path, initials, is_public
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Role,
		profile.BusinessName,
		profile.WorkArea,
		profile.Skills,
		profile.BackgroundText,
		profile.AboutText,
		profile.Summary,
		profile.AvatarURL,
		profile.AvatarPath,
		profile.Initials,
		profile.IsPublic,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateProfile
	}

	return err
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByUserID retrieves the profile owned by a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

// Update writes the full profile row and refreshes updated_at. Partial
// merge semantics live in the service layer, which loads the row first.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			first_name = $2,
			last_name = $3,
			role = $4,
			business_name = $5,
			work_area = $6,
			skills = $7,
			background_text = $8,
			about_text = $9,
			summary = $10,
			avatar_url = $11,
			avatar_path = $12,
			initials = $13,
			is_public = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Role,
		profile.BusinessName,
		profile.WorkArea,
		profile.Skills,
		profile.BackgroundText,
		profile.AboutText,
		profile.Summary,
		profile.AvatarURL,
		profile.AvatarPath,
		profile.Initials,
		profile.IsPublic,
	).Scan(&profile.UpdatedAt)
}

// Delete removes a profile and reports whether a row existed.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SearchPublic returns public profiles matching the optional filters.
// query matches first name, last name, role or business name; category
// matches role only. Both are case-insensitive substring matches and
// combine conjunctively. Empty strings mean "no filter".
func (r *ProfileRepository) SearchPublic(ctx context.Context, query, category string) ([]*models.Profile, error) {
	sql := `SELECT ` + profileColumns + ` FROM profiles WHERE is_public = true`

	args := []interface{}{}
	argIndex := 1

	if query != "" {
		sql += fmt.Sprintf(
			" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR role ILIKE $%d OR business_name ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex,
		)
		args = append(args, "%"+query+"%")
		argIndex++
	}

	if category != "" {
		sql += fmt.Sprintf(" AND role ILIKE $%d", argIndex)
		args = append(args, "%"+category+"%")
		argIndex++
	}

	sql += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// ListPublic returns every public profile, unfiltered.
func (r *ProfileRepository) ListPublic(ctx context.Context) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE is_public = true ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *ProfileRepository) scanOne(row pgx.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Role,
		&profile.BusinessName,
		&profile.WorkArea,
		&profile.Skills,
		&profile.BackgroundText,
		&profile.AboutText,
		&profile.Summary,
		&profile.AvatarURL,
		&profile.AvatarPath,
		&profile.Initials,
		&profile.IsPublic,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	return profile, nil
}

func (r *ProfileRepository) scanAll(rows pgx.Rows) ([]*models.Profile, error) {
	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		profile, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
