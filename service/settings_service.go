package service

import (
	"context"
	"errors"

	"proboard-backend/models"

	"github.com/jackc/pgx/v5"
)

// ErrInvalidProfileStyle is returned for a style outside simple|detailed.
var ErrInvalidProfileStyle = errors.New("profile style must be \"simple\" or \"detailed\"")

// SettingsService handles business logic for user settings
type SettingsService struct {
	settingsStore SettingsStore
}

// SettingsServiceOption is a functional option for SettingsService
type SettingsServiceOption func(*SettingsService)

// WithSettingsStore sets the settings store
func WithSettingsStore(store SettingsStore) SettingsServiceOption {
	return func(s *SettingsService) {
		s.settingsStore = store
	}
}

// NewSettingsService creates a new settings service
func NewSettingsService(opts ...SettingsServiceOption) *SettingsService {
	s := &SettingsService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreateSettings reads the caller's settings, creating and
// persisting the default row on first read. The store itself stays a
// plain CRUD interface with no side effects on read.
func (s *SettingsService) GetOrCreateSettings(ctx context.Context, userID string) (*models.Settings, error) {
	if s.settingsStore == nil {
		return nil, errors.New("settings store not set")
	}

	settings, err := s.settingsStore.Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	settings = models.DefaultSettings(userID)
	if err := s.settingsStore.Create(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// UpdateSettingsRequest represents a partial settings update. Nil
// pointers leave the corresponding field unchanged.
type UpdateSettingsRequest struct {
	UserID             string
	ProfileStyle       *string
	ShowInPublicSearch *bool
	EmailOnProfileView *bool
	EmailProfileTips   *bool
}

// UpdateSettings merges the supplied fields into the caller's settings,
// creating the default row first when none exists yet.
func (s *SettingsService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*models.Settings, error) {
	if req.ProfileStyle != nil {
		style := models.ProfileStyle(*req.ProfileStyle)
		if style != models.StyleSimple && style != models.StyleDetailed {
			return nil, ErrInvalidProfileStyle
		}
	}

	settings, err := s.GetOrCreateSettings(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.ProfileStyle != nil {
		settings.ProfileStyle = models.ProfileStyle(*req.ProfileStyle)
	}
	if req.ShowInPublicSearch != nil {
		settings.ShowInPublicSearch = *req.ShowInPublicSearch
	}
	if req.EmailOnProfileView != nil {
		settings.EmailOnProfileView = *req.EmailOnProfileView
	}
	if req.EmailProfileTips != nil {
		settings.EmailProfileTips = *req.EmailProfileTips
	}

	if err := s.settingsStore.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
