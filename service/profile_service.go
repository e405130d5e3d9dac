package service

import (
	"context"
	"errors"
	"strings"

	"proboard-backend/models"
	"proboard-backend/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrNotProfileOwner = errors.New("caller does not own this profile")
)

// ProfileService handles business logic for profiles
type ProfileService struct {
	profileStore ProfileStore
}

// ProfileServiceOption is a functional option for ProfileService
type ProfileServiceOption func(*ProfileService)

// WithProfileStore sets the profile store
func WithProfileStore(store ProfileStore) ProfileServiceOption {
	return func(s *ProfileService) {
		s.profileStore = store
	}
}

// NewProfileService creates a new profile service
func NewProfileService(opts ...ProfileServiceOption) *ProfileService {
	s := &ProfileService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProfileRequest represents a request to create a profile
type CreateProfileRequest struct {
	UserID         string
	FirstName      string
	LastName       string
	Role           string
	BusinessName   *string
	WorkArea       *string
	Skills         []string
	BackgroundText *string
	AvatarURL      *string
	Initials       string
	IsPublic       *bool
}

// CreateProfileResult represents the result of creating a profile
type CreateProfileResult struct {
	Profile *models.Profile
}

// CreateProfile creates the caller's profile. At most one profile may
// exist per user: a pre-check catches the common case and the store's
// unique constraint closes the check-then-create race.
func (s *ProfileService) CreateProfile(ctx context.Context, req CreateProfileRequest) (*CreateProfileResult, error) {
	if s.profileStore == nil {
		return nil, errors.New("profile store not set")
	}

	existing, err := s.profileStore.GetByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	profile := &models.Profile{
		UserID:         req.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           req.Role,
		BusinessName:   req.BusinessName,
		WorkArea:       req.WorkArea,
		Skills:         req.Skills,
		BackgroundText: req.BackgroundText,
		AvatarURL:      req.AvatarURL,
		Initials:       req.Initials,
		IsPublic:       true,
	}

	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Initials == "" {
		profile.Initials = models.DeriveInitials(profile.FirstName, profile.LastName)
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	err = s.profileStore.Create(ctx, profile)
	if errors.Is(err, repository.ErrDuplicateProfile) {
		return nil, ErrProfileExists
	}
	if err != nil {
		return nil, err
	}

	return &CreateProfileResult{Profile: profile}, nil
}

// GetProfileRequest represents a request to get a profile by ID
type GetProfileRequest struct {
	ID uuid.UUID
}

// GetProfileResult represents the result of getting a profile
type GetProfileResult struct {
	Profile *models.Profile
}

// GetProfile retrieves a profile by ID
func (s *ProfileService) GetProfile(ctx context.Context, req GetProfileRequest) (*GetProfileResult, error) {
	if s.profileStore == nil {
		return nil, errors.New("profile store not set")
	}

	profile, err := s.profileStore.GetByID(ctx, req.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &GetProfileResult{Profile: profile}, nil
}

// GetProfileByUser retrieves the profile owned by a user
func (s *ProfileService) GetProfileByUser(ctx context.Context, userID string) (*GetProfileResult, error) {
	if s.profileStore == nil {
		return nil, errors.New("profile store not set")
	}

	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &GetProfileResult{Profile: profile}, nil
}

// UpdateProfileRequest represents a partial update to a profile. Nil
// pointers leave the corresponding field unchanged.
type UpdateProfileRequest struct {
	ID       uuid.UUID
	CallerID string

	FirstName      *string
	LastName       *string
	Role           *string
	BusinessName   *string
	WorkArea       *string
	Skills         []string
	BackgroundText *string
	AboutText      *string
	Summary        *string
	AvatarURL      *string
	Initials       *string
	IsPublic       *bool
}

// UpdateProfileResult represents the result of updating a profile
type UpdateProfileResult struct {
	Profile *models.Profile
}

// UpdateProfile merges the supplied fields into the caller's profile.
// Only the owner may update; omitted fields are left untouched.
func (s *ProfileService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UpdateProfileResult, error) {
	if s.profileStore == nil {
		return nil, errors.New("profile store not set")
	}

	profile, err := s.profileStore.GetByID(ctx, req.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	if profile.UserID != req.CallerID {
		return nil, ErrNotProfileOwner
	}

	namesChanged := false
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
		namesChanged = true
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
		namesChanged = true
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.BusinessName != nil {
		profile.BusinessName = req.BusinessName
	}
	if req.WorkArea != nil {
		profile.WorkArea = req.WorkArea
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}
	if req.BackgroundText != nil {
		profile.BackgroundText = req.BackgroundText
	}
	if req.AboutText != nil {
		profile.AboutText = req.AboutText
	}
	if req.Summary != nil {
		profile.Summary = req.Summary
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.Initials != nil {
		profile.Initials = *req.Initials
	} else if namesChanged {
		profile.Initials = models.DeriveInitials(profile.FirstName, profile.LastName)
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	if err := s.profileStore.Update(ctx, profile); err != nil {
		return nil, err
	}

	return &UpdateProfileResult{Profile: profile}, nil
}

// DeleteProfileRequest represents a request to delete a profile
type DeleteProfileRequest struct {
	ID       uuid.UUID
	CallerID string
}

// DeleteProfile removes the caller's profile. Only the owner may delete.
func (s *ProfileService) DeleteProfile(ctx context.Context, req DeleteProfileRequest) error {
	if s.profileStore == nil {
		return errors.New("profile store not set")
	}

	profile, err := s.profileStore.GetByID(ctx, req.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProfileNotFound
	}
	if err != nil {
		return err
	}

	if profile.UserID != req.CallerID {
		return ErrNotProfileOwner
	}

	deleted, err := s.profileStore.Delete(ctx, req.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProfileNotFound
	}

	return nil
}

// SearchProfilesRequest represents a public directory search
type SearchProfilesRequest struct {
	Query    string
	Category string
}

// SearchProfilesResult represents the result of a directory search
type SearchProfilesResult struct {
	Profiles []*models.Profile
}

// SearchProfiles queries the public directory. Whitespace-only filters
// are treated as absent: an empty query must match everything.
func (s *ProfileService) SearchProfiles(ctx context.Context, req SearchProfilesRequest) (*SearchProfilesResult, error) {
	if s.profileStore == nil {
		return nil, errors.New("profile store not set")
	}

	query := strings.TrimSpace(req.Query)
	category := strings.TrimSpace(req.Category)

	var profiles []*models.Profile
	var err error
	if query == "" && category == "" {
		profiles, err = s.profileStore.ListPublic(ctx)
	} else {
		profiles, err = s.profileStore.SearchPublic(ctx, query, category)
	}
	if err != nil {
		return nil, err
	}

	return &SearchProfilesResult{Profiles: profiles}, nil
}

// SetAvatarRequest represents a request to attach an uploaded avatar
type SetAvatarRequest struct {
	UserID     string
	AvatarURL  string
	AvatarPath string
}

// SetAvatar records an uploaded avatar against the caller's profile.
func (s *ProfileService) SetAvatar(ctx context.Context, req SetAvatarRequest) (*UpdateProfileResult, error) {
	if s.profileStore == nil {
		return nil, errors.New("profile store not set")
	}

	profile, err := s.profileStore.GetByUserID(ctx, req.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = &req.AvatarURL
	profile.AvatarPath = &req.AvatarPath

	if err := s.profileStore.Update(ctx, profile); err != nil {
		return nil, err
	}

	return &UpdateProfileResult{Profile: profile}, nil
}
