package service

import (
	"context"
	"errors"

	"proboard-backend/llm"
	"proboard-backend/models"

	"github.com/jackc/pgx/v5"
)

// GenerationService composes the profile store, the settings store and
// the text-generation adapter into the synchronous generate-ai flow.
type GenerationService struct {
	profileStore  ProfileStore
	settingsStore SettingsStore
	generator     llm.Generator
}

// GenerationServiceOption is a functional option for GenerationService
type GenerationServiceOption func(*GenerationService)

// GenerationWithProfileStore sets the profile store
func GenerationWithProfileStore(store ProfileStore) GenerationServiceOption {
	return func(s *GenerationService) {
		s.profileStore = store
	}
}

// GenerationWithSettingsStore sets the settings store
func GenerationWithSettingsStore(store SettingsStore) GenerationServiceOption {
	return func(s *GenerationService) {
		s.settingsStore = store
	}
}

// GenerationWithGenerator sets the text-generation adapter
func GenerationWithGenerator(generator llm.Generator) GenerationServiceOption {
	return func(s *GenerationService) {
		s.generator = generator
	}
}

// NewGenerationService creates a new generation service
func NewGenerationService(opts ...GenerationServiceOption) *GenerationService {
	s := &GenerationService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateProfileContentRequest represents a request to regenerate the
// caller's AI-written profile text.
type GenerateProfileContentRequest struct {
	UserID string
}

// GenerateProfileContentResult represents the result of a generation
type GenerateProfileContentResult struct {
	Profile *models.Profile
}

// GenerateProfileContent reads the caller's profile and style
// preference, invokes the model once, and writes back aboutText,
// summary and skills. A failed generation leaves the profile unchanged.
func (s *GenerationService) GenerateProfileContent(ctx context.Context, req GenerateProfileContentRequest) (*GenerateProfileContentResult, error) {
	if s.profileStore == nil {
		return nil, errors.New("profile store not set")
	}
	if s.generator == nil {
		return nil, llm.ErrNotConfigured
	}

	profile, err := s.profileStore.GetByUserID(ctx, req.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	style := llm.StyleSimple
	if s.settingsStore != nil {
		settings, err := s.settingsStore.Get(ctx, req.UserID)
		if err == nil && settings.ProfileStyle == models.StyleDetailed {
			style = llm.StyleDetailed
		}
	}

	input := llm.ProfileInput{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Role:      profile.Role,
		Skills:    profile.Skills,
	}
	if profile.BusinessName != nil {
		input.BusinessName = *profile.BusinessName
	}
	if profile.WorkArea != nil {
		input.WorkArea = *profile.WorkArea
	}
	if profile.BackgroundText != nil {
		input.BackgroundText = *profile.BackgroundText
	}

	generated, err := s.generator.GenerateProfile(ctx, input, style)
	if err != nil {
		return nil, err
	}

	profile.AboutText = &generated.AboutText
	profile.Summary = &generated.Summary
	profile.Skills = generated.Skills

	if err := s.profileStore.Update(ctx, profile); err != nil {
		return nil, err
	}

	return &GenerateProfileContentResult{Profile: profile}, nil
}
