package handlers

import (
	"errors"
	"log"
	"net/http"

	"proboard-backend/auth"
	"proboard-backend/llm"
	"proboard-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileHandler handles HTTP requests for profiles
type ProfileHandler struct {
	profileService    *service.ProfileService
	generationService *service.GenerationService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, generationService *service.GenerationService) *ProfileHandler {
	return &ProfileHandler{
		profileService:    profileService,
		generationService: generationService,
	}
}

// SearchProfiles handles GET /api/profiles
func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	result, err := h.profileService.SearchProfiles(c.Request.Context(), service.SearchProfilesRequest{
		Query:    c.Query("query"),
		Category: c.Query("category"),
	})
	if err != nil {
		log.Printf("Error searching profiles: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch profiles")
		return
	}

	c.JSON(http.StatusOK, result.Profiles)
}

// GetProfile handles GET /api/profiles/:id. Non-public profiles are
// visible only to their owner; everyone else sees 404.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	result, err := h.profileService.GetProfile(c.Request.Context(), service.GetProfileRequest{ID: id})
	if errors.Is(err, service.ErrProfileNotFound) {
		respondError(c, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching profile: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	if !result.Profile.IsPublic {
		identity, _ := auth.IdentityFrom(c)
		if identity == nil || identity.ID != result.Profile.UserID {
			respondError(c, http.StatusNotFound, "Profile not found")
			return
		}
	}

	c.JSON(http.StatusOK, result.Profile)
}

// GetMyProfile handles GET /api/my-profile
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	result, err := h.profileService.GetProfileByUser(c.Request.Context(), identity.ID)
	if errors.Is(err, service.ErrProfileNotFound) {
		respondError(c, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching my profile: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, result.Profile)
}

// CreateProfileRequest represents the request body for creating a profile
type CreateProfileRequest struct {
	FirstName      string   `json:"first_name" binding:"required"`
	LastName       string   `json:"last_name" binding:"required"`
	Role           string   `json:"role" binding:"required"`
	BusinessName   *string  `json:"business_name"`
	WorkArea       *string  `json:"work_area"`
	Skills         []string `json:"skills"`
	BackgroundText *string  `json:"background_text"`
	AvatarURL      *string  `json:"avatar_url"`
	Initials       string   `json:"initials"`
	IsPublic       *bool    `json:"is_public"`
}

// CreateProfile handles POST /api/profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid profile data", err)
		return
	}

	result, err := h.profileService.CreateProfile(c.Request.Context(), service.CreateProfileRequest{
		UserID:         identity.ID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           req.Role,
		BusinessName:   req.BusinessName,
		WorkArea:       req.WorkArea,
		Skills:         req.Skills,
		BackgroundText: req.BackgroundText,
		AvatarURL:      req.AvatarURL,
		Initials:       req.Initials,
		IsPublic:       req.IsPublic,
	})
	if errors.Is(err, service.ErrProfileExists) {
		respondError(c, http.StatusBadRequest, "Profile already exists")
		return
	}
	if err != nil {
		log.Printf("Error creating profile: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	c.JSON(http.StatusCreated, result.Profile)
}

// UpdateProfileRequest represents the request body for a partial update.
// Absent fields stay unchanged.
type UpdateProfileRequest struct {
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	Role           *string  `json:"role"`
	BusinessName   *string  `json:"business_name"`
	WorkArea       *string  `json:"work_area"`
	Skills         []string `json:"skills"`
	BackgroundText *string  `json:"background_text"`
	AboutText      *string  `json:"about_text"`
	Summary        *string  `json:"summary"`
	AvatarURL      *string  `json:"avatar_url"`
	Initials       *string  `json:"initials"`
	IsPublic       *bool    `json:"is_public"`
}

// UpdateProfile handles PATCH /api/profiles/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid profile data", err)
		return
	}

	result, err := h.profileService.UpdateProfile(c.Request.Context(), service.UpdateProfileRequest{
		ID:             id,
		CallerID:       identity.ID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           req.Role,
		BusinessName:   req.BusinessName,
		WorkArea:       req.WorkArea,
		Skills:         req.Skills,
		BackgroundText: req.BackgroundText,
		AboutText:      req.AboutText,
		Summary:        req.Summary,
		AvatarURL:      req.AvatarURL,
		Initials:       req.Initials,
		IsPublic:       req.IsPublic,
	})
	if errors.Is(err, service.ErrProfileNotFound) {
		respondError(c, http.StatusNotFound, "Profile not found")
		return
	}
	if errors.Is(err, service.ErrNotProfileOwner) {
		respondError(c, http.StatusForbidden, "Forbidden")
		return
	}
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, result.Profile)
}

// DeleteProfile handles DELETE /api/profiles/:id
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	err = h.profileService.DeleteProfile(c.Request.Context(), service.DeleteProfileRequest{
		ID:       id,
		CallerID: identity.ID,
	})
	if errors.Is(err, service.ErrProfileNotFound) {
		respondError(c, http.StatusNotFound, "Profile not found")
		return
	}
	if errors.Is(err, service.ErrNotProfileOwner) {
		respondError(c, http.StatusForbidden, "Forbidden")
		return
	}
	if err != nil {
		log.Printf("Error deleting profile: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateProfile handles POST /api/profiles/generate-ai. The call is
// synchronous; a failed generation leaves the profile untouched.
func (h *ProfileHandler) GenerateProfile(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	result, err := h.generationService.GenerateProfileContent(c.Request.Context(), service.GenerateProfileContentRequest{
		UserID: identity.ID,
	})
	if errors.Is(err, service.ErrProfileNotFound) {
		respondError(c, http.StatusNotFound, "Profile not found. Create a profile first.")
		return
	}
	if errors.Is(err, llm.ErrNotConfigured) {
		respondError(c, http.StatusInternalServerError, "AI generation is not configured")
		return
	}
	if err != nil {
		log.Printf("Error generating AI profile: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to generate AI profile")
		return
	}

	c.JSON(http.StatusOK, result.Profile)
}
