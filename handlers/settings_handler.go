package handlers

import (
	"errors"
	"log"
	"net/http"

	"proboard-backend/auth"
	"proboard-backend/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles HTTP requests for user settings
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles GET /api/settings. A user with no settings row
// gets one created with defaults rather than a 404.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	settings, err := h.settingsService.GetOrCreateSettings(c.Request.Context(), identity.ID)
	if err != nil {
		log.Printf("Error fetching settings: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettingsRequest represents the request body for a partial
// settings update. Absent fields stay unchanged.
type UpdateSettingsRequest struct {
	ProfileStyle       *string `json:"profile_style"`
	ShowInPublicSearch *bool   `json:"show_in_public_search"`
	EmailOnProfileView *bool   `json:"email_on_profile_view"`
	EmailProfileTips   *bool   `json:"email_profile_tips"`
}

// UpdateSettings handles PATCH /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid settings data", err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), service.UpdateSettingsRequest{
		UserID:             identity.ID,
		ProfileStyle:       req.ProfileStyle,
		ShowInPublicSearch: req.ShowInPublicSearch,
		EmailOnProfileView: req.EmailOnProfileView,
		EmailProfileTips:   req.EmailProfileTips,
	})
	if errors.Is(err, service.ErrInvalidProfileStyle) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("Error updating settings: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
