package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"proboard-backend/auth"
	"proboard-backend/service"
	"proboard-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Uploads beyond this size are rejected before touching storage.
const maxAvatarSize = 5 << 20 // 5 MB

// AvatarHandler handles avatar upload and serving
type AvatarHandler struct {
	profileService *service.ProfileService
	avatarStorage  storage.Storage
}

// NewAvatarHandler creates a new avatar handler
func NewAvatarHandler(profileService *service.ProfileService, avatarStorage storage.Storage) *AvatarHandler {
	return &AvatarHandler{
		profileService: profileService,
		avatarStorage:  avatarStorage,
	}
}

// UploadAvatar handles POST /api/my-profile/avatar. Expects a
// multipart form with an "avatar" image file; the stored image is
// keyed by profile id, so re-uploads replace the previous one.
func (h *AvatarHandler) UploadAvatar(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	result, err := h.profileService.GetProfileByUser(c.Request.Context(), identity.ID)
	if errors.Is(err, service.ErrProfileNotFound) {
		respondError(c, http.StatusNotFound, "Profile not found. Create a profile first.")
		return
	}
	if err != nil {
		log.Printf("Error loading profile for avatar upload: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}
	profile := result.Profile

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Missing avatar file")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		respondError(c, http.StatusBadRequest, "Avatar file too large (max 5MB)")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded avatar: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}
	defer file.Close()

	storagePath, err := h.avatarStorage.Save(c.Request.Context(), profile.ID, fileHeader.Filename, file)
	if errors.Is(err, storage.ErrUnsupportedImage) {
		respondError(c, http.StatusBadRequest, "Unsupported image format")
		return
	}
	if err != nil {
		log.Printf("Error storing avatar: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	updated, err := h.profileService.SetAvatar(c.Request.Context(), service.SetAvatarRequest{
		UserID:     identity.ID,
		AvatarURL:  "/api/avatars/" + profile.ID.String(),
		AvatarPath: storagePath,
	})
	if err != nil {
		log.Printf("Error saving avatar path: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	c.JSON(http.StatusOK, updated.Profile)
}

// GetAvatar handles GET /api/avatars/:id and streams the stored image.
// Avatars follow profile visibility: a non-public profile's avatar is
// served only to its owner.
func (h *AvatarHandler) GetAvatar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	result, err := h.profileService.GetProfile(c.Request.Context(), service.GetProfileRequest{ID: id})
	if errors.Is(err, service.ErrProfileNotFound) {
		respondError(c, http.StatusNotFound, "Avatar not found")
		return
	}
	if err != nil {
		log.Printf("Error loading profile for avatar: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch avatar")
		return
	}
	profile := result.Profile

	if !profile.IsPublic {
		identity, _ := auth.IdentityFrom(c)
		if identity == nil || identity.ID != profile.UserID {
			respondError(c, http.StatusNotFound, "Avatar not found")
			return
		}
	}

	if profile.AvatarPath == nil {
		respondError(c, http.StatusNotFound, "Avatar not found")
		return
	}

	reader, err := h.avatarStorage.Open(c.Request.Context(), *profile.AvatarPath)
	if err != nil {
		log.Printf("Error opening avatar %s: %v", *profile.AvatarPath, err)
		respondError(c, http.StatusNotFound, "Avatar not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Type", storage.ContentTypeFor(*profile.AvatarPath))
	if _, err := io.Copy(c.Writer, reader); err != nil {
		log.Printf("Error streaming avatar: %v", err)
	}
}
