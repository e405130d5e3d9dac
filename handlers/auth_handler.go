package handlers

import (
	"errors"
	"log"
	"net/http"

	"proboard-backend/auth"
	"proboard-backend/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles identity endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GetCurrentUser handles GET /api/auth/user. The local users row is
// refreshed from the verified token claims on every call.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	user, err := h.authService.SyncUser(c.Request.Context(), *identity)
	if err != nil {
		log.Printf("Error syncing user: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// LoginRequest represents the dev-issuer login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login. Only seeded development users
// can log in here; production callers bring tokens from the external
// identity provider.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid login data", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if errors.Is(err, service.ErrInvalidCredentials) {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if errors.Is(err, auth.ErrNotConfigured) {
		respondError(c, http.StatusUnauthorized, "Authentication is not configured")
		return
	}
	if err != nil {
		log.Printf("Error logging in: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}
