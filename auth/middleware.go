package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	identityKey      = "auth.identity"
	notConfiguredKey = "auth.notConfigured"
)

// Middleware extracts and verifies the Authorization bearer token on
// every request. Any failure (missing header, malformed prefix,
// invalid token, nil verifier) leaves the request anonymous; public
// routes proceed, protected routes are fenced by RequireAuth.
func Middleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			// No secret configured. Flagged so protected routes can
			// tell the client, instead of a generic 401.
			c.Set(notConfiguredKey, true)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		identity, err := verifier.Verify(c.Request.Context(), token)
		if err == nil && identity != nil {
			c.Set(identityKey, identity)
		}

		c.Next()
	}
}

// RequireAuth aborts with 401 when no verified identity is attached.
// When verification is disabled entirely the message says so.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			message := "Unauthorized"
			if c.GetBool(notConfiguredKey) {
				message = "Authentication is not configured"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": message,
			})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the verified identity attached to the request,
// if any.
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}
