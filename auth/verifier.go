package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the subject descriptor extracted from a verified bearer
// credential.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// TokenVerifier validates a bearer token and yields the caller identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrNotConfigured = errors.New("authentication is not configured")
)

// JWTVerifier verifies HS256-signed bearer tokens. The external issuer
// and this service share the signing secret; the same keys also back
// the local development issuer.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for the given signing secret
func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, ErrNotConfigured
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

// NewVerifierFromEnv creates a verifier from AUTH_JWT_SECRET. A missing
// secret returns (nil, nil): the process starts with authenticated
// routes disabled rather than crashing.
func NewVerifierFromEnv() (TokenVerifier, error) {
	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Println("Warning: AUTH_JWT_SECRET not set, authenticated routes are disabled")
		return nil, nil
	}

	return NewJWTVerifier(secret)
}

type identityClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Verify parses and validates a token, returning the subject identity.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	claims := &identityClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

// IssueToken signs a token for an identity. Used by the development
// issuer and the seed tooling; production tokens come from the
// external identity provider.
func (v *JWTVerifier) IssueToken(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
