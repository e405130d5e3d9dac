package service

import (
	"context"
	"errors"
	"time"

	"proboard-backend/auth"
	"proboard-backend/models"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on a failed dev-issuer login.
var ErrInvalidCredentials = errors.New("invalid email or password")

const devTokenTTL = 24 * time.Hour

// AuthService syncs verified identities into the local users table and
// runs the optional local development token issuer.
type AuthService struct {
	userStore UserStore
	issuer    *auth.JWTVerifier
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// AuthWithUserStore sets the user store
func AuthWithUserStore(store UserStore) AuthServiceOption {
	return func(s *AuthService) {
		s.userStore = store
	}
}

// AuthWithIssuer sets the signing verifier used by the dev login flow
func AuthWithIssuer(issuer *auth.JWTVerifier) AuthServiceOption {
	return func(s *AuthService) {
		s.issuer = issuer
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncUser refreshes the local user row from verified token claims and
// returns it. The external issuer owns the identity; this is a mirror.
func (s *AuthService) SyncUser(ctx context.Context, identity auth.Identity) (*models.User, error) {
	if s.userStore == nil {
		return nil, errors.New("user store not set")
	}

	user := &models.User{ID: identity.ID}
	if identity.Email != "" {
		user.Email = &identity.Email
	}
	if identity.Name != "" {
		user.Name = &identity.Name
	}

	if err := s.userStore.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginRequest represents a dev-issuer login
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult represents a successful dev-issuer login
type LoginResult struct {
	Token string
	User  *models.User
}

// Login checks a seeded user's password and issues a signed token.
// Only intended for local development; production tokens come from the
// external identity provider.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if s.userStore == nil {
		return nil, errors.New("user store not set")
	}
	if s.issuer == nil {
		return nil, auth.ErrNotConfigured
	}

	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := auth.Identity{ID: user.ID}
	if user.Email != nil {
		identity.Email = *user.Email
	}
	if user.Name != nil {
		identity.Name = *user.Name
	}

	token, err := s.issuer.IssueToken(identity, devTokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}
