package service

import (
	"context"
	"testing"

	"proboard-backend/auth"
	"proboard-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedDevUser(t *testing.T, store *fakeUserStore, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	user := &models.User{
		ID:           "dev-user-1",
		Email:        &email,
		PasswordHash: &hashStr,
	}
	require.NoError(t, store.Upsert(context.Background(), user))
	return user
}

func TestSyncUserUpsertsFromClaims(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(AuthWithUserStore(store))

	user, err := svc.SyncUser(context.Background(), auth.Identity{
		ID:    "sub-1",
		Email: "sara@example.com",
		Name:  "Sara Cohen",
	})
	require.NoError(t, err)

	assert.Equal(t, "sub-1", user.ID)
	require.NotNil(t, user.Email)
	assert.Equal(t, "sara@example.com", *user.Email)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Sara Cohen", *user.Name)

	stored, err := store.GetByID(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestLoginIssuesToken(t *testing.T) {
	store := newFakeUserStore()
	issuer, err := auth.NewJWTVerifier("test-secret")
	require.NoError(t, err)
	svc := NewAuthService(AuthWithUserStore(store), AuthWithIssuer(issuer))
	seedDevUser(t, store, "dev@example.com", "password123")

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dev@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	// The issued token verifies back to the same subject.
	identity, err := issuer.Verify(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, "dev-user-1", identity.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	issuer, err := auth.NewJWTVerifier("test-secret")
	require.NoError(t, err)
	svc := NewAuthService(AuthWithUserStore(store), AuthWithIssuer(issuer))
	seedDevUser(t, store, "dev@example.com", "password123")

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "dev@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	store := newFakeUserStore()
	issuer, err := auth.NewJWTVerifier("test-secret")
	require.NoError(t, err)
	svc := NewAuthService(AuthWithUserStore(store), AuthWithIssuer(issuer))

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithoutIssuer(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(AuthWithUserStore(store))
	seedDevUser(t, store, "dev@example.com", "password123")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dev@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrNotConfigured)
}

func TestLoginExternalUserHasNoPassword(t *testing.T) {
	store := newFakeUserStore()
	issuer, err := auth.NewJWTVerifier("test-secret")
	require.NoError(t, err)
	svc := NewAuthService(AuthWithUserStore(store), AuthWithIssuer(issuer))

	email := "external@example.com"
	require.NoError(t, store.Upsert(context.Background(), &models.User{ID: "sub-2", Email: &email}))

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    email,
		Password: "anything",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
