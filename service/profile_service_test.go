package service

import (
	"context"
	"testing"

	"proboard-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func seedProfile(t *testing.T, store *fakeProfileStore, userID, first, last, role string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		UserID:    userID,
		FirstName: first,
		LastName:  last,
		Role:      role,
		Skills:    []string{},
		Initials:  models.DeriveInitials(first, last),
		IsPublic:  true,
	}
	require.NoError(t, store.Create(context.Background(), profile))
	return profile
}

func TestCreateProfileDefaults(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))

	result, err := svc.CreateProfile(context.Background(), CreateProfileRequest{
		UserID:    "user-1",
		FirstName: "Sara",
		LastName:  "Cohen",
		Role:      "Electrician",
	})
	require.NoError(t, err)

	profile := result.Profile
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "SC", profile.Initials)
	assert.NotNil(t, profile.Skills)
	assert.Empty(t, profile.Skills)
	assert.True(t, profile.IsPublic)
	assert.NotEqual(t, uuid.Nil, profile.ID)
}

func TestCreateProfileRespectsSuppliedFields(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))

	result, err := svc.CreateProfile(context.Background(), CreateProfileRequest{
		UserID:    "user-1",
		FirstName: "Sara",
		LastName:  "Cohen",
		Role:      "Electrician",
		Initials:  "XY",
		Skills:    []string{"wiring"},
		IsPublic:  boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "XY", result.Profile.Initials)
	assert.Equal(t, []string{"wiring"}, result.Profile.Skills)
	assert.False(t, result.Profile.IsPublic)
}

func TestCreateProfileConflict(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")

	_, err := svc.CreateProfile(context.Background(), CreateProfileRequest{
		UserID:    "user-1",
		FirstName: "Sara",
		LastName:  "Cohen",
		Role:      "Electrician",
	})
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestUpdateProfileMergesPartialFields(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seeded := seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")

	result, err := svc.UpdateProfile(context.Background(), UpdateProfileRequest{
		ID:       seeded.ID,
		CallerID: "user-1",
		Skills:   []string{"X"},
	})
	require.NoError(t, err)

	// Only skills (and updatedAt) change; everything else keeps its
	// pre-update value.
	assert.Equal(t, []string{"X"}, result.Profile.Skills)
	assert.Equal(t, "Sara", result.Profile.FirstName)
	assert.Equal(t, "Cohen", result.Profile.LastName)
	assert.Equal(t, "Electrician", result.Profile.Role)
	assert.Equal(t, "SC", result.Profile.Initials)
	assert.True(t, result.Profile.IsPublic)
}

func TestUpdateProfileRederivesInitialsOnNameChange(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seeded := seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")

	result, err := svc.UpdateProfile(context.Background(), UpdateProfileRequest{
		ID:        seeded.ID,
		CallerID:  "user-1",
		FirstName: strPtr("Marcus"),
		LastName:  strPtr("Johnson"),
	})
	require.NoError(t, err)
	assert.Equal(t, "MJ", result.Profile.Initials)
}

func TestUpdateProfileOwnership(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seeded := seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileRequest{
		ID:       seeded.ID,
		CallerID: "user-2",
		Role:     strPtr("Plumber"),
	})
	assert.ErrorIs(t, err, ErrNotProfileOwner)

	// Record is unchanged after the rejected update.
	stored, err := store.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electrician", stored.Role)
}

func TestUpdateProfileNotFound(t *testing.T) {
	svc := NewProfileService(WithProfileStore(newFakeProfileStore()))

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileRequest{
		ID:       uuid.New(),
		CallerID: "user-1",
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDeleteProfile(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seeded := seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")

	err := svc.DeleteProfile(context.Background(), DeleteProfileRequest{ID: seeded.ID, CallerID: "user-1"})
	require.NoError(t, err)

	_, err = store.GetByID(context.Background(), seeded.ID)
	assert.Error(t, err)
}

func TestDeleteProfileNotFound(t *testing.T) {
	svc := NewProfileService(WithProfileStore(newFakeProfileStore()))

	err := svc.DeleteProfile(context.Background(), DeleteProfileRequest{ID: uuid.New(), CallerID: "user-1"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDeleteProfileOwnership(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seeded := seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")

	err := svc.DeleteProfile(context.Background(), DeleteProfileRequest{ID: seeded.ID, CallerID: "user-2"})
	assert.ErrorIs(t, err, ErrNotProfileOwner)

	_, err = store.GetByID(context.Background(), seeded.ID)
	assert.NoError(t, err)
}

func TestSearchProfilesEmptyFiltersListEverything(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")
	seedProfile(t, store, "user-2", "Marcus", "Johnson", "Plumber")

	// Empty and whitespace-only filters must not filter at all.
	for _, req := range []SearchProfilesRequest{
		{},
		{Query: "", Category: ""},
		{Query: "   ", Category: " "},
	} {
		result, err := svc.SearchProfiles(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, result.Profiles, 2)
	}

	assert.Empty(t, store.searchCalls)
	assert.Equal(t, 3, store.listCalls)
}

func TestSearchProfilesSubstringMatch(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")
	seedProfile(t, store, "user-2", "Marcus", "Johnson", "Plumber")

	result, err := svc.SearchProfiles(context.Background(), SearchProfilesRequest{Query: "co"})
	require.NoError(t, err)
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, "Cohen", result.Profiles[0].LastName)

	// Category narrows on role, conjunctively with query.
	result, err = svc.SearchProfiles(context.Background(), SearchProfilesRequest{Query: "co", Category: "plumb"})
	require.NoError(t, err)
	assert.Empty(t, result.Profiles)

	result, err = svc.SearchProfiles(context.Background(), SearchProfilesRequest{Category: "plumb"})
	require.NoError(t, err)
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, "Johnson", result.Profiles[0].LastName)
}

func TestSearchProfilesExcludesPrivate(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))
	seedProfile(t, store, "user-1", "Sara", "Cohen", "Electrician")
	hidden := seedProfile(t, store, "user-2", "Marcus", "Johnson", "Plumber")
	hidden.IsPublic = false
	require.NoError(t, store.Update(context.Background(), hidden))

	result, err := svc.SearchProfiles(context.Background(), SearchProfilesRequest{})
	require.NoError(t, err)
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, "user-1", result.Profiles[0].UserID)
}

func TestRoundTripUserSuppliedFields(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(WithProfileStore(store))

	created, err := svc.CreateProfile(context.Background(), CreateProfileRequest{
		UserID:         "user-1",
		FirstName:      "Sara",
		LastName:       "Cohen",
		Role:           "Electrician",
		BusinessName:   strPtr("Cohen Electric"),
		WorkArea:       strPtr("Tel Aviv"),
		Skills:         []string{"wiring", "panels"},
		BackgroundText: strPtr("15 years of residential work"),
	})
	require.NoError(t, err)

	read, err := svc.GetProfileByUser(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, created.Profile.FirstName, read.Profile.FirstName)
	assert.Equal(t, created.Profile.LastName, read.Profile.LastName)
	assert.Equal(t, created.Profile.Role, read.Profile.Role)
	assert.Equal(t, created.Profile.BusinessName, read.Profile.BusinessName)
	assert.Equal(t, created.Profile.WorkArea, read.Profile.WorkArea)
	assert.Equal(t, created.Profile.Skills, read.Profile.Skills)
	assert.Equal(t, created.Profile.BackgroundText, read.Profile.BackgroundText)
}
