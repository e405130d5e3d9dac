package service

import (
	"context"
	"strings"
	"time"

	"proboard-backend/models"
	"proboard-backend/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// In-memory stores used across the service tests. They mimic the
// repository contract, including pgx.ErrNoRows for absent rows and the
// duplicate error for a second profile per user.

type fakeProfileStore struct {
	profiles    map[uuid.UUID]*models.Profile
	searchCalls [][2]string
	listCalls   int
	updateCalls int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*models.Profile)}
}

func cloneProfile(p *models.Profile) *models.Profile {
	c := *p
	c.Skills = append([]string(nil), p.Skills...)
	return &c
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	for _, existing := range f.profiles {
		if existing.UserID == profile.UserID {
			return repository.ErrDuplicateProfile
		}
	}
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	f.profiles[profile.ID] = cloneProfile(profile)
	return nil
}

func (f *fakeProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneProfile(profile), nil
}

func (f *fakeProfileStore) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			return cloneProfile(profile), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfileStore) Update(ctx context.Context, profile *models.Profile) error {
	f.updateCalls++
	if _, ok := f.profiles[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	profile.UpdatedAt = time.Now()
	f.profiles[profile.ID] = cloneProfile(profile)
	return nil
}

func (f *fakeProfileStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.profiles[id]; !ok {
		return false, nil
	}
	delete(f.profiles, id)
	return true, nil
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (f *fakeProfileStore) SearchPublic(ctx context.Context, query, category string) ([]*models.Profile, error) {
	f.searchCalls = append(f.searchCalls, [2]string{query, category})

	results := make([]*models.Profile, 0)
	for _, p := range f.profiles {
		if !p.IsPublic {
			continue
		}
		if query != "" {
			business := ""
			if p.BusinessName != nil {
				business = *p.BusinessName
			}
			if !contains(p.FirstName, query) && !contains(p.LastName, query) &&
				!contains(p.Role, query) && !contains(business, query) {
				continue
			}
		}
		if category != "" && !contains(p.Role, category) {
			continue
		}
		results = append(results, cloneProfile(p))
	}
	return results, nil
}

func (f *fakeProfileStore) ListPublic(ctx context.Context) ([]*models.Profile, error) {
	f.listCalls++
	results := make([]*models.Profile, 0)
	for _, p := range f.profiles {
		if p.IsPublic {
			results = append(results, cloneProfile(p))
		}
	}
	return results, nil
}

type fakeSettingsStore struct {
	settings    map[string]*models.Settings
	createCalls int
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{settings: make(map[string]*models.Settings)}
}

func (f *fakeSettingsStore) Get(ctx context.Context, userID string) (*models.Settings, error) {
	settings, ok := f.settings[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c := *settings
	return &c, nil
}

func (f *fakeSettingsStore) Create(ctx context.Context, settings *models.Settings) error {
	f.createCalls++
	settings.CreatedAt = time.Now()
	settings.UpdatedAt = settings.CreatedAt
	c := *settings
	f.settings[settings.UserID] = &c
	return nil
}

func (f *fakeSettingsStore) Update(ctx context.Context, settings *models.Settings) error {
	if _, ok := f.settings[settings.UserID]; !ok {
		return pgx.ErrNoRows
	}
	settings.UpdatedAt = time.Now()
	c := *settings
	f.settings[settings.UserID] = &c
	return nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c := *user
	return &c, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email != nil && *user.Email == email {
			c := *user
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) Upsert(ctx context.Context, user *models.User) error {
	now := time.Now()
	if existing, ok := f.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	c := *user
	f.users[user.ID] = &c
	return nil
}
