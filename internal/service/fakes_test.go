// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/url"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/crypto"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/notify"
	"github.com/MKhiriev/go-ministry-auth/internal/session"
	"github.com/MKhiriev/go-ministry-auth/internal/store"
	"github.com/MKhiriev/go-ministry-auth/internal/utils"
	"github.com/MKhiriev/go-ministry-auth/internal/validators"
	"github.com/MKhiriev/go-ministry-auth/models"
)

// fakeUsers is an in-memory UserRepository with the same error contract as
// the SQL implementation.
type fakeUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]models.User)}
}

func (f *fakeUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
		if user.Username != nil && u.Username != nil && *u.Username == *user.Username {
			return models.User{}, store.ErrUsernameAlreadyExists
		}
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUsers) FindUserByID(_ context.Context, userID string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return u, nil
}

func (f *fakeUsers) find(match func(models.User) bool) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (f *fakeUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	return f.find(func(u models.User) bool { return models.StringValue(u.Email) == email })
}

func (f *fakeUsers) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	return f.find(func(u models.User) bool { return models.StringValue(u.Username) == username })
}

func (f *fakeUsers) ListUsers(_ context.Context, filter models.UserFilter) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.User
	for _, u := range f.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) update(userID string, fn func(*models.User)) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	fn(&u)
	f.users[userID] = u
	return u, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, userID string, p models.ProfileUpdate, now time.Time) (models.User, error) {
	return f.update(userID, func(u *models.User) {
		u.FirstName, u.LastName, u.PhoneNumber = p.FirstName, p.LastName, p.PhoneNumber
		u.UpdatedAt = now
	})
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID, hash string, now time.Time) error {
	_, err := f.update(userID, func(u *models.User) {
		u.PasswordHash = hash
		u.UpdatedAt = now
	})
	return err
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, userID string, at time.Time) error {
	_, err := f.update(userID, func(u *models.User) { u.LastLoginAt = &at })
	return err
}

func (f *fakeUsers) SetRole(_ context.Context, userID string, role models.Role, now time.Time) (models.User, error) {
	return f.update(userID, func(u *models.User) {
		u.Role = role
		u.UpdatedAt = now
	})
}

func (f *fakeUsers) SetActive(_ context.Context, userID string, active bool, now time.Time) (models.User, error) {
	return f.update(userID, func(u *models.User) {
		u.IsActive = active
		u.UpdatedAt = now
	})
}

func (f *fakeUsers) DeleteUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[userID]; !ok {
		return store.ErrNoUserWasFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUsers) SetResetToken(_ context.Context, userID, token string, expires, now time.Time) error {
	_, err := f.update(userID, func(u *models.User) {
		u.ResetToken = &token
		u.ResetTokenExpires = &expires
		u.UpdatedAt = now
	})
	return err
}

func (f *fakeUsers) ConsumeResetToken(_ context.Context, token, hash string, now time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, u := range f.users {
		if u.ResetToken == nil || *u.ResetToken != token || !u.ResetTokenExpires.After(now) {
			continue
		}
		u.PasswordHash = hash
		u.ResetToken, u.ResetTokenExpires = nil, nil
		u.UpdatedAt = now
		f.users[id] = u
		return id, nil
	}
	return "", store.ErrNoUserWasFound
}

func (f *fakeUsers) Ping(context.Context) error { return nil }

// recordingSender keeps every reset message it was asked to deliver.
type recordingSender struct {
	mu   sync.Mutex
	sent []notify.ResetMessage
	err  error
}

func (s *recordingSender) SendPasswordReset(_ context.Context, msg notify.ResetMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, msg)
	return s.err
}

// lastToken extracts the token from the most recent reset link.
func (s *recordingSender) lastToken(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.sent, "no reset e-mail was sent")
	u, err := url.Parse(s.sent[len(s.sent)-1].Link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testAppConfig() config.App {
	return config.App{
		SessionMaxAge:     24 * time.Hour,
		ResetTokenTTL:     time.Hour,
		ResetURLBase:      "https://lms.example.org/reset-password",
		PasswordMinLength: 6,
		Version:           "1.0.0",
	}
}

// testEnv wires real services on top of in-memory collaborators.
type testEnv struct {
	users    *fakeUsers
	sessions *session.Manager
	sender   *recordingSender
	clock    *testClock
	hasher   crypto.PasswordHasher

	auth  AuthService
	reset PasswordResetService
	admin AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens := crypto.NewTokenGenerator()
	cfg := testAppConfig()

	env := &testEnv{
		users:  newFakeUsers(),
		sender: &recordingSender{},
		clock:  clock,
		hasher: crypto.NewPasswordHasherWithMemory(64),
	}
	env.sessions = session.NewManager(store.NewMemorySessionRepository(), tokens, cfg.SessionMaxAge, logger.Nop(), session.WithClock(clock.Now))

	deps := Dependencies{
		Users:     env.users,
		Sessions:  env.sessions,
		Hasher:    env.hasher,
		Tokens:    tokens,
		Validator: validators.NewRequestValidator(),
		IDs:       utils.NewUUIDGenerator(),
		Sender:    env.sender,
		Clock:     clock.Now,
	}

	services, err := NewServices(deps, cfg, logger.Nop())
	require.NoError(t, err)

	env.auth = services.AuthService
	env.reset = services.PasswordResetService
	env.admin = services.AdminService
	return env
}

func aliceRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:     "alice@x.com",
		Username:  "alice",
		Password:  "secret1",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func (e *testEnv) register(t *testing.T, req models.RegisterRequest) models.User {
	t.Helper()
	user, _, err := e.auth.Register(context.Background(), req)
	require.NoError(t, err)
	return user
}

// seedAdmin stores an admin account directly in the directory.
func (e *testEnv) seedAdmin(t *testing.T) models.User {
	t.Helper()
	req := models.RegisterRequest{Email: "admin@x.com", Username: "admin", Password: "adminpw"}
	user := e.register(t, req)
	admin, err := e.users.SetRole(context.Background(), user.ID, models.RoleAdmin, e.clock.Now())
	require.NoError(t, err)
	return admin
}
