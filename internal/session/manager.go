// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ministry-auth/internal/crypto"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/store"
	"github.com/MKhiriev/go-ministry-auth/models"
)

// Manager creates, resolves and destroys sessions.
//
// It is constructed once in main and passed explicitly to the services that
// need it. A Manager is safe for concurrent use as long as its repository is.
type Manager struct {
	repository store.SessionRepository
	tokens     crypto.TokenGenerator
	maxAge     time.Duration
	now        func() time.Time

	logger *logger.Logger
}

// Option customizes a [Manager].
type Option func(*Manager)

// WithClock replaces the wall clock used for creation and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager builds a Manager issuing sessions that live for maxAge.
func NewManager(repository store.SessionRepository, tokens crypto.TokenGenerator, maxAge time.Duration, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		repository: repository,
		tokens:     tokens,
		maxAge:     maxAge,
		now:        time.Now,
		logger:     log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MaxAge returns the fixed lifetime of sessions issued by m.
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// Start issues a new session for userID and persists it.
func (m *Manager) Start(ctx context.Context, userID string) (models.Session, error) {
	id, err := m.tokens.Generate()
	if err != nil {
		return models.Session{}, fmt.Errorf("error generating session id: %w", err)
	}

	now := m.now().UTC()
	session := models.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.maxAge),
	}

	if err = m.repository.SaveSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("error saving session: %w", err)
	}

	return session, nil
}

// Resolve returns the live session stored under sessionID.
//
// Unknown or empty ids yield [ErrNoSession]. An expired session is deleted
// and yields [ErrSessionExpired].
func (m *Manager) Resolve(ctx context.Context, sessionID string) (models.Session, error) {
	if sessionID == "" {
		return models.Session{}, ErrNoSession
	}

	session, err := m.repository.FindSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, ErrNoSession
		}
		return models.Session{}, fmt.Errorf("error loading session: %w", err)
	}

	if session.IsExpiredAt(m.now()) {
		if delErr := m.repository.DeleteSession(ctx, sessionID); delErr != nil {
			logger.FromContext(ctx).Warn().Err(delErr).Msg("failed to delete expired session")
		}
		return models.Session{}, ErrSessionExpired
	}

	return session, nil
}

// Destroy deletes the session. Empty and unknown ids are not an error.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := m.repository.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// DestroyUser deletes every session bound to userID and returns how many
// were removed.
func (m *Manager) DestroyUser(ctx context.Context, userID string) (int64, error) {
	n, err := m.repository.DeleteUserSessions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error deleting user sessions: %w", err)
	}
	return n, nil
}

// Sweep deletes every session that is expired at the current time.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	n, err := m.repository.DeleteExpiredSessions(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("error sweeping sessions: %w", err)
	}
	return n, nil
}
