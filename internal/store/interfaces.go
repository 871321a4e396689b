// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ministry-auth/models"
)

// UserRepository is the User Directory: persistence of user accounts,
// credentials and pending password reset tokens.
//
// Lookups return [ErrNoUserWasFound] when nothing matches. Writes that
// collide with the unique email or username constraints return
// [ErrEmailAlreadyExists] or [ErrUsernameAlreadyExists].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)

	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate, now time.Time) (models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string, now time.Time) error
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	SetRole(ctx context.Context, userID string, role models.Role, now time.Time) (models.User, error)
	SetActive(ctx context.Context, userID string, active bool, now time.Time) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error

	// SetResetToken stores token and its expiry on the user row, replacing
	// any pending token.
	SetResetToken(ctx context.Context, userID, token string, expires, now time.Time) error
	// ConsumeResetToken atomically replaces the password hash of the user
	// holding token (with an expiry after now) and clears both reset columns.
	// It returns the id of the updated user.
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (string, error)

	Ping(ctx context.Context) error
}

// SessionRepository persists server-side sessions keyed by session id.
//
// FindSession returns [ErrSessionNotFound] for unknown ids. Expiry is not
// checked by repositories; that is the job of the session manager.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	FindSession(ctx context.Context, sessionID string) (models.Session, error)
	// DeleteSession removes the session. Unknown ids are not an error.
	DeleteSession(ctx context.Context, sessionID string) error
	// DeleteUserSessions removes every session bound to userID.
	DeleteUserSessions(ctx context.Context, userID string) (int64, error)
	// DeleteExpiredSessions removes sessions whose expiry is not after now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
