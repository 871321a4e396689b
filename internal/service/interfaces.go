// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the account use cases: registration, login
// and logout, session authentication, profile self-service, the password
// reset flow and administrative user management.
//
// Services return the sentinel and typed errors declared in errors.go;
// the transport layer maps them to status codes in one place.
package service

import (
	"context"

	"github.com/MKhiriev/go-ministry-auth/models"
)

// AuthService covers the session lifecycle of a single user.
type AuthService interface {
	// Register creates a student account and starts a session for it.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Session, error)
	// Login resolves req.Login as an e-mail first and as a username only
	// if no e-mail matched, verifies the password and starts a session.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Session, error)
	// Logout destroys the session. Unknown ids are not an error.
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a session id to a principal holding the
	// freshly loaded, active user.
	Authenticate(ctx context.Context, sessionID string) (models.Principal, error)
	// CurrentUser re-fetches the user from the directory.
	CurrentUser(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error)
}

// PasswordResetService issues and consumes password reset tokens.
type PasswordResetService interface {
	// RequestReset never reports whether email belongs to an account.
	RequestReset(ctx context.Context, email string) error
	ConfirmReset(ctx context.Context, token, newPassword string) error
}

// AdminService is the back-office user management. actorID is the id of
// the admin performing the call.
type AdminService interface {
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	CreateUser(ctx context.Context, req models.AdminCreateUserRequest) (models.User, error)
	SetRole(ctx context.Context, actorID, userID string, role models.Role) (models.User, error)
	SetActive(ctx context.Context, actorID, userID string, active bool) (models.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// Ready reports whether the user directory is reachable.
	Ready(ctx context.Context) error
}

// IDGenerator produces new user identifiers.
type IDGenerator interface {
	Generate() string
}
