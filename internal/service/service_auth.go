// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/session"
	"github.com/MKhiriev/go-ministry-auth/internal/store"
	"github.com/MKhiriev/go-ministry-auth/models"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	deps Dependencies

	// minPasswordLength applies to registration and password changes.
	minPasswordLength int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(deps Dependencies, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		deps:              deps,
		minPasswordLength: cfg.PasswordMinLength,
		logger:            logger,
	}
}

// Register creates a new student account and starts a session bound to it.
//
// Returns the created user and its session or:
//   - a *ValidationError if email, username or password is missing or malformed.
//   - ErrDuplicateEmail / ErrDuplicateUsername (both match ErrDuplicateIdentity)
//     when the identity is taken. E-mail is checked first.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	req.Normalize()
	if err := a.deps.validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid registration data")
		return models.User{}, models.Session{}, err
	}

	user, err := a.deps.newAccount(ctx, req, models.RoleStudent, a.minPasswordLength)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user registration failed")
		return models.User{}, models.Session{}, err
	}

	sess, err := a.deps.Sessions.Start(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("session creation failed after registration")
		return models.User{}, models.Session{}, fmt.Errorf("session creation failed: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, sess, nil
}

// Login authenticates an existing user and starts a new session.
//
// Unknown identifiers and wrong passwords both yield ErrInvalidCredentials.
// A deactivated account whose password verifies yields
// ErrAccountDeactivated. Recording the last-login time is best-effort.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	if err := a.deps.validate(ctx, req); err != nil {
		return models.User{}, models.Session{}, err
	}

	user, err := a.resolveLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Msg("login identifier did not resolve")
			return models.User{}, models.Session{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user lookup failed")
		return models.User{}, models.Session{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !a.deps.Hasher.Verify(req.Password, user.PasswordHash) {
		log.Debug().Str("user_id", user.ID).Msg("wrong password")
		return models.User{}, models.Session{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Info().Str("user_id", user.ID).Msg("login attempt on deactivated account")
		return models.User{}, models.Session{}, ErrAccountDeactivated
	}

	sess, err := a.deps.Sessions.Start(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("session creation failed")
		return models.User{}, models.Session{}, fmt.Errorf("session creation failed: %w", err)
	}

	now := a.deps.now()
	if err = a.deps.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	} else {
		user.LastLoginAt = &now
	}

	return user, sess, nil
}

// resolveLogin looks identifier up as an e-mail and, only on a miss, as a
// username.
func (a *authService) resolveLogin(ctx context.Context, identifier string) (models.User, error) {
	user, err := a.deps.Users.FindUserByEmail(ctx, identifier)
	if err == nil || !errors.Is(err, store.ErrNoUserWasFound) {
		return user, err
	}
	return a.deps.Users.FindUserByUsername(ctx, identifier)
}

func (a *authService) Logout(ctx context.Context, sessionID string) error {
	if err := a.deps.Sessions.Destroy(ctx, sessionID); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Authenticate resolves sessionID to the principal of the request.
//
// Missing, unknown and expired sessions, as well as sessions of deleted or
// deactivated users, yield ErrUnauthenticated.
func (a *authService) Authenticate(ctx context.Context, sessionID string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	sess, err := a.deps.Sessions.Resolve(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrSessionExpired) {
			return models.Principal{}, ErrUnauthenticated
		}
		log.Err(err).Msg("session lookup failed")
		return models.Principal{}, fmt.Errorf("session lookup failed: %w", err)
	}

	user, err := a.deps.findUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info().Str("user_id", sess.UserID).Msg("session references a deleted user")
			_ = a.deps.Sessions.Destroy(ctx, sess.ID)
			return models.Principal{}, ErrUnauthenticated
		}
		return models.Principal{}, err
	}

	if !user.IsActive {
		log.Debug().Str("user_id", user.ID).Msg("session of deactivated user rejected")
		return models.Principal{}, ErrUnauthenticated
	}

	return models.Principal{User: user, SessionID: sess.ID}, nil
}

func (a *authService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	return a.deps.findUser(ctx, userID)
}

// UpdateProfile replaces the name and phone columns of the user. Omitted
// and empty values are both stored as NULL. When req.NewPassword is set,
// req.CurrentPassword must verify against the stored hash.
//
// The password is checked before anything is written and stored only after
// the profile update succeeded. The role is never touched.
func (a *authService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Normalize()
	if err := a.deps.validate(ctx, req); err != nil {
		return models.User{}, err
	}

	var newHash string
	if req.NewPassword != "" {
		hash, err := a.checkPasswordChange(ctx, userID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			log.Debug().Err(err).Str("user_id", userID).Msg("password change rejected")
			return models.User{}, err
		}
		newHash = hash
	}

	now := a.deps.now()
	user, err := a.deps.Users.UpdateProfile(ctx, userID, models.ProfileUpdate{
		FirstName:   models.StringPtr(req.FirstName),
		LastName:    models.StringPtr(req.LastName),
		PhoneNumber: models.StringPtr(req.PhoneNumber),
	}, now)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	if newHash == "" {
		return user, nil
	}

	if err = a.deps.Users.UpdatePassword(ctx, userID, newHash, now); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("user_id", userID).Msg("password update failed")
		return models.User{}, fmt.Errorf("password update failed: %w", err)
	}
	user.PasswordHash = newHash
	return user, nil
}

// checkPasswordChange verifies current and returns the hash of next.
func (a *authService) checkPasswordChange(ctx context.Context, userID, current, next string) (string, error) {
	if len(next) < a.minPasswordLength {
		return "", weakPassword("newPassword", a.minPasswordLength)
	}

	user, err := a.deps.findUser(ctx, userID)
	if err != nil {
		return "", err
	}

	if !a.deps.Hasher.Verify(current, user.PasswordHash) {
		return "", &ValidationError{
			Field:   "currentPassword",
			Message: "Current password is incorrect",
			Err:     ErrWrongCurrentPassword,
		}
	}

	hash, err := a.deps.Hasher.Hash(next)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return hash, nil
}
