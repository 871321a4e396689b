// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/store"
	"github.com/MKhiriev/go-ministry-auth/models"
)

// Page size bounds of ListUsers.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type adminService struct {
	deps Dependencies

	minPasswordLength int

	logger *logger.Logger
}

func NewAdminService(deps Dependencies, cfg config.App, logger *logger.Logger) AdminService {
	return &adminService{
		deps:              deps,
		minPasswordLength: cfg.PasswordMinLength,
		logger:            logger,
	}
}

// ListUsers returns users ordered by creation time. A zero limit becomes
// DefaultListLimit; larger limits are capped at MaxListLimit.
func (s *adminService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, &ValidationError{Field: "role", Message: "Role must be one of student, instructor, admin"}
	}

	switch {
	case filter.Limit == 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}

	users, err := s.deps.Users.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// CreateUser creates an active account with an explicit role. No session is
// started.
func (s *adminService) CreateUser(ctx context.Context, req models.AdminCreateUserRequest) (models.User, error) {
	req.Normalize()
	if err := s.deps.validate(ctx, req); err != nil {
		return models.User{}, err
	}

	user, err := s.deps.newAccount(ctx, req.RegisterRequest, req.Role, s.minPasswordLength)
	if err != nil {
		return models.User{}, err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user created by admin")
	return user, nil
}

// SetRole changes the role of userID. The change is visible on the user's
// very next request since sessions only carry the user id.
func (s *adminService) SetRole(ctx context.Context, actorID, userID string, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, &ValidationError{Field: "role", Message: "Role must be one of student, instructor, admin"}
	}
	if actorID == userID {
		return models.User{}, ErrSelfModification
	}

	user, err := s.deps.Users.SetRole(ctx, userID, role, s.deps.now())
	if err != nil {
		return models.User{}, s.mapWriteError(err, "role change failed")
	}

	logger.FromContext(ctx).Info().
		Str("actor_id", actorID).
		Str("user_id", userID).
		Str("role", string(role)).
		Msg("user role changed")
	return user, nil
}

// SetActive activates or deactivates userID. Sessions of a deactivated
// user are rejected by Authenticate.
func (s *adminService) SetActive(ctx context.Context, actorID, userID string, active bool) (models.User, error) {
	if actorID == userID {
		return models.User{}, ErrSelfModification
	}

	user, err := s.deps.Users.SetActive(ctx, userID, active, s.deps.now())
	if err != nil {
		return models.User{}, s.mapWriteError(err, "status change failed")
	}

	logger.FromContext(ctx).Info().
		Str("actor_id", actorID).
		Str("user_id", userID).
		Bool("is_active", active).
		Msg("user status changed")
	return user, nil
}

// DeleteUser hard-deletes userID and destroys its sessions.
func (s *adminService) DeleteUser(ctx context.Context, actorID, userID string) error {
	log := logger.FromContext(ctx)

	if actorID == userID {
		return ErrSelfModification
	}

	if err := s.deps.Users.DeleteUser(ctx, userID); err != nil {
		return s.mapWriteError(err, "user deletion failed")
	}

	n, err := s.deps.Sessions.DestroyUser(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to destroy sessions of deleted user")
	}

	log.Info().
		Str("actor_id", actorID).
		Str("user_id", userID).
		Int64("sessions", n).
		Msg("user deleted")
	return nil
}

func (s *adminService) mapWriteError(err error, msg string) error {
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
