// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ministry-auth/internal/crypto"
	"github.com/MKhiriev/go-ministry-auth/internal/notify"
	"github.com/MKhiriev/go-ministry-auth/internal/session"
	"github.com/MKhiriev/go-ministry-auth/internal/store"
	"github.com/MKhiriev/go-ministry-auth/internal/validators"
	"github.com/MKhiriev/go-ministry-auth/models"
)

// Dependencies bundles the collaborators shared by the services.
// Clock may be nil, in which case time.Now is used.
type Dependencies struct {
	Users     store.UserRepository
	Sessions  *session.Manager
	Hasher    crypto.PasswordHasher
	Tokens    crypto.TokenGenerator
	Validator validators.Validator
	IDs       IDGenerator
	Sender    notify.Sender
	Clock     func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}
	return d.Clock().UTC()
}

// validate runs the request validator and converts its field errors.
func (d Dependencies) validate(ctx context.Context, obj any) error {
	err := d.Validator.Validate(ctx, obj)
	if err == nil {
		return nil
	}

	var fe *validators.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Field: fe.Field, Message: fe.Message}
	}
	return fmt.Errorf("error validating request: %w", err)
}

// newAccount builds, hashes and stores a fresh active account. Email and
// username are checked for uniqueness in that order before the insert; a
// unique violation raised by the insert itself maps to the same errors.
// req must already be normalized and validated.
func (d Dependencies) newAccount(ctx context.Context, req models.RegisterRequest, role models.Role, minPasswordLength int) (models.User, error) {
	email, username := req.Email, req.Username

	if len(req.Password) < minPasswordLength {
		return models.User{}, weakPassword("password", minPasswordLength)
	}

	if err := d.ensureFree(ctx, d.Users.FindUserByEmail, email, ErrDuplicateEmail); err != nil {
		return models.User{}, err
	}
	if err := d.ensureFree(ctx, d.Users.FindUserByUsername, username, ErrDuplicateUsername); err != nil {
		return models.User{}, err
	}

	hash, err := d.Hasher.Hash(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	now := d.now()
	user, err := d.Users.CreateUser(ctx, models.User{
		ID:           d.IDs.Generate(),
		Email:        models.StringPtr(email),
		Username:     models.StringPtr(username),
		PasswordHash: hash,
		FirstName:    models.StringPtr(req.FirstName),
		LastName:     models.StringPtr(req.LastName),
		PhoneNumber:  models.StringPtr(req.PhoneNumber),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, ErrDuplicateEmail
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return models.User{}, ErrDuplicateUsername
	case err != nil:
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

func (d Dependencies) ensureFree(ctx context.Context, find func(context.Context, string) (models.User, error), value string, taken error) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, store.ErrNoUserWasFound):
		return nil
	default:
		return fmt.Errorf("error checking identity uniqueness: %w", err)
	}
}

// findUser loads a user by id, mapping a miss to ErrUserNotFound.
func (d Dependencies) findUser(ctx context.Context, userID string) (models.User, error) {
	user, err := d.Users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}
