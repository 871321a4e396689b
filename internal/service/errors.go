// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateIdentity = errors.New("identity already in use")

	// ErrInvalidCredentials is returned for an unknown login identifier and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")

	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("admin access required")

	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrWeakPassword          = errors.New("password is too short")
	ErrWrongCurrentPassword  = errors.New("current password is incorrect")

	ErrUserNotFound     = errors.New("user not found")
	ErrSelfModification = errors.New("admins cannot modify their own account")

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)

// ErrDuplicateEmail and ErrDuplicateUsername are matched with [errors.Is].
// Both also match [ErrDuplicateIdentity].
var (
	ErrDuplicateEmail    = &DuplicateIdentityError{Field: "email"}
	ErrDuplicateUsername = &DuplicateIdentityError{Field: "username"}
)

// DuplicateIdentityError reports a unique identity field (email or
// username) that is already taken by another account.
type DuplicateIdentityError struct {
	Field string
}

func (e *DuplicateIdentityError) Error() string {
	switch e.Field {
	case "email":
		return "Email already exists"
	case "username":
		return "Username already exists"
	default:
		return fmt.Sprintf("%s already exists", e.Field)
	}
}

func (e *DuplicateIdentityError) Is(target error) bool {
	if target == ErrDuplicateIdentity {
		return true
	}
	t, ok := target.(*DuplicateIdentityError)
	return ok && t.Field == e.Field
}

// ValidationError is a field-level input error. It matches [ErrValidation]
// and, when set, the more specific Err.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

func weakPassword(field string, minLength int) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Password must be at least %d characters", minLength),
		Err:     ErrWeakPassword,
	}
}
