// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization level of a user account.
type Role string

const (
	// RoleStudent is the default role assigned on self-service registration.
	RoleStudent Role = "student"
	// RoleInstructor can author course content.
	RoleInstructor Role = "instructor"
	// RoleAdmin has access to the administrative back-office.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries; use
// [User.Public] to build a response projection.
type User struct {
	// ID is the opaque unique identifier of the user (UUIDv7 text).
	ID string

	// Email is the unique e-mail address. Optional, but at least one of
	// Email or Username must be set for the user to be able to log in.
	Email *string

	// Username is the unique user name. Optional.
	Username *string

	// PasswordHash stores the salted password hash in the form
	// "<hex key>.<hex salt>". It is never serialized.
	PasswordHash string

	FirstName   *string
	LastName    *string
	PhoneNumber *string

	// Role is one of student, instructor or admin.
	Role Role

	// IsActive is false for soft-deleted (deactivated) accounts.
	IsActive bool

	// LastLoginAt is updated on every successful login (best-effort).
	LastLoginAt *time.Time

	// ResetToken holds the pending password reset token, if any.
	// When non-nil, ResetTokenExpires is non-nil as well.
	ResetToken        *string
	ResetTokenExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public returns the projection of u that may leave the service boundary.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the JSON representation of a user returned by the API.
// The password hash and reset token are deliberately absent.
type PublicUser struct {
	ID          string     `json:"id"`
	Email       *string    `json:"email"`
	Username    *string    `json:"username"`
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	PhoneNumber *string    `json:"phoneNumber"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ProfileUpdate carries the self-service editable columns of a user row.
// A nil pointer clears the column.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// UserFilter narrows the result of an administrative user listing.
type UserFilter struct {
	Role     *Role
	IsActive *bool
	Limit    uint64
	Offset   uint64
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
