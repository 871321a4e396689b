// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"firstName" validate:"max=100"`
	LastName    string `json:"lastName" validate:"max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
}

// Normalize trims surrounding whitespace from every field except the
// password, which is kept verbatim.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

// LoginRequest is the body of POST /api/login. Login may hold either an
// e-mail address or a username.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the body of PUT /api/user/profile.
//
// Omitted and empty name/phone fields are both stored as NULL.
// NewPassword is optional; when set, CurrentPassword must match.
type UpdateProfileRequest struct {
	FirstName       string `json:"firstName" validate:"max=100"`
	LastName        string `json:"lastName" validate:"max=100"`
	PhoneNumber     string `json:"phoneNumber" validate:"omitempty,phone"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Normalize trims the name and phone fields.
func (r *UpdateProfileRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

// ForgotPasswordRequest is the body of POST /api/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest is the body of POST /api/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// AdminCreateUserRequest is the body of POST /api/admin/users.
type AdminCreateUserRequest struct {
	RegisterRequest
	Role Role `json:"role" validate:"required,user_role"`
}

// SetRoleRequest is the body of PATCH /api/admin/users/{id}/role.
type SetRoleRequest struct {
	Role Role `json:"role" validate:"required,user_role"`
}

// SetStatusRequest is the body of PATCH /api/admin/users/{id}/status.
type SetStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
