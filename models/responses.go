// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
// Field is set for field-level validation and duplicate-identity errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// UserListResponse is returned by GET /api/admin/users.
type UserListResponse struct {
	Users  []PublicUser `json:"users"`
	Length int          `json:"length"`
}
