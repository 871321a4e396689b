// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is a server-held association between an opaque session
// identifier (delivered to the client in a cookie) and a user id.
//
// Expiry is a fixed window from creation: ExpiresAt is set once when the
// session is started and never extended.
type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"-"`
}

// IsExpiredAt reports whether the session is expired at t.
func (s Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// Principal is the resolved identity attached to a request after
// successful session authentication.
type Principal struct {
	User      User
	SessionID string
}

// UserID is a shortcut for p.User.ID.
func (p Principal) UserID() string {
	return p.User.ID
}
