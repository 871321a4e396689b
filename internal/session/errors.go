// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	// ErrNoSession is returned by Resolve when the id is empty or unknown.
	ErrNoSession = errors.New("no session")

	// ErrSessionExpired is returned by Resolve for a session whose fixed
	// window has elapsed. The record is deleted before returning.
	ErrSessionExpired = errors.New("session expired")
)
