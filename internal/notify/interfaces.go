// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify delivers outbound account notifications (password reset
// links) to users.
package notify

//go:generate mockgen -source=interfaces.go -destination=../mock/notify_mock.go -package=mock

import "context"

// Sender delivers a password reset link to a user.
type Sender interface {
	SendPasswordReset(ctx context.Context, msg ResetMessage) error
}
