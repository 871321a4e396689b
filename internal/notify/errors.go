// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import "errors"

var (
	ErrNoRecipient     = errors.New("no recipient address")
	ErrMailRejected    = errors.New("mail API rejected the message")
	ErrMailUnavailable = errors.New("mail API unavailable")
)
