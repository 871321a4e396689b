// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session owns the server-side session lifecycle.
//
// A [Manager] creates, resolves and destroys sessions on top of a
// store.SessionRepository. Expiry is a fixed window from creation and is
// never extended on activity. A [CookieCodec] carries the session id to the
// browser in an HMAC-signed cookie.
package session
