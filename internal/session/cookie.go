// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
)

// CookieCodec writes and reads the session cookie.
//
// The cookie value is the session id signed with HMAC-SHA256 (securecookie),
// so a client can neither forge nor alter it. The signature also carries a
// timestamp; values older than the session max age are rejected.
type CookieCodec struct {
	name    string
	codec   *securecookie.SecureCookie
	options sessions.Options
}

// NewCookieCodec builds a codec from the App settings. cfg.SessionSecret
// is used as the HMAC hash key.
func NewCookieCodec(cfg config.App) *CookieCodec {
	maxAge := int(cfg.SessionMaxAge / time.Second)

	codec := securecookie.New([]byte(cfg.SessionSecret), nil)
	codec.MaxAge(maxAge)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &CookieCodec{
		name:  cfg.SessionCookieName,
		codec: codec,
		options: sessions.Options{
			Path:     "/",
			MaxAge:   maxAge,
			Secure:   cfg.SecureCookie,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Name returns the cookie name.
func (c *CookieCodec) Name() string {
	return c.name
}

// Write sets the signed session cookie for sessionID on w.
func (c *CookieCodec) Write(w http.ResponseWriter, sessionID string) error {
	encoded, err := c.codec.Encode(c.name, sessionID)
	if err != nil {
		return fmt.Errorf("error encoding session cookie: %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(c.name, encoded, &c.options))
	return nil
}

// Read returns the session id carried by r. A missing, tampered or stale
// cookie yields ok == false.
func (c *CookieCodec) Read(r *http.Request) (sessionID string, ok bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return "", false
	}

	if err = c.codec.Decode(c.name, cookie.Value, &sessionID); err != nil {
		return "", false
	}
	return sessionID, sessionID != ""
}

// Expire instructs the browser to drop the session cookie.
func (c *CookieCodec) Expire(w http.ResponseWriter) {
	opts := c.options
	opts.MaxAge = -1
	http.SetCookie(w, sessions.NewCookie(c.name, "", &opts))
}
