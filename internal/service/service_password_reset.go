// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/notify"
	"github.com/MKhiriev/go-ministry-auth/internal/store"
	"github.com/MKhiriev/go-ministry-auth/models"
)

type passwordResetService struct {
	deps Dependencies

	tokenTTL          time.Duration
	resetURLBase      string
	minPasswordLength int

	logger *logger.Logger
}

func NewPasswordResetService(deps Dependencies, cfg config.App, logger *logger.Logger) PasswordResetService {
	return &passwordResetService{
		deps:              deps,
		tokenTTL:          cfg.ResetTokenTTL,
		resetURLBase:      cfg.ResetURLBase,
		minPasswordLength: cfg.PasswordMinLength,
		logger:            logger,
	}
}

// RequestReset issues a reset token for the account registered under email
// and mails the reset link.
//
// An unknown e-mail and a mail delivery failure both return nil so the
// caller cannot tell whether the address belongs to an account. Only
// directory failures are returned.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}

	user, err := s.deps.Users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Msg("password reset requested for unknown e-mail")
			return nil
		}
		log.Err(err).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	token, err := s.deps.Tokens.Generate()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	now := s.deps.now()
	expires := now.Add(s.tokenTTL)

	if err = s.deps.Users.SetResetToken(ctx, user.ID, token, expires, now); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("failed to store reset token")
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	msg := notify.ResetMessage{
		To:        models.StringValue(user.Email),
		Name:      models.StringValue(user.FirstName),
		Link:      s.resetLink(token),
		ExpiresAt: expires,
	}
	if err = s.deps.Sender.SendPasswordReset(ctx, msg); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to send password reset e-mail")
		return nil
	}

	log.Info().Str("user_id", user.ID).Msg("password reset link sent")
	return nil
}

// ConfirmReset sets newPassword on the account holding token, provided the
// token has not expired, and clears the token. It does not start a session.
func (s *passwordResetService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return &ValidationError{Field: "token", Message: "Token is required"}
	}
	if len(newPassword) < s.minPasswordLength {
		return weakPassword("newPassword", s.minPasswordLength)
	}

	hash, err := s.deps.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	userID, err := s.deps.Users.ConsumeResetToken(ctx, token, hash, s.deps.now())
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Msg("reset token unknown, used or expired")
			return ErrInvalidOrExpiredToken
		}
		log.Err(err).Msg("failed to consume reset token")
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

// resetLink appends the token as the "token" query parameter of the
// configured front-end URL.
func (s *passwordResetService) resetLink(token string) string {
	u, err := url.Parse(s.resetURLBase)
	if err != nil {
		return s.resetURLBase + "?token=" + url.QueryEscape(token)
	}

	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
