// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
)

type logSender struct {
	logger *logger.Logger
}

// NewLogSender returns a [Sender] that writes reset links to the log
// instead of delivering them. Intended for local development.
func NewLogSender(log *logger.Logger) Sender {
	return &logSender{logger: log}
}

func (s *logSender) SendPasswordReset(_ context.Context, msg ResetMessage) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	s.logger.Info().
		Str("to", msg.To).
		Str("link", msg.Link).
		Time("expires_at", msg.ExpiresAt).
		Msg("password reset link (mail delivery disabled)")
	return nil
}

// NewSender picks the HTTP mailer when a mail API URL is configured and
// the log sender otherwise.
func NewSender(cfg config.Mail, log *logger.Logger) Sender {
	if cfg.APIURL == "" {
		log.Warn().Msg("MAIL_API_URL is not set, reset links will only be logged")
		return NewLogSender(log)
	}
	return NewHTTPMailer(cfg, log)
}
