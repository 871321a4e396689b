// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/utils"
)

// mailSendPath is the send endpoint relative to the configured API URL.
const mailSendPath = "/v3/mail/send"

// mailRequest is the JSON body accepted by the mail API.
type mailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type httpMailer struct {
	client *utils.HTTPClient
	apiKey string
	from   string

	logger *logger.Logger
}

// NewHTTPMailer returns a [Sender] that posts messages to an HTTP mail API
// authenticated with a bearer API key.
func NewHTTPMailer(cfg config.Mail, log *logger.Logger) Sender {
	return &httpMailer{
		client: utils.NewHTTPClient(strings.TrimRight(cfg.APIURL, "/"), cfg.Timeout),
		apiKey: cfg.APIKey,
		from:   cfg.From,
		logger: log,
	}
}

func (m *httpMailer) SendPasswordReset(ctx context.Context, msg ResetMessage) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	text, err := msg.Render()
	if err != nil {
		return err
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(m.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(mailRequest{
			From:    m.from,
			To:      msg.To,
			Subject: resetSubject,
			Text:    text,
		}).
		Post(mailSendPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMailUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().Int("status", resp.StatusCode()).Msg("reset e-mail accepted")
	return nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrMailUnavailable, resp.StatusCode(), body)
	}
	return fmt.Errorf("%w: http %d: %s", ErrMailRejected, resp.StatusCode(), body)
}
