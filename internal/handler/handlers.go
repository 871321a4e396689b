// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/handler/http"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/metrics"
	"github.com/MKhiriev/go-ministry-auth/internal/service"
	"github.com/MKhiriev/go-ministry-auth/internal/session"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cookies *session.CookieCodec, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cookies, m, cfg, logger),
	}, nil
}
