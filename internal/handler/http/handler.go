// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/metrics"
	"github.com/MKhiriev/go-ministry-auth/internal/service"
	"github.com/MKhiriev/go-ministry-auth/internal/session"
	"github.com/MKhiriev/go-ministry-auth/internal/utils"
)

type Handler struct {
	services *service.Services
	cookies  *session.CookieCodec
	metrics  *metrics.Metrics

	requestTimeout time.Duration
	allowedOrigins []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cookies *session.CookieCodec, metrics *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		cookies:        cookies,
		metrics:        metrics,
		requestTimeout: cfg.RequestTimeout,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         logger,
	}
}

// decodeJSON reads the request body into dst. On failure it writes a 400
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", "", http.StatusBadRequest)
		return false
	}
	return true
}
