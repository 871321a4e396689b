// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/store"
)

type appInfoService struct {
	appVersion string
	users      store.UserRepository

	logger *logger.Logger
}

func NewAppInfoService(users store.UserRepository, cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		users:      users,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) Ready(ctx context.Context) error {
	if err := s.users.Ping(ctx); err != nil {
		return fmt.Errorf("user directory unavailable: %w", err)
	}
	return nil
}
