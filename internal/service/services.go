// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
)

type Services struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	AdminService         AdminService
	AppInfoService       AppInfoService
}

func NewServices(deps Dependencies, cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(deps.Users, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:          NewAuthService(deps, cfg, logger),
		PasswordResetService: NewPasswordResetService(deps, cfg, logger),
		AdminService:         NewAdminService(deps, cfg, logger),
		AppInfoService:       appInfo,
	}, nil
}
