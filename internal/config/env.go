// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// platformEnv holds the unprefixed variables that hosting platforms inject.
// They only fill fields left empty by the prefixed variables.
type platformEnv struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	SessionSecret string `env:"SESSION_SECRET"`
	Port          string `env:"PORT"`
}

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// DATABASE_URL, SESSION_SECRET and PORT are honored as fallbacks for
// STORAGE_DB_DATABASE_URI, APP_SESSION_SECRET and SERVER_ADDRESS.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	var platform platformEnv
	if err := env.Parse(&platform); err != nil {
		return fmt.Errorf("error getting platform env configs: %w", err)
	}

	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = platform.DatabaseURL
	}
	if cfg.App.SessionSecret == "" {
		cfg.App.SessionSecret = platform.SessionSecret
	}
	if cfg.Server.HTTPAddress == "" && platform.Port != "" {
		cfg.Server.HTTPAddress = ":" + platform.Port
	}

	return nil
}
