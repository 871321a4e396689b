// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// minSessionSecretLength is the shortest accepted cookie signing key.
const minSessionSecretLength = 32

// applyDefaults fills zero-valued optional fields.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.SessionCookieName == "" {
		cfg.App.SessionCookieName = DefaultSessionCookieName
	}
	if cfg.App.SessionMaxAge == 0 {
		cfg.App.SessionMaxAge = DefaultSessionMaxAge
	}
	if cfg.App.ResetTokenTTL == 0 {
		cfg.App.ResetTokenTTL = DefaultResetTokenTTL
	}
	if cfg.App.PasswordMinLength == 0 {
		cfg.App.PasswordMinLength = DefaultPasswordMinLength
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverPostgres
	}
	if cfg.Storage.Sessions.Backend == "" {
		cfg.Storage.Sessions.Backend = SessionBackendSQL
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Mail.Timeout == 0 {
		cfg.Mail.Timeout = DefaultMailTimeout
	}
	if cfg.Workers.SessionSweepInterval == 0 {
		cfg.Workers.SessionSweepInterval = DefaultSessionSweepInterval
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("%w: session secret must be at least %d bytes", ErrInvalidAppConfigs, minSessionSecretLength)
	}
	if cfg.App.PasswordMinLength < 1 {
		return fmt.Errorf("%w: password min length must be positive", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Sessions.Backend {
	case SessionBackendSQL, SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: redis session backend requires an address", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown session backend %q", ErrInvalidStorageConfigs, cfg.Storage.Sessions.Backend)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs)
	}

	return nil
}
