// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_SESSION_SECRET":      "0123456789abcdef0123456789abcdef",
		"APP_SESSION_COOKIE_NAME": "sid",
		"APP_SECURE_COOKIE":       "true",
		"APP_SESSION_MAX_AGE":     "12h",
		"APP_RESET_TOKEN_TTL":     "30m",
		"APP_RESET_URL_BASE":      "https://lms.example.org/reset-password",
		"APP_PASSWORD_MIN_LENGTH": "8",
		"APP_VERSION":             "1.2.3",
		"APP_LOG_LEVEL":           "info",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",
		"SERVER_ALLOWED_ORIGINS": "https://a.example.org,https://b.example.org",

		// Storage has nested prefixes: STORAGE_ + DB_ / SESSIONS_ / REDIS_
		"STORAGE_DB_DRIVER":        "sqlite",
		"STORAGE_DB_DATABASE_URI":  "lms.db",
		"STORAGE_SESSIONS_BACKEND": "redis",
		"STORAGE_REDIS_ADDR":       "localhost:6379",
		"STORAGE_REDIS_PASSWORD":   "secret",
		"STORAGE_REDIS_DB":         "2",

		"MAIL_API_URL": "https://mail.example.org/send",
		"MAIL_API_KEY": "key",
		"MAIL_FROM":    "noreply@example.org",
		"MAIL_TIMEOUT": "5s",

		"WORKERS_SESSION_SWEEP_INTERVAL": "10m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.App.SessionSecret)
	assert.Equal(t, "sid", cfg.App.SessionCookieName)
	assert.True(t, cfg.App.SecureCookie)
	assert.Equal(t, 12*time.Hour, cfg.App.SessionMaxAge)
	assert.Equal(t, 30*time.Minute, cfg.App.ResetTokenTTL)
	assert.Equal(t, "https://lms.example.org/reset-password", cfg.App.ResetURLBase)
	assert.Equal(t, 8, cfg.App.PasswordMinLength)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "info", cfg.App.LogLevel)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "lms.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "redis", cfg.Storage.Sessions.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "secret", cfg.Storage.Redis.Password)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)

	assert.Equal(t, "https://mail.example.org/send", cfg.Mail.APIURL)
	assert.Equal(t, "key", cfg.Mail.APIKey)
	assert.Equal(t, "noreply@example.org", cfg.Mail.From)
	assert.Equal(t, 5*time.Second, cfg.Mail.Timeout)

	assert.Equal(t, 10*time.Minute, cfg.Workers.SessionSweepInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"APP_SESSION_SECRET": "secret",
		"SERVER_ADDRESS":     "localhost:8080",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.App.SessionSecret)
	assert.Empty(t, cfg.App.SessionCookieName)
	assert.Zero(t, cfg.App.SessionMaxAge)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Zero(t, cfg.Server.RequestTimeout)

	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Storage.Sessions.Backend)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_OnlyStorageDB(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"STORAGE_DB_DATABASE_URI": "postgres://localhost/lms",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/lms", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Storage.DB.Driver)
	assert.Empty(t, cfg.Storage.Redis.Addr)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"APP_SESSION_MAX_AGE": "one day",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{name: "seconds", value: "45s", expected: 45 * time.Second},
		{name: "minutes", value: "15m", expected: 15 * time.Minute},
		{name: "hours", value: "24h", expected: 24 * time.Hour},
		{name: "mixed", value: "1h30m", expected: 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, map[string]string{
				"WORKERS_SESSION_SWEEP_INTERVAL": tt.value,
			})

			cfg := &StructuredConfig{}
			require.NoError(t, parseEnv(cfg))
			assert.Equal(t, tt.expected, cfg.Workers.SessionSweepInterval)
		})
	}
}

func TestParseEnv_PlatformFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		vars       map[string]string
		wantDSN    string
		wantSecret string
		wantAddr   string
	}{
		{
			name: "fallbacks fill empty fields",
			vars: map[string]string{
				"DATABASE_URL":   "postgres://platform/lms",
				"SESSION_SECRET": "platform-secret",
				"PORT":           "5000",
			},
			wantDSN:    "postgres://platform/lms",
			wantSecret: "platform-secret",
			wantAddr:   ":5000",
		},
		{
			name: "prefixed variables win",
			vars: map[string]string{
				"DATABASE_URL":            "postgres://platform/lms",
				"STORAGE_DB_DATABASE_URI": "postgres://explicit/lms",
				"SESSION_SECRET":          "platform-secret",
				"APP_SESSION_SECRET":      "explicit-secret",
				"PORT":                    "5000",
				"SERVER_ADDRESS":          "127.0.0.1:8080",
			},
			wantDSN:    "postgres://explicit/lms",
			wantSecret: "explicit-secret",
			wantAddr:   "127.0.0.1:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, tt.vars)

			cfg := &StructuredConfig{}
			require.NoError(t, parseEnv(cfg))

			assert.Equal(t, tt.wantDSN, cfg.Storage.DB.DSN)
			assert.Equal(t, tt.wantSecret, cfg.App.SessionSecret)
			assert.Equal(t, tt.wantAddr, cfg.Server.HTTPAddress)
		})
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

var knownEnvVars = []string{
	"CONFIG",
	"APP_SESSION_SECRET", "APP_SESSION_COOKIE_NAME", "APP_SECURE_COOKIE",
	"APP_SESSION_MAX_AGE", "APP_RESET_TOKEN_TTL", "APP_RESET_URL_BASE",
	"APP_PASSWORD_MIN_LENGTH", "APP_VERSION", "APP_LOG_LEVEL",
	"SERVER_ADDRESS", "SERVER_REQUEST_TIMEOUT", "SERVER_ALLOWED_ORIGINS",
	"STORAGE_DB_DRIVER", "STORAGE_DB_DATABASE_URI", "STORAGE_SESSIONS_BACKEND",
	"STORAGE_REDIS_ADDR", "STORAGE_REDIS_PASSWORD", "STORAGE_REDIS_DB",
	"MAIL_API_URL", "MAIL_API_KEY", "MAIL_FROM", "MAIL_TIMEOUT",
	"WORKERS_SESSION_SWEEP_INTERVAL",
	"DATABASE_URL", "SESSION_SECRET", "PORT",
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range knownEnvVars {
		if _, ok := os.LookupEnv(k); ok {
			// t.Setenv registers the restore; Unsetenv then removes it for the test.
			t.Setenv(k, "")
			require.NoError(t, os.Unsetenv(k))
		}
	}
}
