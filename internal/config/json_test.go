// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"session_secret": "0123456789abcdef0123456789abcdef",
			"session_cookie_name": "sid",
			"secure_cookie": true,
			"session_max_age": "12h",
			"reset_token_ttl": "30m",
			"reset_url_base": "https://lms.example.org/reset-password",
			"password_min_length": 8,
			"version": "1.2.3",
			"log_level": "info"
		},
		"server": {
			"http_address": "localhost:8080",
			"request_timeout": "30s",
			"allowed_origins": ["https://lms.example.org"]
		},
		"storage": {
			"db": { "driver": "sqlite", "dsn": "lms.db" },
			"sessions": { "backend": "redis" },
			"redis": { "addr": "localhost:6379", "password": "pw", "db": 1 }
		},
		"mail": {
			"api_url": "https://mail.example.org/send",
			"api_key": "key",
			"from": "noreply@example.org",
			"timeout": "5s"
		},
		"workers": { "session_sweep_interval": "10m" }
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

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
	assert.Equal(t, []string{"https://lms.example.org"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "lms.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "redis", cfg.Storage.Sessions.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "pw", cfg.Storage.Redis.Password)
	assert.Equal(t, 1, cfg.Storage.Redis.DB)

	assert.Equal(t, "https://mail.example.org/send", cfg.Mail.APIURL)
	assert.Equal(t, "key", cfg.Mail.APIKey)
	assert.Equal(t, "noreply@example.org", cfg.Mail.From)
	assert.Equal(t, 5*time.Second, cfg.Mail.Timeout)

	assert.Equal(t, 10*time.Minute, cfg.Workers.SessionSweepInterval)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON("definitely-does-not-exist.json")

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad_duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {"session_max_age": "forever"}}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "numeric.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"server": {"request_timeout": 1000000000}}`), 0o600))

	cfg, err := parseJSON(p)

	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.App.SessionSecret)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Zero(t, cfg.Server.RequestTimeout)
}
