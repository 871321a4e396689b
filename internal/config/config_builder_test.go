// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{SessionSecret: testSecret},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/lms"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that an empty config fails validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_AppliesDefaults verifies that zero-valued optional fields are
// filled after merge.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DefaultSessionCookieName, cfg.App.SessionCookieName)
	assert.Equal(t, DefaultSessionMaxAge, cfg.App.SessionMaxAge)
	assert.Equal(t, DefaultResetTokenTTL, cfg.App.ResetTokenTTL)
	assert.Equal(t, DefaultPasswordMinLength, cfg.App.PasswordMinLength)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, SessionBackendSQL, cfg.Storage.Sessions.Backend)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultSessionSweepInterval, cfg.Workers.SessionSweepInterval)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones while zero fields leave them untouched.
func TestBuild_LaterSourceWins(t *testing.T) {
	first := validConfig()
	first.App.LogLevel = "debug"

	second := &StructuredConfig{
		Server: Server{HTTPAddress: "0.0.0.0:9000", RequestTimeout: time.Minute},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, testSecret, cfg.App.SessionSecret)
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "short session secret",
			mutate:  func(cfg *StructuredConfig) { cfg.App.SessionSecret = "short" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown session backend",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Sessions.Backend = "files" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "redis backend without address",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Sessions.Backend = SessionBackendRedis },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty http address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name: "redis backend with address",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Sessions.Backend = SessionBackendRedis
				cfg.Storage.Redis.Addr = "localhost:6379"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuild_Normalizes(t *testing.T) {
	cfg := validConfig()
	cfg.App.LogLevel = " INFO "
	cfg.App.ResetURLBase = " https://lms.example.org/reset-password\n"
	cfg.Storage.DB.Driver = "SQLite"
	cfg.Mail.APIURL = "https://mail.example.org/"
	cfg.Server.AllowedOrigins = []string{" https://lms.example.org/", "", "https://admin.example.org"}

	b := newConfigBuilder()
	b.configs = append(b.configs, cfg)

	got, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "info", got.App.LogLevel)
	assert.Equal(t, "https://lms.example.org/reset-password", got.App.ResetURLBase)
	assert.Equal(t, DriverSQLite, got.Storage.DB.Driver)
	assert.Equal(t, "https://mail.example.org", got.Mail.APIURL)
	assert.Equal(t, []string{"https://lms.example.org", "https://admin.example.org"}, got.Server.AllowedOrigins)
}

// TestBuild_CollectsAllSourceErrors verifies that failures of several
// sources are reported together.
func TestBuild_CollectsAllSourceErrors(t *testing.T) {
	b := newConfigBuilder().
		layer("flags", nil, assert.AnError).
		layer("json", nil, ErrInvalidServerConfigs)

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
	assert.Contains(t, err.Error(), "flags")
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_AppendsOneConfig(t *testing.T) {
	clearEnvVars(t)
	b := newConfigBuilder().withEnv()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SERVER_ADDRESS": "localhost:7070",
	})

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "localhost:7070", b.configs[0].Server.HTTPAddress)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_SESSION_MAX_AGE": "nope",
	})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-a", "localhost:8081"})
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "localhost:8081", b.configs[0].Server.HTTPAddress)
}

func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-a", "bad"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"http_address": "localhost:9999"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})

	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "localhost:9999", b.configs[1].Server.HTTPAddress)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})

	b.withJSON()

	assert.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"http_address": "localhost:1111"},
	})
	second := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"http_address": "localhost:2222"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
	)

	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "localhost:2222", b.configs[2].Server.HTTPAddress)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_JSONOverridesEnv(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"http_address": "localhost:9090"},
	})
	setEnvVars(t, map[string]string{
		"APP_SESSION_SECRET":      testSecret,
		"STORAGE_DB_DATABASE_URI": "postgres://localhost/lms",
		"SERVER_ADDRESS":          "localhost:8080",
		"CONFIG":                  path,
	})

	cfg, err := GetStructuredConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://localhost/lms", cfg.Storage.DB.DSN)
}
