// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// human-readable durations.
type StructuredJSONConfig struct {
	App struct {
		SessionSecret     string   `json:"session_secret"`
		SessionCookieName string   `json:"session_cookie_name"`
		SecureCookie      bool     `json:"secure_cookie"`
		SessionMaxAge     Duration `json:"session_max_age"`
		ResetTokenTTL     Duration `json:"reset_token_ttl"`
		ResetURLBase      string   `json:"reset_url_base"`
		PasswordMinLength int      `json:"password_min_length"`
		Version           string   `json:"version"`
		LogLevel          string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Sessions struct {
			Backend string `json:"backend"`
		} `json:"sessions,omitempty"`

		Redis struct {
			Addr     string `json:"addr"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Mail struct {
		APIURL  string   `json:"api_url"`
		APIKey  string   `json:"api_key"`
		From    string   `json:"from"`
		Timeout Duration `json:"timeout"`
	} `json:"mail,omitempty"`

	Workers struct {
		SessionSweepInterval Duration `json:"session_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SessionSecret:     jsonCfg.App.SessionSecret,
			SessionCookieName: jsonCfg.App.SessionCookieName,
			SecureCookie:      jsonCfg.App.SecureCookie,
			SessionMaxAge:     time.Duration(jsonCfg.App.SessionMaxAge),
			ResetTokenTTL:     time.Duration(jsonCfg.App.ResetTokenTTL),
			ResetURLBase:      jsonCfg.App.ResetURLBase,
			PasswordMinLength: jsonCfg.App.PasswordMinLength,
			Version:           jsonCfg.App.Version,
			LogLevel:          jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Sessions: Sessions{
				Backend: jsonCfg.Storage.Sessions.Backend,
			},
			Redis: Redis{
				Addr:     jsonCfg.Storage.Redis.Addr,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Mail: Mail{
			APIURL:  jsonCfg.Mail.APIURL,
			APIKey:  jsonCfg.Mail.APIKey,
			From:    jsonCfg.Mail.From,
			Timeout: time.Duration(jsonCfg.Mail.Timeout),
		},
		Workers: Workers{
			SessionSweepInterval: time.Duration(jsonCfg.Workers.SessionSweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
