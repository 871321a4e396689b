// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// configBuilder collects configuration layers in priority order. Errors of
// individual sources are accumulated so one build reports all of them.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 3),
	}
}

// layer appends the result of one source, or records its error.
func (b *configBuilder) layer(source string, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s: %w", source, err))
		return b
	}
	if cfg != nil {
		b.configs = append(b.configs, cfg)
	}
	return b
}

// build merges the layers (later non-zero fields win), then normalizes,
// defaults and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(merged, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	merged.normalize()
	merged.applyDefaults()

	return merged, merged.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	return b.layer("env", envCfg, parseEnv(envCfg))
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := ParseFlags(args)
	return b.layer("flags", flagsCfg, err)
}

// withJSON loads the file named by the last layer that set JSONFilePath.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	return b.layer("json "+jsonPath, jsonCfg, err)
}

// normalize trims values that commonly arrive with stray whitespace or
// trailing slashes from env files and shell exports.
func (cfg *StructuredConfig) normalize() {
	cfg.App.ResetURLBase = strings.TrimSpace(cfg.App.ResetURLBase)
	cfg.App.LogLevel = strings.ToLower(strings.TrimSpace(cfg.App.LogLevel))
	cfg.Storage.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.DB.Driver))
	cfg.Storage.Sessions.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Sessions.Backend))
	cfg.Mail.APIURL = strings.TrimRight(strings.TrimSpace(cfg.Mail.APIURL), "/")

	origins := cfg.Server.AllowedOrigins[:0]
	for _, o := range cfg.Server.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.Server.AllowedOrigins = origins
}
