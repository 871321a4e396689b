// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/crypto"
	"github.com/MKhiriev/go-ministry-auth/internal/handler"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/metrics"
	"github.com/MKhiriev/go-ministry-auth/internal/notify"
	"github.com/MKhiriev/go-ministry-auth/internal/server"
	"github.com/MKhiriev/go-ministry-auth/internal/service"
	"github.com/MKhiriev/go-ministry-auth/internal/session"
	"github.com/MKhiriev/go-ministry-auth/internal/store"
	"github.com/MKhiriev/go-ministry-auth/internal/utils"
	"github.com/MKhiriev/go-ministry-auth/internal/validators"
	"github.com/MKhiriev/go-ministry-auth/internal/workers"
	"github.com/MKhiriev/go-ministry-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log := logger.NewLogger("lms-auth-server", cfg.App.LogLevel)
	log.Info().
		Str("version", cfg.App.Version).
		Str("build_date", buildInfo.BuildDate()).
		Str("build_commit", buildInfo.BuildCommit()).
		Msg("starting server")
	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("session_backend", cfg.Storage.Sessions.Backend).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	tokens := crypto.NewTokenGenerator()
	sessions := session.NewManager(storages.SessionRepository, tokens, cfg.App.SessionMaxAge, log)

	services, err := service.NewServices(service.Dependencies{
		Users:     storages.UserRepository,
		Sessions:  sessions,
		Hasher:    crypto.NewPasswordHasher(),
		Tokens:    tokens,
		Validator: validators.NewRequestValidator(),
		IDs:       utils.NewUUIDGenerator(),
		Sender:    notify.NewSender(cfg.Mail, log),
	}, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	m := metrics.New(prometheus.NewRegistry())

	handlers, err := handler.NewHandlers(services, session.NewCookieCodec(cfg.App), m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers := workers.NewWorkers(sessions, m, cfg.Workers, log)

	srv, err := server.NewServer(handlers, bgWorkers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
