// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
)

// Storages aggregates every repository the service layer depends on,
// together with the connections that back them.
type Storages struct {
	DB                *DB
	UserRepository    UserRepository
	SessionRepository SessionRepository

	closers []io.Closer
}

// NewStorages connects to the configured database, applies migrations and
// builds the session repository selected by cfg.Sessions.Backend.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	storages := &Storages{
		DB:             db,
		UserRepository: NewUserRepository(db, log),
		closers:        []io.Closer{db},
	}

	if err = db.Migrate(ctx); err != nil {
		storages.Close()
		return nil, err
	}

	switch cfg.Sessions.Backend {
	case config.SessionBackendRedis:
		client, redisErr := NewRedisClient(ctx, cfg.Redis)
		if redisErr != nil {
			storages.Close()
			return nil, redisErr
		}
		storages.closers = append(storages.closers, client)
		storages.SessionRepository = NewRedisSessionRepository(client, log)
	case config.SessionBackendMemory:
		storages.SessionRepository = NewMemorySessionRepository()
	default:
		storages.SessionRepository = NewSQLSessionRepository(db, log)
	}

	log.Info().
		Str("driver", cfg.DB.Driver).
		Str("sessions", cfg.Sessions.Backend).
		Msg("storages initialized")

	return storages, nil
}

// Close releases every connection held by s.
func (s *Storages) Close() error {
	var errs error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("error closing storage: %w", err))
		}
	}
	return errs
}
