// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/migrations"
)

// Dialect names the SQL flavour spoken by a [DB].
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const (
	connectMaxRetries = 5
	connectRetryBase  = 500 * time.Millisecond
)

// DB wraps *sql.DB with the dialect-specific pieces repositories need:
// placeholder format, error classification and migrations.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an already opened connection. It is used by tests and by
// callers that manage the *sql.DB themselves.
func NewDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	switch dialect {
	case DialectSQLite:
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// Dialect reports the SQL flavour of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded goose migrations for the db dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, string(db.dialect))
}

// builder returns a squirrel statement builder with the placeholder format
// of the db dialect.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectSQLite {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// duplicateError translates a unique-constraint violation into
// [ErrEmailAlreadyExists] or [ErrUsernameAlreadyExists]. It returns nil when
// err is not a unique violation on one of those columns.
func (db *DB) duplicateError(err error) error {
	var subject string

	var pgErr *pgconn.PgError
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation:
		subject = pgErr.ConstraintName + " " + pgErr.Detail
	case errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		subject = liteErr.Error()
	default:
		return nil
	}

	switch {
	case strings.Contains(subject, "email"):
		return ErrEmailAlreadyExists
	case strings.Contains(subject, "username"):
		return ErrUsernameAlreadyExists
	}

	return nil
}

// pingWithRetry pings conn until it answers, the error is classified as
// non-retryable, or the retry budget is spent.
func pingWithRetry(ctx context.Context, conn *sql.DB, classifier ErrorClassificator, log *logger.Logger) error {
	backoff := retry.WithMaxRetries(connectMaxRetries, retry.NewFibonacci(connectRetryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := conn.PingContext(ctx)
		if err == nil {
			return nil
		}

		if classifier.Classify(err) == Retryable {
			log.Warn().Err(err).Str("func", "pingWithRetry").Msg("database is not ready, retrying")
			return retry.RetryableError(err)
		}

		return err
	})
}

// utc normalises t so that SQLite text timestamps compare correctly.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func wrapQueryError(kind error, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}
