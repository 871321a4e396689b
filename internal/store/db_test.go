// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ministry-auth/internal/logger"
)

func TestDB_DuplicateError(t *testing.T) {
	db := &DB{dialect: DialectPostgres}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email constraint",
			err:  pgError(pgerrcode.UniqueViolation, "users_email_key"),
			want: ErrEmailAlreadyExists,
		},
		{
			name: "username constraint",
			err:  fmt.Errorf("wrapped: %w", pgError(pgerrcode.UniqueViolation, "users_username_key")),
			want: ErrUsernameAlreadyExists,
		},
		{
			name: "unique violation on another constraint",
			err:  pgError(pgerrcode.UniqueViolation, "sessions_pkey"),
			want: nil,
		},
		{
			name: "not a unique violation",
			err:  pgError(pgerrcode.NotNullViolation, "users_email_key"),
			want: nil,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.duplicateError(tt.err))
		})
	}
}

func TestDB_Dialect(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	pg := NewDB(conn, DialectPostgres, logger.Nop())
	assert.Equal(t, DialectPostgres, pg.Dialect())
	assert.IsType(t, &PostgresErrorClassifier{}, pg.errorClassificator)

	lite := NewDB(conn, DialectSQLite, logger.Nop())
	assert.Equal(t, DialectSQLite, lite.Dialect())
	assert.IsType(t, &SQLiteErrorClassifier{}, lite.errorClassificator)
}

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure, ""), want: Retryable},
		{name: "serialization failure", err: pgError(pgerrcode.SerializationFailure, ""), want: Retryable},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected, ""), want: Retryable},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow, ""), want: Retryable},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation, ""), want: NonRetryable},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError, ""), want: NonRetryable},
		{name: "dial error", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, want: Retryable},
		{name: "unknown", err: errors.New("boom"), want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(fmt.Errorf("wrapped: %w", sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))
}

type classifierFunc func(err error) ErrorClassification

func (f classifierFunc) Classify(err error) ErrorClassification { return f(err) }

func TestPingWithRetry(t *testing.T) {
	t.Run("retries retryable errors until success", func(t *testing.T) {
		conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer conn.Close()

		transient := &pgconn.PgError{Code: pgerrcode.CannotConnectNow}
		mock.ExpectPing().WillReturnError(transient)
		mock.ExpectPing()

		err = pingWithRetry(context.Background(), conn, NewPostgresErrorClassifier(), logger.Nop())
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer conn.Close()

		fatal := errors.New("password authentication failed")
		mock.ExpectPing().WillReturnError(fatal)

		calls := 0
		classifier := classifierFunc(func(error) ErrorClassification {
			calls++
			return NonRetryable
		})

		err = pingWithRetry(context.Background(), conn, classifier, logger.Nop())
		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})
}
