// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/models"
)

// sessionBlob is the serialized form of a session kept in the "sess"
// column (SQL) or as the key value (Redis).
type sessionBlob struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func encodeSession(s models.Session) ([]byte, error) {
	return json.Marshal(sessionBlob{
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt.UTC(),
		ExpiresAt: s.ExpiresAt.UTC(),
	})
}

func decodeSession(sessionID string, data []byte) (models.Session, error) {
	var blob sessionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrDecodingSession, err)
	}

	return models.Session{
		ID:        sessionID,
		UserID:    blob.UserID,
		CreatedAt: blob.CreatedAt,
		ExpiresAt: blob.ExpiresAt,
	}, nil
}

// sqlSessionRepository stores sessions in the "sessions" table
// (sid, sess, expire) of the same database as the users.
type sqlSessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLSessionRepository constructs a [SessionRepository] backed by db.
func NewSQLSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating sql session repository")
	return &sqlSessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sqlSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	blob, err := encodeSession(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	query, args, err := buildSaveSessionQuery(r.db.builder(), session.ID, blob, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqlSessionRepository.SaveSession").
			Str("user_id", session.UserID).
			Msg("failed to save session")
		return wrapQueryError(ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqlSessionRepository) FindSession(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindSessionQuery(r.db.builder(), sessionID)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var sid string
	var blob []byte
	var expire time.Time
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&sid, &blob, &expire)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqlSessionRepository.FindSession").
			Msg("failed to query session")
		return models.Session{}, wrapQueryError(ErrExecutingQuery, err)
	}

	session, err := decodeSession(sid, blob)
	if err != nil {
		log.Err(err).
			Str("func", "sqlSessionRepository.FindSession").
			Msg("failed to decode session blob")
		return models.Session{}, err
	}
	// the expire column is authoritative
	session.ExpiresAt = expire

	return session, nil
}

func (r *sqlSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	query, args, err := buildDeleteSessionQuery(r.db.builder(), sessionID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.exec(ctx, "sqlSessionRepository.DeleteSession", query, args)
	return err
}

func (r *sqlSessionRepository) DeleteUserSessions(ctx context.Context, userID string) (int64, error) {
	query, args, err := buildDeleteUserSessionsQuery(r.db.builder(), r.db.dialect, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "sqlSessionRepository.DeleteUserSessions", query, args)
}

func (r *sqlSessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredSessionsQuery(r.db.builder(), now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "sqlSessionRepository.DeleteExpiredSessions", query, args)
}

func (r *sqlSessionRepository) exec(ctx context.Context, fn, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute statement")
		return 0, wrapQueryError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, wrapQueryError(ErrExecutingStatement, err)
	}

	return affected, nil
}
