// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user accounts against the "users" table on PostgreSQL or SQLite;
// statements are built with squirrel using the placeholder format of the
// underlying [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one row laid out as [userColumns].
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var role string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&role,
		&user.IsActive,
		&user.LastLoginAt,
		&user.ResetToken,
		&user.ResetTokenExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	user.Role = models.Role(role)

	return user, err
}

// CreateUser inserts user and returns the row as stored.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - unique violation on username → [ErrUsernameAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query, args, err := buildInsertUserQuery(r.db.builder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUser(ctx, "userRepository.CreateUser", query, args)
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, "userRepository.FindUserByID", "id", userID)
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "userRepository.FindUserByEmail", "email", email)
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "userRepository.FindUserByUsername", "username", username)
}

// ListUsers returns users ordered by creation time, narrowed by filter.
// Returns an empty slice when nothing matches.
func (r *userRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder(), filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.ListUsers").
			Str("pg_code", postgresError(err)).
			Msg("failed to execute query for listing users")
		return nil, wrapQueryError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "userRepository.ListUsers").
				Msg("failed to scan user row")
			return nil, wrapQueryError(ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "userRepository.ListUsers").
			Msg("error occurred during rows iteration")
		return nil, wrapQueryError(ErrScanningRows, rowsErr)
	}

	return users, nil
}

// UpdateProfile overwrites first name, last name and phone number; nil
// values are stored as NULL.
func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate, now time.Time) (models.User, error) {
	query, args, err := buildUpdateProfileQuery(r.db.builder(), userID, update, now)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUser(ctx, "userRepository.UpdateProfile", query, args)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, now time.Time) error {
	query, args, err := buildUpdatePasswordQuery(r.db.builder(), userID, passwordHash, now)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUserUpdate(ctx, "userRepository.UpdatePassword", query, args)
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query, args, err := buildUpdateLastLoginQuery(r.db.builder(), userID, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUserUpdate(ctx, "userRepository.UpdateLastLogin", query, args)
}

func (r *userRepository) SetRole(ctx context.Context, userID string, role models.Role, now time.Time) (models.User, error) {
	query, args, err := buildUpdateUserColumnQuery(r.db.builder(), userID, "role", string(role), now)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUser(ctx, "userRepository.SetRole", query, args)
}

func (r *userRepository) SetActive(ctx context.Context, userID string, active bool, now time.Time) (models.User, error) {
	query, args, err := buildUpdateUserColumnQuery(r.db.builder(), userID, "is_active", active, now)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUser(ctx, "userRepository.SetActive", query, args)
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query, args, err := buildDeleteUserQuery(r.db.builder(), userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUserUpdate(ctx, "userRepository.DeleteUser", query, args)
}

func (r *userRepository) SetResetToken(ctx context.Context, userID, token string, expires, now time.Time) error {
	query, args, err := buildSetResetTokenQuery(r.db.builder(), userID, token, expires, now)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUserUpdate(ctx, "userRepository.SetResetToken", query, args)
}

// ConsumeResetToken returns [ErrNoUserWasFound] when no user holds token
// or the token has expired. Nothing is modified in that case.
func (r *userRepository) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildConsumeResetTokenQuery(r.db.builder(), token, passwordHash, now)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var userID string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.ConsumeResetToken").
			Str("pg_code", postgresError(err)).
			Msg("failed to consume reset token")
		return "", fmt.Errorf("unexpected DB error: %w", err)
	}

	return userID, nil
}

func (r *userRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *userRepository) findUser(ctx context.Context, fn, column, value string) (models.User, error) {
	query, args, err := buildFindUserQuery(r.db.builder(), column, value)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUser(ctx, fn, query, args)
}

// queryUser runs a statement that yields at most one user row.
func (r *userRepository) queryUser(ctx context.Context, fn, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		if dupErr := r.db.duplicateError(err); dupErr != nil {
			log.Warn().Err(err).Str("func", fn).Msg("unique constraint violated")
			return models.User{}, dupErr
		}

		log.Err(err).
			Str("func", fn).
			Str("pg_code", postgresError(err)).
			Msg("error querying user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// execUserUpdate runs a statement that must affect exactly one user row.
func (r *userRepository) execUserUpdate(ctx context.Context, fn, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("pg_code", postgresError(err)).
			Msg("failed to execute statement")
		return wrapQueryError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return wrapQueryError(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
