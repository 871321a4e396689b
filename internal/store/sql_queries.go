// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ministry-auth/models"
)

const (
	usersTable    = "users"
	sessionsTable = "sessions"
)

// userColumns is the column order every user SELECT and RETURNING clause
// uses; scanUser depends on it.
var userColumns = []string{
	"id",
	"email",
	"username",
	"password_hash",
	"first_name",
	"last_name",
	"phone_number",
	"role",
	"is_active",
	"last_login_at",
	"reset_token",
	"reset_token_expires",
	"created_at",
	"updated_at",
}

func returningUser() string {
	return "RETURNING " + strings.Join(userColumns, ", ")
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(
			"id", "email", "username", "password_hash",
			"first_name", "last_name", "phone_number",
			"role", "is_active", "created_at", "updated_at",
		).
		Values(
			user.ID, user.Email, user.Username, user.PasswordHash,
			user.FirstName, user.LastName, user.PhoneNumber,
			string(user.Role), user.IsActive, utc(user.CreatedAt), utc(user.UpdatedAt),
		).
		Suffix(returningUser()).
		ToSql()
}

// buildFindUserQuery selects one user by an exact match on column.
func buildFindUserQuery(b sq.StatementBuilderType, column string, value any) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql()
}

func buildListUsersQuery(b sq.StatementBuilderType, filter models.UserFilter) (string, []any, error) {
	q := b.Select(userColumns...).
		From(usersTable).
		OrderBy("created_at ASC", "id ASC")

	if filter.Role != nil {
		q = q.Where(sq.Eq{"role": string(*filter.Role)})
	}
	if filter.IsActive != nil {
		q = q.Where(sq.Eq{"is_active": *filter.IsActive})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	return q.ToSql()
}

func buildUpdateProfileQuery(b sq.StatementBuilderType, userID string, update models.ProfileUpdate, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("first_name", update.FirstName).
		Set("last_name", update.LastName).
		Set("phone_number", update.PhoneNumber).
		Set("updated_at", utc(now)).
		Where(sq.Eq{"id": userID}).
		Suffix(returningUser()).
		ToSql()
}

// buildUpdateUserColumnQuery sets a single column (plus updated_at) and
// returns the updated row.
func buildUpdateUserColumnQuery(b sq.StatementBuilderType, userID, column string, value any, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set(column, value).
		Set("updated_at", utc(now)).
		Where(sq.Eq{"id": userID}).
		Suffix(returningUser()).
		ToSql()
}

func buildUpdatePasswordQuery(b sq.StatementBuilderType, userID, passwordHash string, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", utc(now)).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildUpdateLastLoginQuery(b sq.StatementBuilderType, userID string, at time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("last_login_at", utc(at)).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildSetResetTokenQuery(b sq.StatementBuilderType, userID, token string, expires, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("reset_token", token).
		Set("reset_token_expires", utc(expires)).
		Set("updated_at", utc(now)).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// buildConsumeResetTokenQuery matches only an unexpired token; the password
// hash and both reset columns change in the same statement.
func buildConsumeResetTokenQuery(b sq.StatementBuilderType, token, passwordHash string, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("password_hash", passwordHash).
		Set("reset_token", nil).
		Set("reset_token_expires", nil).
		Set("updated_at", utc(now)).
		Where(sq.Eq{"reset_token": token}).
		Where(sq.Gt{"reset_token_expires": utc(now)}).
		Suffix("RETURNING id").
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Delete(usersTable).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// ── sessions ──────────────────────────────────────────────────────────────────

// buildSaveSessionQuery upserts a session row. Both PostgreSQL and SQLite
// understand ON CONFLICT ... DO UPDATE with the excluded pseudo-table.
func buildSaveSessionQuery(b sq.StatementBuilderType, sessionID string, blob []byte, expire time.Time) (string, []any, error) {
	return b.Insert(sessionsTable).
		Columns("sid", "sess", "expire").
		Values(sessionID, string(blob), utc(expire)).
		Suffix("ON CONFLICT (sid) DO UPDATE SET sess = excluded.sess, expire = excluded.expire").
		ToSql()
}

func buildFindSessionQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Select("sid", "sess", "expire").
		From(sessionsTable).
		Where(sq.Eq{"sid": sessionID}).
		ToSql()
}

func buildDeleteSessionQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.Eq{"sid": sessionID}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.LtOrEq{"expire": utc(now)}).
		ToSql()
}

// buildDeleteUserSessionsQuery matches on the user id stored inside the
// session blob, using the JSON accessor of the dialect.
func buildDeleteUserSessionsQuery(b sq.StatementBuilderType, dialect Dialect, userID string) (string, []any, error) {
	userIDExpr := "sess::jsonb->>'user_id' = ?"
	if dialect == DialectSQLite {
		userIDExpr = "json_extract(sess, '$.user_id') = ?"
	}

	return b.Delete(sessionsTable).
		Where(sq.Expr(userIDExpr, userID)).
		ToSql()
}
