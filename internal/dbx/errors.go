package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// UniqueViolation reports whether err is a unique-constraint violation and,
// when the driver exposes it, the name of the violated constraint.
//
// PostgreSQL errors (pgx) carry the constraint name. SQLite errors only carry
// a message of the form "UNIQUE constraint failed: table.column", so the
// "table.column" part is returned instead.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return pgErr.ConstraintName, true
		}
		return "", false
	}

	const sqlitePrefix = "UNIQUE constraint failed: "
	msg := err.Error()
	if i := strings.Index(msg, sqlitePrefix); i >= 0 {
		rest := msg[i+len(sqlitePrefix):]
		if j := strings.IndexAny(rest, " ()"); j >= 0 {
			rest = rest[:j]
		}
		return rest, true
	}
	return "", false
}
