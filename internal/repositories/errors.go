package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUndefinedTable is the Postgres SQLSTATE for a missing relation.
const pgUndefinedTable = "42P01"

// IsMissingTable reports whether err was caused by querying a table that
// does not exist yet, on either supported dialect.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such table")
}
