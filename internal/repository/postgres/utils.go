package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// constraintName extracts the violated constraint name from a Postgres error,
// or returns an empty string for any other error.
func constraintName(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}

	return pgErr.ConstraintName
}
