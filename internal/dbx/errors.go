package dbx

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes that signal a rejected write.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// IsConstraintViolation reports whether err is a uniqueness, foreign-key,
// not-null or check rejection raised by PostgreSQL or SQLite.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
			return true
		}
		return false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// extended result codes keep the primary code in the low byte
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}

	return false
}

// WrapError turns a driver error into a repository error: constraint
// rejections wrap common.ErrorConstraintViolation, everything else is a
// plain "db error".
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsConstraintViolation(err) {
		return fmt.Errorf("%w: %v", common.ErrorConstraintViolation, err)
	}
	return fmt.Errorf("db error: %w", err)
}
