package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories for one SQL dialect and owns the
// dialect-specific parts of the database lifecycle.
type RepositoryManager interface {
	Open(dsn string) (*sql.DB, error)
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
}

// New returns the manager for driver: "pgx" (or "postgres") and "sqlite".
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case "pgx", "postgres":
		return &PostgresRepositoryManager{}, nil
	case "sqlite":
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
