package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/filex"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/entries"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Entries(db dbx.DBTX) entries.Repository
}

// Driver names registered by the blank imports in postgres.go and sqlite.go.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// ParseDSN picks the driver for dsn. "sqlite:" and "file:" select SQLite,
// anything else is handed to pgx unchanged.
func ParseDSN(dsn string) (driver, source string) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite:")
	case strings.HasPrefix(dsn, "file:"):
		return DriverSQLite, dsn
	default:
		return DriverPostgres, dsn
	}
}

// Open connects to dsn, pings it and returns the manager for its dialect.
// Migrations are not run here.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	driver, source := ParseDSN(dsn)

	var m RepositoryManager
	switch driver {
	case DriverSQLite:
		if err := ensureSQLiteDir(source); err != nil {
			return nil, nil, err
		}
		m = NewSQLiteRepositoryManager()
	default:
		m = NewPostgresRepositoryManager()
	}

	db, err := sqlOpen(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, m, nil
}

func ensureSQLiteDir(source string) error {
	path := strings.TrimPrefix(source, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if _, err := filex.EnsureDir(dir); err != nil {
		return fmt.Errorf("sqlite dir: %w", err)
	}
	return nil
}
