package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/server/migrations"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/entries"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager backs local development setups.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, goose.DialectSQLite3, migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}
