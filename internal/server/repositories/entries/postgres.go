package entries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the entries of q.DiaryID in the requested order.
func (r *PostgresRepository) List(ctx context.Context, q models.EntryQuery) ([]models.Entry, error) {
	query, args := buildListQuery(q, dollar)
	return selectEntries(ctx, r.db, query, args...)
}

// Insert stores a new entry. ID and CreatedAt must already be set.
func (r *PostgresRepository) Insert(ctx context.Context, entry *models.Entry) error {
	_, err := r.db.ExecContext(ctx, buildInsertQuery(dollar), insertArgs(entry)...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes the entry by id; a missing row yields common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkDeleted(res)
}
