// Package entries provides SQL-backed repositories for diary entries.
// PostgreSQL is the production store; SQLite serves local development.
package entries

import (
	"context"

	"github.com/dmitrijs2005/daybook/internal/models"
)

type Repository interface {
	List(ctx context.Context, q models.EntryQuery) ([]models.Entry, error)
	Insert(ctx context.Context, entry *models.Entry) error
	Delete(ctx context.Context, id string) error
}
