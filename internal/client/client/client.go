package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/daybook/internal/models"
)

// Gateway is everything the diary core needs from the backend.
type Gateway interface {
	ListEntries(ctx context.Context, q models.EntryQuery) ([]models.Entry, error)
	InsertEntry(ctx context.Context, e *models.Entry) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id string) error

	UploadAsset(ctx context.Context, bucket, key string, data []byte, opts models.UploadOptions) error
	PublicURL(bucket, key string) string
	ListAssets(ctx context.Context, bucket, prefix string, opts models.ListOptions) ([]models.AssetInfo, error)
	SignAssetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	RemoveAssets(ctx context.Context, bucket string, keys []string) error

	Close() error
}
