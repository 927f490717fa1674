package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/dmitrijs2005/daybook/internal/server/metrics"
)

// AssetStore is implemented by storage.S3Storage.
type AssetStore interface {
	PresignUpload(ctx context.Context, bucket, key string, opts models.UploadOptions) (string, error)
	PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	List(ctx context.Context, bucket, prefix string, opts models.ListOptions) ([]models.AssetInfo, error)
	Remove(ctx context.Context, bucket string, keys []string) error
}

// maxSignExpiry caps client-requested download URL lifetimes (S3 SigV4 limit).
const maxSignExpiry = 7 * 24 * time.Hour

type AssetService struct {
	store  AssetStore
	logger logging.Logger
}

func NewAssetService(store AssetStore, l logging.Logger) *AssetService {
	return &AssetService{store: store, logger: l.With("module", "asset_service")}
}

func (s *AssetService) PresignUpload(ctx context.Context, bucket, key string, opts models.UploadOptions) (string, error) {
	url, err := s.store.PresignUpload(ctx, bucket, key, opts)
	if err != nil {
		return "", err
	}
	metrics.AssetOpsTotal.WithLabelValues("presign_upload", bucket).Inc()
	s.logger.Debug(ctx, "upload presigned", "bucket", bucket, "key", key, "upsert", opts.Upsert)
	return url, nil
}

func (s *AssetService) List(ctx context.Context, bucket, prefix string, opts models.ListOptions) ([]models.AssetInfo, error) {
	if opts.SortBy != "" && opts.SortBy != models.SortByName && opts.SortBy != models.SortByLastModified {
		return nil, fmt.Errorf("%w: cannot sort by %q", common.ErrorValidation, opts.SortBy)
	}
	items, err := s.store.List(ctx, bucket, prefix, opts)
	if err != nil {
		return nil, err
	}
	metrics.AssetOpsTotal.WithLabelValues("list", bucket).Inc()
	return items, nil
}

// Sign returns a time-limited download URL for key.
func (s *AssetService) Sign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: key is required", common.ErrorValidation)
	}
	if expiry > maxSignExpiry {
		expiry = maxSignExpiry
	}
	url, err := s.store.PresignDownload(ctx, bucket, key, expiry)
	if err != nil {
		return "", err
	}
	metrics.AssetOpsTotal.WithLabelValues("sign", bucket).Inc()
	return url, nil
}

func (s *AssetService) Remove(ctx context.Context, bucket string, keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: no keys", common.ErrorValidation)
	}
	if err := s.store.Remove(ctx, bucket, keys); err != nil {
		return err
	}
	metrics.AssetOpsTotal.WithLabelValues("remove", bucket).Inc()
	s.logger.Info(ctx, "assets removed", "bucket", bucket, "keys", keys)
	return nil
}
