// Package storage keeps diary media in an S3-compatible object store.
// Clients never see credentials: uploads and downloads go through
// presigned URLs minted here.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/models"
)

// objectAPI is the part of *s3.Client the storage uses.
type objectAPI interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// presignAPI is the part of *s3.PresignClient the storage uses.
type presignAPI interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
)

// Options configures NewS3Storage.
type Options struct {
	Region        string
	AccessKey     string
	SecretKey     string
	BaseEndpoint  string
	UsePathStyle  bool
	Buckets       []string
	PresignExpiry time.Duration
}

// S3Storage serves presigned URLs and bucket listings for a fixed set of buckets.
type S3Storage struct {
	api     objectAPI
	presign presignAPI
	buckets map[string]struct{}
	expiry  time.Duration
}

// NewS3Storage builds the S3 client from static credentials.
func NewS3Storage(ctx context.Context, opts Options) (*S3Storage, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return newS3Storage(client, newS3PresignClient(client), opts.Buckets, opts.PresignExpiry), nil
}

func newS3Storage(api objectAPI, presign presignAPI, buckets []string, expiry time.Duration) *S3Storage {
	s := &S3Storage{
		api:     api,
		presign: presign,
		buckets: make(map[string]struct{}, len(buckets)),
		expiry:  expiry,
	}
	for _, b := range buckets {
		s.buckets[b] = struct{}{}
	}
	if s.expiry <= 0 {
		s.expiry = 15 * time.Minute
	}
	return s
}

func (s *S3Storage) checkBucket(bucket string) error {
	if _, ok := s.buckets[bucket]; !ok {
		return fmt.Errorf("%w: %q", common.ErrorInvalidBucket, bucket)
	}
	return nil
}

// PresignUpload returns a URL accepting a single PUT of key. Without Upsert
// an existing object makes it fail with common.ErrorAlreadyExists.
func (s *S3Storage) PresignUpload(ctx context.Context, bucket, key string, opts models.UploadOptions) (string, error) {
	if err := s.checkBucket(bucket); err != nil {
		return "", err
	}
	if key == "" {
		return "", fmt.Errorf("%w: empty key", common.ErrorValidation)
	}

	if !opts.Upsert {
		exists, err := s.exists(ctx, bucket, key)
		if err != nil {
			return "", err
		}
		if exists {
			return "", fmt.Errorf("%s/%s: %w", bucket, key, common.ErrorAlreadyExists)
		}
	}

	in := &s3.PutObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}
	if opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}

	req, err := s.presign.PresignPutObject(ctx, in, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}
	return req.URL, nil
}

// PresignDownload returns a GET URL for key valid for expiry (the
// configured default when expiry <= 0).
func (s *S3Storage) PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if err := s.checkBucket(bucket); err != nil {
		return "", err
	}
	if expiry <= 0 {
		expiry = s.expiry
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

// List returns the objects directly under prefix, names relative to it.
// Sorting is applied to the whole listing before the limit.
func (s *S3Storage) List(ctx context.Context, bucket, prefix string, opts models.ListOptions) ([]models.AssetInfo, error) {
	if err := s.checkBucket(bucket); err != nil {
		return nil, err
	}

	in := &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}

	result := make([]models.AssetInfo, 0)
	p := s3.NewListObjectsV2Paginator(s.api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" {
				continue
			}
			result = append(result, models.AssetInfo{
				Name:         name,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	sortAssets(result, opts)
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

func sortAssets(items []models.AssetInfo, opts models.ListOptions) {
	less := func(i, j int) bool { return items[i].Name < items[j].Name }
	if opts.SortBy == models.SortByLastModified {
		less = func(i, j int) bool {
			if items[i].LastModified.Equal(items[j].LastModified) {
				return items[i].Name < items[j].Name
			}
			return items[i].LastModified.Before(items[j].LastModified)
		}
	}
	if opts.Descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(items, less)
}

// Remove deletes keys from bucket. Keys that do not exist are skipped;
// when none exist the result is common.ErrorNotFound.
func (s *S3Storage) Remove(ctx context.Context, bucket string, keys []string) error {
	if err := s.checkBucket(bucket); err != nil {
		return err
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		exists, err := s.exists(ctx, bucket, k)
		if err != nil {
			return err
		}
		if exists {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
		}
	}
	if len(objects) == 0 {
		return fmt.Errorf("%s: %w", strings.Join(keys, ", "), common.ErrorNotFound)
	}

	out, err := s.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("delete objects: %w", err)
	}
	if len(out.Errors) > 0 {
		e := out.Errors[0]
		return fmt.Errorf("delete %s: %s", aws.ToString(e.Key), aws.ToString(e.Message))
	}
	return nil
}

func (s *S3Storage) exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("head object: %w", err)
}

func isNotFound(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
