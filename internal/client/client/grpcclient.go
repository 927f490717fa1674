package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/api"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// diaryAPI is the subset of api.DiaryClient used here.
type diaryAPI interface {
	ListEntries(ctx context.Context, in *api.ListEntriesRequest, opts ...grpc.CallOption) (*api.ListEntriesResponse, error)
	InsertEntry(ctx context.Context, in *api.InsertEntryRequest, opts ...grpc.CallOption) (*api.InsertEntryResponse, error)
	DeleteEntry(ctx context.Context, in *api.DeleteEntryRequest, opts ...grpc.CallOption) (*api.DeleteEntryResponse, error)
	PresignUpload(ctx context.Context, in *api.PresignUploadRequest, opts ...grpc.CallOption) (*api.PresignUploadResponse, error)
	ListAssets(ctx context.Context, in *api.ListAssetsRequest, opts ...grpc.CallOption) (*api.ListAssetsResponse, error)
	SignAssetURL(ctx context.Context, in *api.SignAssetURLRequest, opts ...grpc.CallOption) (*api.SignAssetURLResponse, error)
	RemoveAssets(ctx context.Context, in *api.RemoveAssetsRequest, opts ...grpc.CallOption) (*api.RemoveAssetsResponse, error)
}

// Uploader sends bytes to a presigned URL; netx.HTTPClient implements it.
type Uploader interface {
	UploadToPresignedURL(ctx context.Context, url, contentType string, data []byte) error
}

type GRPCClient struct {
	endpointURL string
	serviceURL  string
	accessKey   string
	conn        *grpc.ClientConn
	client      diaryAPI
	uploader    Uploader
}

var _ Gateway = (*GRPCClient)(nil)

func withAccessKey(ctx context.Context, key string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessKeyHeaderName, key)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessKeyInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessKey != "" {
		ctx = withAccessKey(ctx, s.accessKey)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL. serviceURL is the HTTP base
// used for public asset URLs.
func NewGRPCClient(endpointURL, serviceURL, accessKey string, uploader Uploader, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL: endpointURL,
		serviceURL:  strings.TrimRight(serviceURL, "/"),
		accessKey:   accessKey,
		uploader:    uploader,
	}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(extra ...grpc.DialOption) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessKeyInterceptor),
	}, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewDiaryClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) ListEntries(ctx context.Context, q models.EntryQuery) ([]models.Entry, error) {
	resp, err := s.client.ListEntries(ctx, &api.ListEntriesRequest{Query: q})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) InsertEntry(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	resp, err := s.client.InsertEntry(ctx, &api.InsertEntryRequest{Entry: *e})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Entry, nil
}

func (s *GRPCClient) DeleteEntry(ctx context.Context, id string) error {
	if _, err := s.client.DeleteEntry(ctx, &api.DeleteEntryRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// UploadAsset asks the server for a presigned PUT and sends data to it.
func (s *GRPCClient) UploadAsset(ctx context.Context, bucket, key string, data []byte, opts models.UploadOptions) error {
	resp, err := s.client.PresignUpload(ctx, &api.PresignUploadRequest{Bucket: bucket, Key: key, Options: opts})
	if err != nil {
		return s.mapError(err)
	}
	if err := s.uploader.UploadToPresignedURL(ctx, resp.URL, opts.ContentType, data); err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL is <service>/object/public/<bucket>/<key>, each key segment escaped.
func (s *GRPCClient) PublicURL(bucket, key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.serviceURL + common.PublicObjectPrefix + url.PathEscape(bucket) + "/" + strings.Join(parts, "/")
}

func (s *GRPCClient) ListAssets(ctx context.Context, bucket, prefix string, opts models.ListOptions) ([]models.AssetInfo, error) {
	resp, err := s.client.ListAssets(ctx, &api.ListAssetsRequest{Bucket: bucket, Prefix: prefix, Options: opts})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Assets, nil
}

func (s *GRPCClient) SignAssetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	resp, err := s.client.SignAssetURL(ctx, &api.SignAssetURLRequest{
		Bucket:           bucket,
		Key:              key,
		ExpiresInSeconds: int64(expiry / time.Second),
	})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

func (s *GRPCClient) RemoveAssets(ctx context.Context, bucket string, keys []string) error {
	if _, err := s.client.RemoveAssets(ctx, &api.RemoveAssetsRequest{Bucket: bucket, Keys: keys}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
