package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/daybook/internal/api"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/dmitrijs2005/daybook/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// ---- fakes ----

type fakeEntries struct {
	items     []models.Entry
	inserted  *models.Entry
	deleteErr error
	err       error
}

func (f *fakeEntries) List(ctx context.Context, q models.EntryQuery) ([]models.Entry, error) {
	return f.items, f.err
}

func (f *fakeEntries) Insert(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e.ID = "new-id"
	f.inserted = e
	return e, nil
}

func (f *fakeEntries) Delete(ctx context.Context, id string) error {
	return f.deleteErr
}

type fakeAssets struct {
	expiry  time.Duration
	removed []string
	err     error
}

func (f *fakeAssets) PresignUpload(ctx context.Context, bucket, key string, opts models.UploadOptions) (string, error) {
	return "http://s3/" + bucket + "/" + key, f.err
}

func (f *fakeAssets) List(ctx context.Context, bucket, prefix string, opts models.ListOptions) ([]models.AssetInfo, error) {
	return []models.AssetInfo{{Name: "clip.mp4", Size: 3}}, f.err
}

func (f *fakeAssets) Sign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	f.expiry = expiry
	return "http://signed/" + key, f.err
}

func (f *fakeAssets) Remove(ctx context.Context, bucket string, keys []string) error {
	f.removed = keys
	return f.err
}

// ---- bufconn harness ----

func startServer(t *testing.T, es *fakeEntries, as *fakeAssets) (*api.DiaryClient, *grpc.ClientConn, string) {
	t.Helper()

	s := NewGRPCServer("", nopLogger(), es, as, "secret")
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	key, err := auth.GenerateAccessKey(auth.RoleService, []byte("secret"), 0)
	require.NoError(t, err)

	return api.NewDiaryClient(conn), conn, key
}

func authed(key string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "access_key", key)
}

func TestRoundTrip_Entries(t *testing.T) {
	es := &fakeEntries{items: []models.Entry{{ID: "a", DiaryID: "d", DayNumber: models.Ptr(1)}}}
	c, _, key := startServer(t, es, &fakeAssets{})
	ctx := authed(key)

	list, err := c.ListEntries(ctx, &api.ListEntriesRequest{Query: models.EntryQuery{DiaryID: "d"}})
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, 1, *list.Entries[0].DayNumber)

	ins, err := c.InsertEntry(ctx, &api.InsertEntryRequest{Entry: models.Entry{DiaryID: "d", Text: models.Ptr("hi")}})
	require.NoError(t, err)
	assert.Equal(t, "new-id", ins.Entry.ID)
	assert.Equal(t, "hi", *es.inserted.Text)

	es.deleteErr = fmt.Errorf("error deleting entry: %w", common.ErrorNotFound)
	_, err = c.DeleteEntry(ctx, &api.DeleteEntryRequest{ID: "zzz"})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "not found")
}

func TestRoundTrip_Assets(t *testing.T) {
	as := &fakeAssets{}
	c, _, key := startServer(t, &fakeEntries{}, as)
	ctx := authed(key)

	up, err := c.PresignUpload(ctx, &api.PresignUploadRequest{Bucket: "img", Key: "d/1.png", Options: models.UploadOptions{Upsert: true}})
	require.NoError(t, err)
	assert.Equal(t, "http://s3/img/d/1.png", up.URL)

	ls, err := c.ListAssets(ctx, &api.ListAssetsRequest{Bucket: "vid", Prefix: "d/"})
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", ls.Assets[0].Name)

	sg, err := c.SignAssetURL(ctx, &api.SignAssetURLRequest{Bucket: "vid", Key: "d/clip.mp4", ExpiresInSeconds: 86400})
	require.NoError(t, err)
	assert.Equal(t, "http://signed/d/clip.mp4", sg.URL)
	assert.Equal(t, 24*time.Hour, as.expiry)

	_, err = c.RemoveAssets(ctx, &api.RemoveAssetsRequest{Bucket: "img", Keys: []string{"d/1.png"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"d/1.png"}, as.removed)
}

func TestRoundTrip_AnonKeyCannotDelete(t *testing.T) {
	es := &fakeEntries{items: []models.Entry{{ID: "a", DiaryID: "d"}}}
	as := &fakeAssets{}
	c, _, _ := startServer(t, es, as)

	anon, err := auth.GenerateAccessKey(auth.RoleAnon, []byte("secret"), 0)
	require.NoError(t, err)
	ctx := authed(anon)

	_, err = c.DeleteEntry(ctx, &api.DeleteEntryRequest{ID: "a"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = c.RemoveAssets(ctx, &api.RemoveAssetsRequest{Bucket: "img", Keys: []string{"d/1.png"}})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Nil(t, as.removed)

	// reads and writes stay open to anon keys
	_, err = c.ListEntries(ctx, &api.ListEntriesRequest{Query: models.EntryQuery{DiaryID: "d"}})
	require.NoError(t, err)
	_, err = c.InsertEntry(ctx, &api.InsertEntryRequest{Entry: models.Entry{DiaryID: "d"}})
	require.NoError(t, err)
}

func TestRequireRole(t *testing.T) {
	assert.ErrorIs(t, requireRole(context.Background(), auth.RoleService), common.ErrorUnauthorized)

	ctx := context.WithValue(context.Background(), roleKey, auth.RoleAnon)
	assert.ErrorIs(t, requireRole(ctx, auth.RoleService), common.ErrorUnauthorized)

	ctx = context.WithValue(context.Background(), roleKey, auth.RoleService)
	assert.NoError(t, requireRole(ctx, auth.RoleService))
}

func TestRoundTrip_RequiresAccessKey(t *testing.T) {
	c, _, _ := startServer(t, &fakeEntries{}, &fakeAssets{})

	_, err := c.ListEntries(context.Background(), &api.ListEntriesRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestHealthCheck(t *testing.T) {
	_, conn, _ := startServer(t, &fakeEntries{}, &fakeAssets{})

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: api.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestToStatus(t *testing.T) {
	s := newTestServer("secret")
	ctx := context.Background()

	tests := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("x: %w", common.ErrorValidation), codes.InvalidArgument},
		{common.ErrorInvalidBucket, codes.InvalidArgument},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrorAlreadyExists, codes.AlreadyExists},
		{common.ErrorUnauthorized, codes.PermissionDenied},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("db exploded"), codes.Internal},
	}
	for _, tt := range tests {
		got := s.toStatus(ctx, tt.err)
		assert.Equal(t, tt.code, status.Code(got), tt.err.Error())
	}

	assert.Equal(t, "internal error", status.Convert(s.toStatus(ctx, errors.New("secret detail"))).Message())
}
