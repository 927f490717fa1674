package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/models"
)

type upload struct {
	bucket, key string
	data        []byte
	opts        models.UploadOptions
}

// fakeGateway is an in-memory client.Gateway that records call order.
type fakeGateway struct {
	rows    []models.Entry
	objects map[string]bool
	calls   []string

	uploads []upload
	lastQ   models.EntryQuery
	lastLO  models.ListOptions
	assets  []models.AssetInfo
	signed  string
	expiry  time.Duration

	listErr, insertErr, deleteErr, uploadErr, removeErr, signErr error
	seq                                                          int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{objects: map[string]bool{}}
}

func (f *fakeGateway) ListEntries(_ context.Context, q models.EntryQuery) ([]models.Entry, error) {
	f.calls = append(f.calls, "list")
	f.lastQ = q
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Entry, 0, len(f.rows))
	for _, r := range f.rows {
		if r.DiaryID != q.DiaryID || (q.WithDayOnly && r.DayNumber == nil) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return models.Deref(out[i].DayNumber) < models.Deref(out[j].DayNumber)
	})
	return out, nil
}

func (f *fakeGateway) InsertEntry(_ context.Context, e *models.Entry) (*models.Entry, error) {
	f.calls = append(f.calls, "insert")
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.seq++
	saved := *e
	saved.ID = fmt.Sprintf("e%d", f.seq)
	f.rows = append(f.rows, saved)
	return &saved, nil
}

func (f *fakeGateway) DeleteEntry(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeGateway) UploadAsset(_ context.Context, bucket, key string, data []byte, opts models.UploadOptions) error {
	f.calls = append(f.calls, "upload")
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, upload{bucket: bucket, key: key, data: data, opts: opts})
	f.objects[bucket+"/"+key] = true
	return nil
}

func (f *fakeGateway) PublicURL(bucket, key string) string {
	return "http://svc/object/public/" + bucket + "/" + key
}

func (f *fakeGateway) ListAssets(_ context.Context, bucket, prefix string, opts models.ListOptions) ([]models.AssetInfo, error) {
	f.calls = append(f.calls, "list-assets:"+bucket+"/"+prefix)
	f.lastLO = opts
	return f.assets, f.listErr
}

func (f *fakeGateway) SignAssetURL(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	f.calls = append(f.calls, "sign:"+bucket+"/"+key)
	f.expiry = expiry
	return f.signed, f.signErr
}

func (f *fakeGateway) RemoveAssets(_ context.Context, bucket string, keys []string) error {
	for _, k := range keys {
		f.calls = append(f.calls, "remove:"+bucket+"/"+k)
	}
	if f.removeErr != nil {
		return f.removeErr
	}
	found := false
	for _, k := range keys {
		if f.objects[bucket+"/"+k] {
			delete(f.objects, bucket+"/"+k)
			found = true
		}
	}
	if !found {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeGateway) Close() error { return nil }
