package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/daybook/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPathFromPublicURL(t *testing.T) {
	tests := []struct {
		name, url, bucket, want string
	}{
		{"match", "https://host/object/public/picture/foo/bar.png", "picture", "foo/bar.png"},
		{"other bucket", "https://host/object/public/picture/foo/bar.png", "videos", ""},
		{"malformed", "not a url", "picture", ""},
		{"empty", "", "picture", ""},
		{"no path", "https://host/object/public/picture/", "picture", ""},
		{"storage api prefix", "https://x.supabase.co/storage/v1/object/public/diary-images/d/1-a.png", "diary-images", "d/1-a.png"},
		{"escaped key", "https://host/object/public/picture/my%20diary/1700000000123-cat.png", "picture", "my diary/1700000000123-cat.png"},
		{"escaped bucket", "https://host/object/public/my%20pics/d/a.png", "my pics", "d/a.png"},
		{"bad escape", "https://host/object/public/picture/d/%zz.png", "picture", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPathFromPublicURL(tt.url, tt.bucket))
		})
	}
}

func TestExtractPathFromPublicURL_InvertsPublicURL(t *testing.T) {
	gw, err := client.NewGRPCClient("passthrough:///unused", "https://host", "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	for _, key := range []string{
		"d/1700000000123-cat.png",
		"my diary/1700000000123-cat.png",
		"d/100%/a#b?.png",
	} {
		got := ExtractPathFromPublicURL(gw.PublicURL("diary-images", key), "diary-images")
		assert.Equal(t, key, got)
	}
}

func TestStorageKey(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	tests := []struct {
		name, file, want string
	}{
		{"safe name kept", "cat.png", "d/1700000000123-cat.png"},
		{"directories stripped", "/home/me/pics/cat.png", "d/1700000000123-cat.png"},
		{"windows path", `C:\pics\cat.png`, "d/1700000000123-cat.png"},
		{"unsafe name replaced", "my cat.PNG", "d/1700000000123-1700000000123.png"},
		{"unicode replaced", "貓.jpg", "d/1700000000123-1700000000123.jpg"},
		{"no extension", "照片", "d/1700000000123-1700000000123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StorageKey("d", tt.file, at))
		})
	}
}
