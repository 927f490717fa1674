package api

import "github.com/dmitrijs2005/daybook/internal/models"

type ListEntriesRequest struct {
	Query models.EntryQuery `json:"query"`
}

type ListEntriesResponse struct {
	Entries []models.Entry `json:"entries"`
}

type InsertEntryRequest struct {
	Entry models.Entry `json:"entry"`
}

type InsertEntryResponse struct {
	Entry models.Entry `json:"entry"`
}

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

type DeleteEntryResponse struct{}

type PresignUploadRequest struct {
	Bucket  string               `json:"bucket"`
	Key     string               `json:"key"`
	Options models.UploadOptions `json:"options"`
}

type PresignUploadResponse struct {
	URL string `json:"url"`
}

type ListAssetsRequest struct {
	Bucket  string             `json:"bucket"`
	Prefix  string             `json:"prefix"`
	Options models.ListOptions `json:"options"`
}

type ListAssetsResponse struct {
	Assets []models.AssetInfo `json:"assets"`
}

type SignAssetURLRequest struct {
	Bucket           string `json:"bucket"`
	Key              string `json:"key"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

type SignAssetURLResponse struct {
	URL string `json:"url"`
}

type RemoveAssetsRequest struct {
	Bucket string   `json:"bucket"`
	Keys   []string `json:"keys"`
}

type RemoveAssetsResponse struct{}
