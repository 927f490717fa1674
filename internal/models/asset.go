package models

import "time"

// AssetInfo describes one stored media object. Name is relative to the
// listed prefix.
type AssetInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// UploadOptions control how an object is written.
type UploadOptions struct {
	ContentType string `json:"content_type"`
	// Upsert allows overwriting an existing object.
	Upsert bool `json:"upsert"`
}

// Sort columns accepted by ListOptions.SortBy.
const (
	SortByName         = "name"
	SortByLastModified = "last_modified"
)

// ListOptions control object listings.
type ListOptions struct {
	Limit      int    `json:"limit,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	Descending bool   `json:"descending,omitempty"`
}
