// Package netx wraps the plain HTTP calls the client makes outside gRPC:
// uploads to presigned URLs and fetching static resources.
package netx

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type HTTPClient struct {
	client *resty.Client
}

// NewHTTPClient returns a client whose requests time out after timeout
// (no limit when zero).
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPClient{client: c}
}

// UploadToPresignedURL PUTs data to url. contentType must match the type
// the URL was signed for; empty means application/octet-stream.
func (h *HTTPClient) UploadToPresignedURL(ctx context.Context, url, contentType string, data []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Put(url)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status(), resp.String())
	}
	return nil
}

// Get fetches url and returns the body of a 2xx response.
func (h *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status())
	}
	return resp.Body(), nil
}
