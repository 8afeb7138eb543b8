package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// MediaUploadResponse is returned by the media sidecar after it has stored
// the file and published it to the CDN.
type MediaUploadResponse struct {
	URL       string `json:"url"`
	ThumbURL  string `json:"thumb_url"`
	Bytes     int64  `json:"bytes"`
	MediaType string `json:"media_type"`
}

// MediaClient proxies image uploads to the external media sidecar. File
// storage and CDN distribution live entirely on the other side of this
// boundary; the backend only ever sees the resulting URL.
type MediaClient struct {
	proxyURL   string
	httpClient *http.Client
}

func NewMediaClient(proxyURL string) *MediaClient {
	return &MediaClient{
		proxyURL:   proxyURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload streams the file to the sidecar as multipart form data and returns
// the CDN URL.
func (c *MediaClient) Upload(ctx context.Context, fileName string, file io.Reader) (*MediaUploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("media: build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("media: copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("media: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.proxyURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("media: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media: sidecar returned %d", resp.StatusCode)
	}

	var result MediaUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("media: decode response: %w", err)
	}
	return &result, nil
}
