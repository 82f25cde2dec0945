// api/http_client.go
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxBodyBytes caps downloaded bodies; schedule workbooks are a few hundred KB.
const DefaultMaxBodyBytes = 32 << 20

// HTTPClient downloads documents from a base URL.
type HTTPClient struct {
	BaseURL      string
	HTTPClient   *http.Client
	MaxBodyBytes int64
}

// NewHTTPClient creates a client with the given request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL:      baseURL,
		MaxBodyBytes: DefaultMaxBodyBytes,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// Download performs a GET and returns the whole response body.
func (c *HTTPClient) Download(ctx context.Context, endpoint string, headers map[string]string) ([]byte, error) {
	url := c.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: res.StatusCode, Status: res.Status}
	}

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, limit)
	}
	return body, nil
}
