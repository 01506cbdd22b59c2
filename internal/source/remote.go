// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultUserAgent = "archmate-cli"
	defaultTimeout   = 30 * time.Second

	// maxCatalogSize bounds how much of a remote response is read.
	// Catalogs are small text documents; anything past this is suspect.
	maxCatalogSize = 4 << 20
)

type (
	// Client downloads catalog documents over HTTP.
	Client struct {
		httpClient *http.Client
		userAgent  string
	}

	// ClientOption configures a Client.
	ClientOption func(*Client)
)

// WithHTTPClient replaces the underlying HTTP client. Useful for tests
// and for callers that need custom transport settings.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header sent with requests.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a catalog download client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads the document at url and returns its body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating catalog request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}
	return body, nil
}
