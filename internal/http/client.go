package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is returned when a server answers with a non-200 status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.Code, e.Status, e.URL)
}

// Client wraps HTTP operations with Genius-specific configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - Optional bearer token for the Genius API
//   - Timeout handling
//   - JSON decoding and raw byte downloads
//
// Example usage:
//
//	client := NewClient(WithToken(token))
//
//	// Call the API
//	var resp dto.SearchResponse
//	err := client.GetJSON(ctx, "https://api.genius.com/search?q=imagine", &resp)
//
//	// Fetch a song page
//	html, err := client.GetString(ctx, "https://genius.com/John-lennon-imagine-lyrics")
type Client struct {
	httpClient *http.Client
	userAgent  string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent in the Authorization header.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - 15 second timeout
//   - "GeniusLyrics" User-Agent header
//   - no token unless WithToken is given
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: "GeniusLyrics",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header and, when a token is
// set, an Authorization header.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (a *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like HTML.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetJSON performs a GET request and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("malformed response from %s: %w", url, err)
	}
	return nil
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for small files like cover art images.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, artworkURL)
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
