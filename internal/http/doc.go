// Package http provides an HTTP client configured for Genius requests.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Bearer token authentication for api.genius.com
//   - JSON decoding of API responses
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(http.WithToken(token))
//
//	// Decode an API response
//	var resp dto.SearchResponse
//	err := client.GetJSON(ctx, searchURL, &resp)
//
//	// Fetch an HTML page
//	html, err := client.GetString(ctx, songURL)
//
// # Errors
//
// Non-200 responses are reported as *StatusError so callers can inspect the
// status code with errors.As.
package http
