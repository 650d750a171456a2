// Package config provides configuration management for genius-lyrics.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Loading the Genius API token from .env files or the environment
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Lyrics are written to ./songs
//	// One second between batch requests
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # API Token
//
// The token is read once at startup and passed explicitly to the client:
//
//	token, err := config.LoadToken()
//	if errors.Is(err, config.ErrMissingToken) {
//	    // fatal: nothing can be fetched without a token
//	}
package config
