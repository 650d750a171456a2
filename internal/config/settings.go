package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputDir string `json:"output_dir"`

	// Request settings
	RequestDelay   float64 `json:"request_delay"`
	RequestTimeout float64 `json:"request_timeout"`
	APIBaseURL     string  `json:"api_base_url"`
	WebBaseURL     string  `json:"web_base_url"`
	UserAgent      string  `json:"user_agent"`

	// Lyrics settings
	RemoveSectionHeaders bool `json:"remove_section_headers"`

	// Tag settings
	EmbedArtwork   bool `json:"embed_artwork"`
	ArtworkMaxSize int  `json:"artwork_max_size"`

	// Log settings
	LogLevel  string `json:"log_level"`  // debug, info, warn, error
	LogFormat string `json:"log_format"` // text, json, logfmt
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir: "songs",

		RequestDelay:   1.0,
		RequestTimeout: 15,
		APIBaseURL:     "https://api.genius.com",
		WebBaseURL:     "https://genius.com",
		UserAgent:      "GeniusLyrics",

		RemoveSectionHeaders: false,

		EmbedArtwork:   true,
		ArtworkMaxSize: 500,

		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Delay returns RequestDelay as a time.Duration. Negative values become zero.
func (s *Settings) Delay() time.Duration {
	if s.RequestDelay <= 0 {
		return 0
	}
	return time.Duration(s.RequestDelay * float64(time.Second))
}

// Timeout returns RequestTimeout as a time.Duration, falling back to 15s.
func (s *Settings) Timeout() time.Duration {
	if s.RequestTimeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.RequestTimeout * float64(time.Second))
}
