package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// TokenEnvVar is the environment variable holding the Genius API token.
const TokenEnvVar = "GENIUS_API_TOKEN"

// ErrMissingToken is returned by LoadToken when no credential is configured.
var ErrMissingToken = errors.New(TokenEnvVar + " not found in environment variables. Please check your .env file.")

// LoadToken loads .env files into the process environment and returns the
// Genius API token.
//
// With no arguments godotenv reads ".env" from the working directory and a
// missing file there is not an error. Files passed explicitly must exist.
// A .env file that cannot be parsed is always an error. Variables already
// present in the environment take precedence over values from the files.
func LoadToken(envFiles ...string) (string, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			return "", fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to load .env: %w", err)
		}
	}

	token := strings.TrimSpace(os.Getenv(TokenEnvVar))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
