package ioutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputDir is the directory lyrics are written to, relative to the
// working directory.
const DefaultOutputDir = "songs"

// lyricsExt is appended to every lyrics file name.
const lyricsExt = ".txt"

var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// FileName derives the lyrics file name for a song title.
//
// Every space, forward slash and backslash is replaced with an underscore
// and ".txt" is appended. Nothing else is changed, so two different titles
// can map to the same file name.
//
// Example:
//
//	FileName(`AC/DC Thunder\struck`) // Returns "AC_DC_Thunder_struck.txt"
func FileName(title string) string {
	return fileNameReplacer.Replace(title) + lyricsExt
}

// Store writes lyrics files into a single output directory.
//
// Example:
//
//	store := NewStore("songs")
//	path, err := store.Save("Hey Jude", lyrics)
//	// path = "/current/dir/songs/Hey_Jude.txt"
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. An empty dir means DefaultOutputDir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultOutputDir
	}
	return &Store{dir: dir}
}

// Dir returns the absolute output directory, or the configured one if it
// cannot be resolved.
func (s *Store) Dir() string {
	abs, err := filepath.Abs(s.dir)
	if err != nil {
		return s.dir
	}
	return abs
}

// Path returns the absolute path Save would write for title.
func (s *Store) Path(title string) (string, error) {
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory %s: %w", s.dir, err)
	}
	return filepath.Join(dir, FileName(title)), nil
}

// Save writes lyrics to the file derived from title and returns its
// absolute path.
//
// The output directory is created if needed. An existing file with the same
// name is overwritten. Write failures are returned unchanged apart from
// added path context.
func (s *Store) Save(title, lyrics string) (string, error) {
	path, err := s.Path(title)
	if err != nil {
		return "", err
	}

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := WriteFile(path, []byte(lyrics)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
