package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.OutputDir != "songs" {
		t.Errorf("OutputDir = %q, want %q", s.OutputDir, "songs")
	}
	if s.Delay() != time.Second {
		t.Errorf("Delay() = %v, want 1s", s.Delay())
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"output_dir":"out","request_delay":0.25}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want %q", s.OutputDir, "out")
	}
	if s.Delay() != 250*time.Millisecond {
		t.Errorf("Delay() = %v, want 250ms", s.Delay())
	}
	// untouched fields keep their defaults
	if s.APIBaseURL != "https://api.genius.com" {
		t.Errorf("APIBaseURL = %q", s.APIBaseURL)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	s := DefaultSettings()
	s.RemoveSectionHeaders = true

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.RemoveSectionHeaders {
		t.Error("RemoveSectionHeaders was not persisted")
	}
}

func TestSettings_DurationsClamp(t *testing.T) {
	s := &Settings{RequestDelay: -1, RequestTimeout: 0}
	if s.Delay() != 0 {
		t.Errorf("Delay() = %v, want 0", s.Delay())
	}
	if s.Timeout() != 15*time.Second {
		t.Errorf("Timeout() = %v, want 15s", s.Timeout())
	}
}

func TestLoadToken_FromEnv(t *testing.T) {
	t.Setenv(TokenEnvVar, "  secret  ")
	t.Chdir(t.TempDir())

	// no .env in the working directory
	token, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if token != "secret" {
		t.Errorf("token = %q, want %q", token, "secret")
	}
}

func TestLoadToken_FromFile(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	os.Unsetenv(TokenEnvVar)

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte(TokenEnvVar+"=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	token, err := LoadToken(envFile)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if token != "from-file" {
		t.Errorf("token = %q, want %q", token, "from-file")
	}
}

func TestLoadToken_Missing(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	t.Chdir(t.TempDir())

	_, err := LoadToken()
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("err = %v, want ErrMissingToken", err)
	}
}

func TestLoadToken_EnvFileErrors(t *testing.T) {
	t.Setenv(TokenEnvVar, "from-env")

	malformed := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(malformed, []byte(TokenEnvVar+"=\"unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		load func(t *testing.T) (string, error)
	}{
		{"explicit file missing", func(t *testing.T) (string, error) {
			return LoadToken(filepath.Join(t.TempDir(), "missing.env"))
		}},
		{"explicit file malformed", func(t *testing.T) (string, error) {
			return LoadToken(malformed)
		}},
		{"default file malformed", func(t *testing.T) (string, error) {
			t.Chdir(filepath.Dir(malformed))
			return LoadToken()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.load(t)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrMissingToken) {
				t.Errorf("err = %v, want a .env load error", err)
			}
		})
	}
}
