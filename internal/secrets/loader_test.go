package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	secret, err := Load(Source{Name: "api key", File: path, Value: "ignored", Env: "IGNORED"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "file-secret" {
		t.Fatalf("expected trimmed file secret, got %q", secret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCREENING_TEST_KEY", " env-secret ")

	secret, err := Load(Source{Name: "api key", Env: "SCREENING_TEST_KEY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "env-secret" {
		t.Fatalf("expected trimmed env secret, got %q", secret)
	}
}

func TestLoadEmptySources(t *testing.T) {
	t.Setenv("SCREENING_TEST_KEY", "")

	if _, err := Load(Source{Name: "api key", Env: "SCREENING_TEST_KEY"}); err == nil {
		t.Fatal("expected error when nothing is configured")
	}

	if _, err := Load(Source{}); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestLoadEmptyFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatal("expected error for empty secret file")
	}
}
