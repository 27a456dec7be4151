package credentials

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve_FlagWinsOverEverything(t *testing.T) {
	t.Setenv(EnvVar, "from-env")
	dir := t.TempDir()
	writeEnvFile(t, dir, "from-dotenv")

	tok, err := Resolve("from-flag", dir)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if tok != "from-flag" {
		t.Fatalf("token = %q, want from-flag", tok)
	}
}

func TestResolve_EnvBeforeDotenv(t *testing.T) {
	t.Setenv(EnvVar, "from-env")
	dir := t.TempDir()
	writeEnvFile(t, dir, "from-dotenv")

	tok, err := Resolve("", dir)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if tok != "from-env" {
		t.Fatalf("token = %q, want from-env", tok)
	}
}

func TestResolve_DotenvFallback(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	writeEnvFile(t, dir, "from-dotenv")

	tok, err := Resolve("", dir)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if tok != "from-dotenv" {
		t.Fatalf("token = %q, want from-dotenv", tok)
	}
}

func TestResolve_NothingFound(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Resolve("  ", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no API token") {
		t.Fatalf("expected no-token error, got %v", err)
	}
	if !strings.Contains(err.Error(), EnvVar) {
		t.Fatalf("error should name %s: %v", EnvVar, err)
	}
}

func TestResolve_DotenvWithoutTokenKey(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("OTHER_VAR=value\n"), 0600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}

	if _, err := Resolve("", dir); err == nil {
		t.Fatal("expected error when .env lacks the token key")
	}
}

func TestMask(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"short", "*****"},
		{"0123456789abcdef", "0123...cdef"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func writeEnvFile(t *testing.T, dir, token string) {
	t.Helper()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(EnvVar+"="+token+"\n"), 0600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
}
