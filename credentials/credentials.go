// Package credentials resolves the Lokalise API token. Lookup order:
// the --token flag, the LOKGEN_API_TOKEN environment variable, then a
// .env file in the project root. The token is never written to disk
// or logged.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvVar is the environment variable holding the API token.
const EnvVar = "LOKGEN_API_TOKEN"

// Resolve returns the API token, trying the flag value first, then the
// environment, then a .env file next to lokgen.yaml. The .env file is
// read without mutating the process environment.
func Resolve(flagToken, rootDir string) (string, error) {
	if tok := strings.TrimSpace(flagToken); tok != "" {
		return tok, nil
	}
	if tok := strings.TrimSpace(os.Getenv(EnvVar)); tok != "" {
		return tok, nil
	}

	envPath := filepath.Join(rootDir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		vars, err := godotenv.Read(envPath)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", envPath, err)
		}
		if tok := strings.TrimSpace(vars[EnvVar]); tok != "" {
			return tok, nil
		}
	}

	return "", fmt.Errorf("no API token: pass --token, set %s, or add it to %s", EnvVar, envPath)
}

// Mask shortens a token for display, keeping only the first and last
// four characters.
func Mask(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}
