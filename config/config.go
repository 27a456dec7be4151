// Package config loads lokgen.yaml, the single source of truth for a
// generation run: which Lokalise project to pull, which locales must be
// complete, and where the generated Go file goes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name, looked up in the project root.
const FileName = "lokgen.yaml"

const (
	defaultPackage       = "messages"
	defaultOutput        = "messages/messages.go"
	defaultPlatform      = "web"
	defaultRuntimeImport = "github.com/lokgen/lokgen/pluralrules"
)

// Config is the lokgen.yaml schema.
type Config struct {
	// Project is the human-readable Lokalise project name. Used to
	// resolve the project ID when ProjectID is not set.
	Project string `yaml:"project,omitempty"`
	// ProjectID pins the Lokalise project directly, skipping the
	// name lookup. Takes precedence over Project.
	ProjectID string `yaml:"project_id,omitempty"`

	// Locales is the closed set of locales every key must cover.
	Locales []string `yaml:"locales"`
	// DefaultLocale is the reference locale for placeholder signatures
	// and the fallback arm of generated functions. Must be a member of
	// Locales. Defaults to the first entry.
	DefaultLocale string `yaml:"default_locale,omitempty"`

	// Package is the package name of the generated file (default "messages").
	Package string `yaml:"package,omitempty"`
	// Output is the generated file path relative to the project root
	// (default "messages/messages.go").
	Output string `yaml:"output,omitempty"`
	// RuntimeImport is the import path of the plural runtime helper.
	RuntimeImport string `yaml:"runtime_import,omitempty"`
	// Platform selects which Lokalise key name to use: ios, android,
	// web or other (default "web").
	Platform string `yaml:"platform,omitempty"`
}

// Load reads and validates lokgen.yaml from the given directory.
func Load(rootDir string) (*Config, error) {
	return LoadFile(filepath.Join(rootDir, FileName))
}

// LoadFile reads and validates a config file at an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Project == "" && c.ProjectID == "" {
		return fmt.Errorf("one of project or project_id is required")
	}
	if len(c.Locales) == 0 {
		return fmt.Errorf("locales must list at least one locale")
	}

	seen := make(map[string]bool, len(c.Locales))
	for _, loc := range c.Locales {
		if _, err := language.Parse(strings.ReplaceAll(loc, "_", "-")); err != nil {
			return fmt.Errorf("locale %q is not a valid BCP 47 tag: %w", loc, err)
		}
		if seen[loc] {
			return fmt.Errorf("locale %q listed twice", loc)
		}
		seen[loc] = true
	}

	if c.DefaultLocale == "" {
		c.DefaultLocale = c.Locales[0]
	}
	if !seen[c.DefaultLocale] {
		return fmt.Errorf("default_locale %q is not in locales", c.DefaultLocale)
	}

	if c.Package == "" {
		c.Package = defaultPackage
	}
	if c.Output == "" {
		c.Output = defaultOutput
	}
	if c.RuntimeImport == "" {
		c.RuntimeImport = defaultRuntimeImport
	}

	switch c.Platform {
	case "":
		c.Platform = defaultPlatform
	case "ios", "android", "web", "other":
	default:
		return fmt.Errorf("platform %q is not one of ios, android, web, other", c.Platform)
	}
	return nil
}
