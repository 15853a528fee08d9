package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the book configuration file at the root of a book.
const FileName = "tally.yaml"

// Environment variables consulted after .env is loaded.
const (
	EnvBook     = "TALLY_BOOK"
	EnvLogLevel = "TALLY_LOG_LEVEL"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Book    BookConfig    `yaml:"book"`
	Reports ReportsConfig `yaml:"reports"`
	Git     GitConfig     `yaml:"git"`
}

// BookConfig identifies the book.
type BookConfig struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
	Currency string `yaml:"currency"` // ISO 4217, display only
}

// ReportsConfig holds default report options. Command-line flags win.
type ReportsConfig struct {
	Start        string `yaml:"start,omitempty"` // "YYYY-MM-DD", empty = unbounded
	End          string `yaml:"end,omitempty"`
	IncludeEmpty bool   `yaml:"include_empty"`
	Format       string `yaml:"format"` // text, markdown, json or pretty
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadBook reads tally.yaml from a book root.
func LoadBook(bookRoot string) (*Config, error) {
	return Load(filepath.Join(bookRoot, FileName))
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book.
func Default(bookName, template string) *Config {
	return &Config{
		Book: BookConfig{
			Name:     bookName,
			Template: template,
			Currency: "USD",
		},
		Reports: ReportsConfig{
			Format: "text",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
	}
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Getenv returns the value of key, or fallback when unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
