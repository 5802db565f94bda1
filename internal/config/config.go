// Package config provides configuration types, defaults, and persistence
// for the secret-santa CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apastel/secret-santa-generator/internal/log"
)

// ThemeConfig holds console color customization for the exporter.
// Colors are hex strings, e.g. "#10B981".
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"` // Participant names and header
	Subtle    string `mapstructure:"subtle"`    // Connecting text between names
	Error     string `mapstructure:"error"`     // Failure messages
}

// Config holds all configuration options for the secret-santa CLI.
type Config struct {
	Participants string      `mapstructure:"participants"` // Path to participants JSON/YAML file
	Outdir       string      `mapstructure:"outdir"`       // Directory for per-giver pairing PDFs
	Attempts     int         `mapstructure:"attempts"`     // Random search attempt bound
	Theme        ThemeConfig `mapstructure:"theme"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Participants: "",
		Outdir:       "",
		Attempts:     10000,
		Theme: ThemeConfig{
			Highlight: "#10B981",
			Subtle:    "#6B7280",
			Error:     "#EF4444",
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Secret Santa Configuration

# Path to participants file (JSON or YAML).
# When unset, the loader checks the SECRET_SANTA_PARTICIPANTS env var,
# then resources/participants.json, then resources/participants.json.example.
# participants: resources/participants.json

# Directory to write per-giver pairing PDFs.
# When unset, PDFs are not written (console output only).
# outdir: pairings_pdfs

# Attempt bound for the random assignment search.
attempts: 10000

# Console output colors (hex)
theme:
  highlight: "#10B981"
  subtle: "#6B7280"
  error: "#EF4444"
`
}

// Validate checks config values that cannot be expressed by types alone.
func Validate(cfg Config) error {
	if cfg.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", cfg.Attempts)
	}
	return nil
}

// WriteDefaultConfig writes the default config template to the given path,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
