// Package config loads application configuration from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration loaded from STRATA_* environment variables.
type Config struct {
	DBPath   string `envconfig:"DB"`
	Actor    string `envconfig:"ACTOR" default:"local"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`

	// History retention used by the prune command when no explicit count
	// is given.
	KeepVersions int `envconfig:"KEEP_VERSIONS" default:"50"`

	// Drafting collaborator. With no endpoint configured the static
	// generator is used.
	OllamaURL   string `envconfig:"OLLAMA_URL"`
	OllamaModel string `envconfig:"OLLAMA_MODEL" default:"llama3.2"`

	// Optional cloud-sync target directory. Empty disables sync.
	SyncDir string `envconfig:"SYNC_DIR"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("strata", &cfg); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.DBPath = filepath.Join(home, ".strata", "strata.db")
	}
	return &cfg, nil
}
