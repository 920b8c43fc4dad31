package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STRATA_DB", "STRATA_ACTOR", "STRATA_LOG_LEVEL", "STRATA_KEEP_VERSIONS", "STRATA_OLLAMA_URL", "STRATA_SYNC_DIR"} {
		// Setenv registers the restore; the test needs the variable absent.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Actor != "local" {
		t.Errorf("actor = %q", cfg.Actor)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.KeepVersions != 50 {
		t.Errorf("keep versions = %d", cfg.KeepVersions)
	}
	if cfg.OllamaModel != "llama3.2" {
		t.Errorf("ollama model = %q", cfg.OllamaModel)
	}
	if !strings.HasSuffix(cfg.DBPath, "strata.db") {
		t.Errorf("db path = %q", cfg.DBPath)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STRATA_DB", "/tmp/custom.db")
	t.Setenv("STRATA_ACTOR", "alice")
	t.Setenv("STRATA_KEEP_VERSIONS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Actor != "alice" {
		t.Errorf("actor = %q", cfg.Actor)
	}
	if cfg.KeepVersions != 10 {
		t.Errorf("keep versions = %d", cfg.KeepVersions)
	}
}
