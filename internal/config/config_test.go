package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg := Load()

	if cfg.Logging.Level != "info" {
		t.Fatalf("level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Search.MinPageSize != 5 || cfg.Search.MaxPageSize != 100 {
		t.Fatalf("unexpected page size bounds: %+v", cfg.Search)
	}
	if cfg.Search.JudgmentCap != 5 || cfg.Search.JudgmentCharCap != 10000 {
		t.Fatalf("unexpected judgment limits: %+v", cfg.Search)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
logging:
  level: debug
newsapi:
  apiKey: from-file
search:
  maxResults: 30
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.NewsAPI.APIKey != "from-file" {
		t.Fatalf("api key = %q", cfg.NewsAPI.APIKey)
	}
	if cfg.Search.MaxResults != 30 {
		t.Fatalf("maxResults = %d, want 30", cfg.Search.MaxResults)
	}
	// Untouched sections keep their defaults.
	if cfg.Search.RelatedCap != 4 {
		t.Fatalf("relatedCap = %d, want default 4", cfg.Search.RelatedCap)
	}
}

func TestLoadEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("newsapi:\n  apiKey: from-file\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(newsAPIKeyEnv, "from-env")
	t.Setenv(logLevelEnv, "warn")

	cfg := Load()

	if cfg.NewsAPI.APIKey != "from-env" {
		t.Fatalf("api key = %q, want env value", cfg.NewsAPI.APIKey)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadUnreadableFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if cfg.Search.MaxResults != 15 {
		t.Fatalf("maxResults = %d, want default 15", cfg.Search.MaxResults)
	}
}
