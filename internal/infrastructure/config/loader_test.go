package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/textpolish/internal/domain"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config on disk: %v", err)
	}
	if cfg.Tiers.Light != "gemini-flash" || cfg.Tiers.Heavy != "gemini-pro" {
		t.Fatalf("unexpected tiers %+v", cfg.Tiers)
	}
	model, err := cfg.ModelForTier(domain.TierHeavy)
	if err != nil || model.ModelID != "gemini-2.5-pro" {
		t.Fatalf("heavy tier = %+v, %v", model, err)
	}
	if cfg.GetLanguage() != domain.LanguageGerman || cfg.GetStorageKey() != domain.DefaultHistoryKey {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
preferences:
  language: en
models:
  - name: only
    provider: mock
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	loader := NewFileLoader("")
	if loader.Path() != path {
		t.Fatalf("Path() = %s, want %s", loader.Path(), path)
	}
	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GetLanguage() != domain.LanguageEnglish {
		t.Fatalf("language = %s", cfg.GetLanguage())
	}
	if cfg.Tiers.Light != "only" || cfg.Tiers.Heavy != "only" {
		t.Fatalf("tiers not hydrated from first model: %+v", cfg.Tiers)
	}
	if cfg.Preferences.TimeoutSeconds != 45 || cfg.Storage.Backend != domain.StorageBackendFile {
		t.Fatalf("defaults not hydrated: %+v", cfg)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("preferences:\n  langauge: de\n")); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestDefaultMatchesEmbeddedFile(t *testing.T) {
	cfg := Default()
	if len(cfg.Models) == 0 {
		t.Fatal("expected embedded models")
	}
	if _, ok := cfg.FindModelByName("offline"); !ok {
		t.Fatal("expected offline mock model in defaults")
	}
}
