package config

import (
	"strings"
	"testing"

	"github.com/doeshing/textpolish/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{Language: "de", DefaultAction: "FIX_GRAMMAR", TimeoutSeconds: 45},
		Tiers:       domain.TierSettings{Light: "flash", Heavy: "pro"},
		Models: []domain.ModelDefinition{
			{Name: "flash", Endpoint: "https://example.invalid/{model}", ModelID: "f"},
			{Name: "pro", Provider: domain.ProviderKindOpenAI, ModelID: "p"},
		},
		Storage: domain.StorageSettings{Backend: domain.StorageBackendSQLite, Key: "history_store_v1"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "no models", mutate: func(c *domain.Config) { c.Models = nil }, wantErr: "at least one model"},
		{name: "duplicate model", mutate: func(c *domain.Config) { c.Models = append(c.Models, c.Models[0]) }, wantErr: "more than once"},
		{name: "http without endpoint", mutate: func(c *domain.Config) { c.Models[0].Endpoint = "" }, wantErr: "endpoint"},
		{name: "bad request format", mutate: func(c *domain.Config) { c.Models[0].APIFormat.RequestFormat = "soap" }, wantErr: "request_format"},
		{name: "unknown provider", mutate: func(c *domain.Config) { c.Models[1].Provider = "fax" }, wantErr: "provider"},
		{name: "dangling tier", mutate: func(c *domain.Config) { c.Tiers.Heavy = "ghost" }, wantErr: "ghost"},
		{name: "bad language", mutate: func(c *domain.Config) { c.Preferences.Language = "fr" }, wantErr: "language"},
		{name: "bad action", mutate: func(c *domain.Config) { c.Preferences.DefaultAction = "TONE_GROUP" }, wantErr: "default_action"},
		{name: "timeout too large", mutate: func(c *domain.Config) { c.Preferences.TimeoutSeconds = 301 }, wantErr: "timeout"},
		{name: "bad backend", mutate: func(c *domain.Config) { c.Storage.Backend = "redis" }, wantErr: "storage.backend"},
		{name: "key with separator", mutate: func(c *domain.Config) { c.Storage.Key = "../x" }, wantErr: "storage.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
