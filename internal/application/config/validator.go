package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/textpolish/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := validateModels(cfg.Models); err != nil {
		return err
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	return validateStorage(cfg.Storage)
}

func validateModels(models []domain.ModelDefinition) error {
	seen := map[string]bool{}
	for i, model := range models {
		if strings.TrimSpace(model.Name) == "" {
			return fmt.Errorf("models[%d].name must be set", i)
		}
		if seen[model.Name] {
			return fmt.Errorf("model %s is defined more than once", model.Name)
		}
		seen[model.Name] = true

		switch model.GetProvider() {
		case domain.ProviderKindHTTP:
			if model.Endpoint == "" {
				return fmt.Errorf("model %s: endpoint must be set for http provider", model.Name)
			}
			switch model.APIFormat.GetRequestFormat() {
			case domain.RequestFormatGemini, domain.RequestFormatChat, domain.RequestFormatAnthropic:
			default:
				return fmt.Errorf("model %s: api_format.request_format must be gemini|chat|anthropic, got %s", model.Name, model.APIFormat.RequestFormat)
			}
		case domain.ProviderKindOpenAI, domain.ProviderKindMock:
		default:
			return fmt.Errorf("model %s: provider must be http|openai|mock, got %s", model.Name, model.Provider)
		}
		if model.MaxTokens < 0 {
			return fmt.Errorf("model %s: max_tokens must be >= 0", model.Name)
		}
	}
	return nil
}

func validatePreferences(prefs domain.Preferences) error {
	if _, ok := domain.ParseLanguage(prefs.Language); !ok {
		return fmt.Errorf("preferences.language must be de|en, got %s", prefs.Language)
	}
	if _, err := domain.ParseAction(prefs.DefaultAction); err != nil {
		return fmt.Errorf("preferences.default_action: %w", err)
	}
	if prefs.TimeoutSeconds < 1 || prefs.TimeoutSeconds > domain.MaxRequestTimeoutSeconds {
		return fmt.Errorf("preferences.timeout must be between 1 and %d seconds", domain.MaxRequestTimeoutSeconds)
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	switch storage.Backend {
	case domain.StorageBackendFile, domain.StorageBackendSQLite, domain.StorageBackendBolt, domain.StorageBackendMemory:
	default:
		return fmt.Errorf("storage.backend must be file|sqlite|bolt|memory, got %s", storage.Backend)
	}
	if strings.TrimSpace(storage.Key) == "" {
		return errors.New("storage.key must be set")
	}
	if strings.ContainsAny(storage.Key, `/\`) {
		return fmt.Errorf("storage.key must not contain path separators, got %s", storage.Key)
	}
	return nil
}
