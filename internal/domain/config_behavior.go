package domain

import (
	"fmt"
	"time"
)

// ModelForTier resolves the model definition configured for a tier.
// Returns an error if the tier is unset or points at an unknown model.
func (c *Config) ModelForTier(tier ModelTier) (ModelDefinition, error) {
	name := c.TierModelName(tier)
	if name == "" {
		return ModelDefinition{}, fmt.Errorf("no model configured for tier %s", tier)
	}

	model, ok := c.FindModelByName(name)
	if !ok {
		return ModelDefinition{}, fmt.Errorf("tier %s references unknown model %s", tier, name)
	}
	return model, nil
}

// TierModelName returns the configured model name for a tier.
func (c *Config) TierModelName(tier ModelTier) string {
	switch tier {
	case TierHeavy:
		return c.Tiers.Heavy
	default:
		return c.Tiers.Light
	}
}

// FindModelByName searches for a model by its name
// Returns the model definition and true if found, empty model and false otherwise
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// TierModels returns the distinct models referenced by the tiers, light first.
func (c *Config) TierModels() []ModelDefinition {
	var models []ModelDefinition
	seen := map[string]bool{}
	for _, tier := range []ModelTier{TierLight, TierHeavy} {
		model, err := c.ModelForTier(tier)
		if err != nil || seen[model.Name] {
			continue
		}
		seen[model.Name] = true
		models = append(models, model)
	}
	return models
}

// GetLanguage returns the configured language, defaulting to German.
func (c *Config) GetLanguage() Language {
	lang, _ := ParseLanguage(c.Preferences.Language)
	return lang
}

// GetDefaultAction returns the action preselected at startup.
func (c *Config) GetDefaultAction() Action {
	if action, err := ParseAction(c.Preferences.DefaultAction); err == nil {
		return action
	}
	return ActionFixGrammar
}

// GetTimeout returns the provider call timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// GetStorageKey returns the key of the history slot.
func (c *Config) GetStorageKey() string {
	if c.Storage.Key == "" {
		return DefaultHistoryKey
	}
	return c.Storage.Key
}

// GetStorageBackend returns the configured backend, defaulting to the file backend.
func (c *Config) GetStorageBackend() string {
	if c.Storage.Backend == "" {
		return StorageBackendFile
	}
	return c.Storage.Backend
}

// ValidateConsistency checks the internal consistency of the configuration
// Returns an error if a tier points at a model that does not exist
func (c *Config) ValidateConsistency() error {
	for _, tier := range []ModelTier{TierLight, TierHeavy} {
		if _, err := c.ModelForTier(tier); err != nil {
			return err
		}
	}
	return nil
}
