package ai

import (
	"os"

	"github.com/doeshing/textpolish/internal/domain"
)

// FallbackAuthEnvVar is consulted when the model's own variable is unset.
const FallbackAuthEnvVar = "API_KEY"

// ResolveCredential returns the API key for model and the variable it came from.
func ResolveCredential(model domain.ModelDefinition) (string, string) {
	return resolveAuth(model.AuthEnvVar, FallbackAuthEnvVar)
}

// MissingCredentials lists the models that need a key but have none.
func MissingCredentials(models []domain.ModelDefinition) []domain.ModelDefinition {
	var missing []domain.ModelDefinition
	for _, model := range models {
		if !model.NeedsCredential() {
			continue
		}
		if key, _ := ResolveCredential(model); key == "" {
			missing = append(missing, model)
		}
	}
	return missing
}

func resolveAuth(primary string, fallback string) (string, string) {
	if primary != "" {
		if value := os.Getenv(primary); value != "" {
			return value, primary
		}
	}
	if fallback == "" {
		return "", ""
	}
	if value := os.Getenv(fallback); value != "" {
		return value, fallback
	}
	return "", ""
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func valueOrDefaultInt(value int, def int) int {
	if value == 0 {
		return def
	}
	return value
}
