// Package ai provides the AI provider factory and provider implementations.
//
// This package implements a configuration-driven approach to AI providers:
//   - Factory: Creates provider instances based on model definitions
//   - HTTP Provider: Generic HTTP client for Gemini, OpenAI-compatible and Anthropic
//     endpoints, with request bodies built by sjson and responses read by gjson paths
//   - OpenAI Provider: Chat completions through the official openai-go SDK
//   - Mock Provider: Offline provider for local debugging
//
// Providers never retry; a failed call is reported once and retrying is a user decision.
package ai

import (
	"fmt"
	"net/http"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

// Factory creates AI provider instances based on model definitions.
// It maintains a single HTTP client shared across all providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a new provider factory with a configured HTTP client.
// Per-request deadlines come from the caller's context; the client timeout is only a ceiling.
func NewFactory() *Factory {
	return NewFactoryWithClient(&http.Client{Timeout: domain.DefaultHTTPClientTimeout})
}

// NewFactoryWithClient creates a factory that uses client for every provider.
func NewFactoryWithClient(client *http.Client) *Factory {
	return &Factory{httpClient: client}
}

// ForModel creates the provider selected by the model's provider kind.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	switch model.GetProvider() {
	case domain.ProviderKindHTTP:
		if model.Endpoint == "" {
			return nil, fmt.Errorf("model %s: endpoint is required", model.Name)
		}
		return newHTTPProvider(model, f.httpClient), nil
	case domain.ProviderKindOpenAI:
		return newOpenAIProvider(model, f.httpClient), nil
	case domain.ProviderKindMock:
		return newMockProvider(model), nil
	default:
		return nil, fmt.Errorf("unsupported provider kind: %s", model.Provider)
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
