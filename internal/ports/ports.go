// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like key-value backends, HTTP clients, or terminal frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, KeyValueStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/textpolish/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.textpolish/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// KeyValueStore is a durable string-keyed slot store. The history store keeps its whole
// record list under a single key, so implementations only need whole-value semantics.
type KeyValueStore interface {
	// Get returns the stored value and true, or nil and false if the key is absent.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Close() error
}

// ProviderFactory builds AI provider instances based on model definitions.
// It abstracts the creation of different provider types (HTTP, OpenAI SDK, mock).
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider defines the text generation capability used by the improvement client.
// Each provider implementation wraps a specific AI service API.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest contains the fully rendered instruction and the model to run it on.
type ProviderRequest struct {
	Prompt string
	Model  domain.ModelDefinition
}

// ProviderResponse carries the raw generated text.
type ProviderResponse struct {
	Text string
}

// Improver turns input text into improved text for an action.
// Errors are always *domain.ImproveError.
type Improver interface {
	Improve(ctx context.Context, text string, action domain.Action) (string, error)
}

// HistoryStore is the persisted, newest-first list of completed requests.
// Persistence failures are logged by the implementation and never surfaced.
type HistoryStore interface {
	All() []domain.HistoryRecord
	Add(draft domain.HistoryDraft) []domain.HistoryRecord
	Delete(id int64) []domain.HistoryRecord
	Clear() []domain.HistoryRecord
}

// Clipboard provides cross-platform clipboard integration for copying results.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, log files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
