// Package domain defines core business entities and value objects for textpolish.
//
// This file contains AI model and provider definitions used throughout the application.
// The domain layer is independent of infrastructure concerns and represents pure
// business logic and data structures.
package domain

// ProviderKind selects the adapter that talks to a model.
type ProviderKind string

const (
	// ProviderKindHTTP is the configuration driven HTTP adapter (Gemini, OpenAI-compatible, Anthropic).
	ProviderKindHTTP ProviderKind = "http"
	// ProviderKindOpenAI uses the official OpenAI SDK.
	ProviderKindOpenAI ProviderKind = "openai"
	// ProviderKindMock is an offline provider for local debugging.
	ProviderKindMock ProviderKind = "mock"
)

// ModelDefinition describes an AI provider configuration declared in the config file.
// Each model represents a specific AI service endpoint with its authentication and
// generation parameters.
type ModelDefinition struct {
	Name       string       `yaml:"name"`
	Provider   ProviderKind `yaml:"provider,omitempty"`
	Endpoint   string       `yaml:"endpoint"`
	AuthEnvVar string       `yaml:"auth_env_var,omitempty"`
	ModelID    string       `yaml:"model_id"`
	MaxTokens  int          `yaml:"max_tokens,omitempty"`
	APIFormat  APIFormat    `yaml:"api_format,omitempty"`
}

// GetProvider returns the provider kind, defaulting to the HTTP adapter.
func (m ModelDefinition) GetProvider() ProviderKind {
	if m.Provider == "" {
		return ProviderKindHTTP
	}
	return m.Provider
}

// NeedsCredential reports whether the model cannot run without an API key.
func (m ModelDefinition) NeedsCredential() bool {
	return m.GetProvider() != ProviderKindMock
}

// APIFormat defines how to construct requests and parse responses for different AI APIs.
// All fields are optional with sensible defaults (Gemini generateContent format).
type APIFormat struct {
	// RequestFormat selects the body layout.
	// Values: "gemini" (default) - {"contents":[{"role":"user","parts":[{"text":...}]}]}
	//         "chat" - OpenAI-compatible {"model":..., "messages":[...]}
	//         "anthropic" - messages with content blocks and max_tokens
	RequestFormat string `yaml:"request_format,omitempty"`

	// AuthHeaderName specifies the HTTP header name for authentication.
	// Default: "x-goog-api-key"
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`

	// AuthHeaderPrefix is prepended to the API key value.
	// Default: "" for the default header, "Bearer " when AuthHeaderName is "Authorization".
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`

	// ResponseJSONPath specifies where to extract the generated text from the response.
	// Default depends on RequestFormat, e.g. "candidates[0].content.parts[0].text".
	ResponseJSONPath string `yaml:"response_json_path,omitempty"`

	// ExtraHeaders contains additional HTTP headers to send with each request.
	// Example: {"anthropic-version": "2023-06-01"}
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

// API Format Constants define standard values for APIFormat fields.
const (
	RequestFormatGemini    = "gemini"
	RequestFormatChat      = "chat"
	RequestFormatAnthropic = "anthropic"

	DefaultAuthHeaderName = "x-goog-api-key"
	BearerAuthHeaderName  = "Authorization"
	BearerAuthPrefix      = "Bearer "

	GeminiResponsePath    = "candidates[0].content.parts[0].text"
	ChatResponsePath      = "choices[0].message.content"
	AnthropicResponsePath = "content[0].text"

	// ModelPlaceholder in an endpoint is replaced with ModelID.
	ModelPlaceholder = "{model}"
)

// GetRequestFormat returns the request layout with default fallback.
func (f APIFormat) GetRequestFormat() string {
	if f.RequestFormat == "" {
		return RequestFormatGemini
	}
	return f.RequestFormat
}

// GetAuthHeaderName returns the authentication header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		switch f.GetRequestFormat() {
		case RequestFormatChat:
			return BearerAuthHeaderName
		case RequestFormatAnthropic:
			return "x-api-key"
		}
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the authentication header prefix.
// Note: an explicit prefix always wins; the bearer prefix is implied only for the Authorization header.
func (f APIFormat) GetAuthHeaderPrefix() string {
	if f.AuthHeaderPrefix != "" {
		return f.AuthHeaderPrefix
	}
	if f.GetAuthHeaderName() == BearerAuthHeaderName {
		return BearerAuthPrefix
	}
	return ""
}

// GetResponseJSONPath returns the JSON path for extracting response content with default fallback.
func (f APIFormat) GetResponseJSONPath() string {
	if f.ResponseJSONPath != "" {
		return f.ResponseJSONPath
	}
	switch f.GetRequestFormat() {
	case RequestFormatChat:
		return ChatResponsePath
	case RequestFormatAnthropic:
		return AnthropicResponsePath
	default:
		return GeminiResponsePath
	}
}
