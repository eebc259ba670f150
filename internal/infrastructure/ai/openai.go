package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openAIProvider talks to OpenAI-compatible chat completion APIs through the official SDK.
type openAIProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newOpenAIProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &openAIProvider{
		model:      model,
		httpClient: client,
	}
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *openAIProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	apiKey, _ := ResolveCredential(p.model)
	if apiKey == "" {
		return ports.ProviderResponse{}, fmt.Errorf("missing API key: set %s environment variable", valueOrDefault(p.model.AuthEnvVar, FallbackAuthEnvVar))
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(p.httpClient),
		option.WithMaxRetries(0),
	}
	if p.model.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(p.model.Endpoint))
	}
	client := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(valueOrDefault(p.model.ModelID, defaultOpenAIModel)),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
	}
	if p.model.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(p.model.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return ports.ProviderResponse{}, &StatusError{Code: apiErr.StatusCode, Status: http.StatusText(apiErr.StatusCode)}
		}
		return ports.ProviderResponse{}, fmt.Errorf("network request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ports.ProviderResponse{}, errors.New("openai: empty choices")
	}
	return ports.ProviderResponse{Text: resp.Choices[0].Message.Content}, nil
}
