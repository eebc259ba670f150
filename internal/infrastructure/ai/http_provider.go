package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

const (
	httpProviderName = "http"
	// maxErrorBody caps how much of a failed response is drained for connection reuse.
	maxErrorBody = 4 << 10
)

// StatusError reports a non-2xx provider response. Error() only carries the status so
// that the improvement client classifies on the code, not on provider prose.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// httpProvider is a configuration-driven HTTP-based AI provider.
// All provider-specific behavior is controlled through the model's APIFormat configuration.
type httpProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newHTTPProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &httpProvider{
		model:      model,
		httpClient: client,
	}
}

func (p *httpProvider) Name() string {
	return httpProviderName
}

func (p *httpProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *httpProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	requestBody, err := p.buildRequestBody(req.Prompt)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("build request: %w", err)
	}

	endpoint := strings.ReplaceAll(p.model.Endpoint, domain.ModelPlaceholder, p.model.ModelID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if err := p.setAuthHeaders(httpReq); err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("set auth headers: %w", err)
	}
	p.setExtraHeaders(httpReq)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("network request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return ports.ProviderResponse{}, &StatusError{
			Code:   resp.StatusCode,
			Status: http.StatusText(resp.StatusCode),
		}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("network read failed: %w", err)
	}

	content, err := p.parseResponse(responseBody)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("parse response: %w", err)
	}
	return ports.ProviderResponse{Text: content}, nil
}

// buildRequestBody constructs the JSON request body for the configured request format.
func (p *httpProvider) buildRequestBody(prompt string) ([]byte, error) {
	body := []byte(`{}`)
	var err error

	switch format := p.model.APIFormat.GetRequestFormat(); format {
	case domain.RequestFormatGemini:
		body, err = sjson.SetBytes(body, "contents", []map[string]interface{}{
			{"role": "user", "parts": []map[string]string{{"text": prompt}}},
		})
		if err == nil && p.model.MaxTokens > 0 {
			body, err = sjson.SetBytes(body, "generationConfig.maxOutputTokens", p.model.MaxTokens)
		}
	case domain.RequestFormatChat:
		body, err = sjson.SetBytes(body, "model", p.model.ModelID)
		if err == nil {
			body, err = sjson.SetBytes(body, "messages", []map[string]string{{"role": "user", "content": prompt}})
		}
		if err == nil && p.model.MaxTokens > 0 {
			body, err = sjson.SetBytes(body, "max_tokens", p.model.MaxTokens)
		}
	case domain.RequestFormatAnthropic:
		body, err = sjson.SetBytes(body, "model", p.model.ModelID)
		if err == nil {
			body, err = sjson.SetBytes(body, "max_tokens", valueOrDefaultInt(p.model.MaxTokens, domain.DefaultMaxTokens))
		}
		if err == nil {
			body, err = sjson.SetBytes(body, "messages", []map[string]interface{}{
				{"role": "user", "content": []map[string]string{{"type": "text", "text": prompt}}},
			})
		}
	default:
		return nil, fmt.Errorf("unsupported request format: %s", format)
	}
	return body, err
}

// setAuthHeaders configures authentication headers based on the model's APIFormat.
func (p *httpProvider) setAuthHeaders(req *http.Request) error {
	apiKey, _ := ResolveCredential(p.model)
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s environment variable", valueOrDefault(p.model.AuthEnvVar, FallbackAuthEnvVar))
	}

	format := p.model.APIFormat
	req.Header.Set(format.GetAuthHeaderName(), format.GetAuthHeaderPrefix()+apiKey)
	return nil
}

// setExtraHeaders adds any additional headers defined in the APIFormat configuration.
func (p *httpProvider) setExtraHeaders(req *http.Request) {
	for key, value := range p.model.APIFormat.ExtraHeaders {
		req.Header.Set(key, value)
	}
}

var errNoText = errors.New("response contains no text")

// parseResponse extracts the generated text using the configured JSON path.
func (p *httpProvider) parseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.New("invalid JSON")
	}
	path := p.model.APIFormat.GetResponseJSONPath()
	result := gjson.GetBytes(body, toGJSONPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("extract from path '%s': %w", path, errNoText)
	}
	return result.String(), nil
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// toGJSONPath converts "candidates[0].content" into gjson's "candidates.0.content".
func toGJSONPath(path string) string {
	return strings.TrimPrefix(indexPattern.ReplaceAllString(path, ".$1"), ".")
}
