package ai

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

// mockProvider answers locally so the UI can be exercised without credentials.
// It tidies the quoted original text instead of rewriting it.
type mockProvider struct {
	model domain.ModelDefinition
}

func newMockProvider(model domain.ModelDefinition) ports.Provider {
	return &mockProvider{model: model}
}

func (p *mockProvider) Name() string {
	return "mock"
}

func (p *mockProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *mockProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	if err := ctx.Err(); err != nil {
		return ports.ProviderResponse{}, err
	}
	return ports.ProviderResponse{Text: tidy(quotedText(req.Prompt))}, nil
}

// quotedText returns the text embedded after the last `: "` marker of an instruction.
func quotedText(prompt string) string {
	start := strings.LastIndex(prompt, `: "`)
	if start < 0 {
		return prompt
	}
	return strings.TrimSuffix(prompt[start+3:], `"`)
}

func tidy(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return text
	}
	first, size := utf8.DecodeRuneInString(text)
	text = string(unicode.ToUpper(first)) + text[size:]
	last, _ := utf8.DecodeLastRuneInString(text)
	if !unicode.IsPunct(last) {
		text += "."
	}
	return text
}
