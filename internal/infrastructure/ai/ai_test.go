package ai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

func TestHTTPProviderGeminiFormat(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "secret")

	var gotPath, gotKey string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"  Hallo Welt.  "}]}}]}`)
	}))
	defer server.Close()

	provider := mustProvider(t, domain.ModelDefinition{
		Name:       "flash",
		Endpoint:   server.URL + "/v1beta/models/{model}:generateContent",
		AuthEnvVar: "TEST_GEMINI_KEY",
		ModelID:    "gemini-2.5-flash",
		MaxTokens:  256,
	})

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: `Fix "hallo welt"`})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Text != "  Hallo Welt.  " {
		t.Fatalf("Text = %q", resp.Text)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("auth header = %q", gotKey)
	}
	if got := gjson.GetBytes(gotBody, "contents.0.parts.0.text").String(); got != `Fix "hallo welt"` {
		t.Fatalf("prompt in body = %q (%s)", got, gotBody)
	}
	if got := gjson.GetBytes(gotBody, "generationConfig.maxOutputTokens").Int(); got != 256 {
		t.Fatalf("maxOutputTokens = %d", got)
	}
}

func TestHTTPProviderChatAndAnthropicFormats(t *testing.T) {
	t.Setenv("TEST_KEY", "k")

	tests := []struct {
		name       string
		format     domain.APIFormat
		reply      string
		wantHeader string
		wantValue  string
		promptPath string
	}{
		{
			name:       "chat",
			format:     domain.APIFormat{RequestFormat: domain.RequestFormatChat},
			reply:      `{"choices":[{"message":{"content":"chat reply"}}]}`,
			wantHeader: "Authorization",
			wantValue:  "Bearer k",
			promptPath: "messages.0.content",
		},
		{
			name: "anthropic",
			format: domain.APIFormat{
				RequestFormat: domain.RequestFormatAnthropic,
				ExtraHeaders:  map[string]string{"anthropic-version": "2023-06-01"},
			},
			reply:      `{"content":[{"type":"text","text":"anthropic reply"}]}`,
			wantHeader: "x-api-key",
			wantValue:  "k",
			promptPath: "messages.0.content.0.text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var header http.Header
			var body []byte
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				header = r.Header.Clone()
				body, _ = io.ReadAll(r.Body)
				io.WriteString(w, tt.reply)
			}))
			defer server.Close()

			provider := mustProvider(t, domain.ModelDefinition{
				Name:       tt.name,
				Endpoint:   server.URL,
				AuthEnvVar: "TEST_KEY",
				ModelID:    "model-x",
				APIFormat:  tt.format,
			})
			resp, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "hello"})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if !strings.HasSuffix(resp.Text, "reply") {
				t.Fatalf("Text = %q", resp.Text)
			}
			if got := header.Get(tt.wantHeader); got != tt.wantValue {
				t.Fatalf("%s = %q, want %q", tt.wantHeader, got, tt.wantValue)
			}
			if got := gjson.GetBytes(body, tt.promptPath).String(); got != "hello" {
				t.Fatalf("prompt at %s = %q (%s)", tt.promptPath, got, body)
			}
			if got := gjson.GetBytes(body, "model").String(); got != "model-x" {
				t.Fatalf("model = %q", got)
			}
			for key, value := range tt.format.ExtraHeaders {
				if header.Get(key) != value {
					t.Fatalf("missing extra header %s", key)
				}
			}
		})
	}
}

func TestHTTPProviderStatusErrorsCarryCode(t *testing.T) {
	t.Setenv("TEST_KEY", "k")
	for _, code := range []int{400, 429, 503} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			io.WriteString(w, `{"error":{"message":"network timeout upstream"}}`)
		}))

		provider := mustProvider(t, domain.ModelDefinition{Name: "m", Endpoint: server.URL, AuthEnvVar: "TEST_KEY"})
		_, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "x"})
		server.Close()

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.Code != code {
			t.Fatalf("code %d: got %v", code, err)
		}
		if strings.Contains(err.Error(), "network") {
			t.Fatalf("provider prose leaked into error: %v", err)
		}
	}
}

func TestHTTPProviderTransportErrorMentionsNetwork(t *testing.T) {
	t.Setenv("TEST_KEY", "k")
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	provider := mustProvider(t, domain.ModelDefinition{Name: "m", Endpoint: url, AuthEnvVar: "TEST_KEY"})
	_, err := provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "network request failed") {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestHTTPProviderMissingPathAndKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "m", Endpoint: server.URL, AuthEnvVar: "TEST_UNSET_KEY"}
	t.Setenv("TEST_UNSET_KEY", "")
	t.Setenv(FallbackAuthEnvVar, "")
	if _, err := mustProvider(t, model).Generate(context.Background(), ports.ProviderRequest{Prompt: "x"}); err == nil || !strings.Contains(err.Error(), "missing API key") {
		t.Fatalf("expected missing key error, got %v", err)
	}

	t.Setenv(FallbackAuthEnvVar, "fallback")
	_, err := mustProvider(t, model).Generate(context.Background(), ports.ProviderRequest{Prompt: "x"})
	if !errors.Is(err, errNoText) {
		t.Fatalf("expected errNoText, got %v", err)
	}
}

func TestToGJSONPath(t *testing.T) {
	tests := map[string]string{
		"candidates[0].content.parts[0].text": "candidates.0.content.parts.0.text",
		"choices[12].message.content":         "choices.12.message.content",
		"[0].text":                            "0.text",
		"plain":                               "plain",
	}
	for in, want := range tests {
		if got := toGJSONPath(in); got != want {
			t.Errorf("toGJSONPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFactoryProviderKinds(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		model    domain.ModelDefinition
		wantName string
		wantErr  bool
	}{
		{model: domain.ModelDefinition{Name: "a", Endpoint: "https://example.invalid"}, wantName: "http"},
		{model: domain.ModelDefinition{Name: "b", Provider: domain.ProviderKindOpenAI}, wantName: "openai"},
		{model: domain.ModelDefinition{Name: "c", Provider: domain.ProviderKindMock}, wantName: "mock"},
		{model: domain.ModelDefinition{Name: "d"}, wantErr: true},
		{model: domain.ModelDefinition{Name: "e", Provider: "carrier-pigeon"}, wantErr: true},
	}
	for _, tt := range tests {
		provider, err := factory.ForModel(tt.model)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tt.model.Name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.model.Name, err)
		}
		if provider.Name() != tt.wantName || provider.Model().Name != tt.model.Name {
			t.Fatalf("%s: got provider %s", tt.model.Name, provider.Name())
		}
	}
}

func TestMockProviderTidiesQuotedText(t *testing.T) {
	provider := newMockProvider(domain.ModelDefinition{Name: "mock", Provider: domain.ProviderKindMock})

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{
		Prompt: `Korrigiere den Text. Originaltext: "teh   cat sat"`,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Text != "Teh cat sat." {
		t.Fatalf("Text = %q", resp.Text)
	}
}

func TestMissingCredentials(t *testing.T) {
	t.Setenv("TEST_HAS_KEY", "x")
	t.Setenv("TEST_NO_KEY", "")
	t.Setenv(FallbackAuthEnvVar, "")

	models := []domain.ModelDefinition{
		{Name: "ok", AuthEnvVar: "TEST_HAS_KEY"},
		{Name: "missing", AuthEnvVar: "TEST_NO_KEY"},
		{Name: "offline", Provider: domain.ProviderKindMock},
	}
	missing := MissingCredentials(models)
	if len(missing) != 1 || missing[0].Name != "missing" {
		t.Fatalf("MissingCredentials() = %+v", missing)
	}

	t.Setenv(FallbackAuthEnvVar, "shared")
	if missing := MissingCredentials(models); len(missing) != 0 {
		t.Fatalf("expected fallback variable to satisfy all models, got %+v", missing)
	}
	if _, source := ResolveCredential(models[1]); source != FallbackAuthEnvVar {
		t.Fatalf("source = %s", source)
	}
}

func mustProvider(t *testing.T, model domain.ModelDefinition) ports.Provider {
	t.Helper()
	provider, err := NewFactoryWithClient(http.DefaultClient).ForModel(model)
	if err != nil {
		t.Fatalf("ForModel() error = %v", err)
	}
	return provider
}
