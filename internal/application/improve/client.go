package improve

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

// Client renders the instruction for an action, runs it on the model of the action's
// tier exactly once, and normalizes failures into *domain.ImproveError.
type Client struct {
	Config          domain.Config
	ProviderFactory ports.ProviderFactory
	Logger          ports.Logger

	mu        sync.Mutex
	providers map[string]ports.Provider
}

// NewClient creates a client for cfg.
func NewClient(cfg domain.Config, factory ports.ProviderFactory, logger ports.Logger) *Client {
	return &Client{
		Config:          cfg,
		ProviderFactory: factory,
		Logger:          logger,
	}
}

// Improve implements ports.Improver. No retries are attempted.
func (c *Client) Improve(ctx context.Context, text string, action domain.Action) (string, error) {
	lang := c.Config.GetLanguage()
	fields := map[string]interface{}{"action": string(action)}

	prompt, tier, err := RenderInstruction(lang, action, text)
	if err != nil {
		return "", c.fail(domain.CategoryUnknown, lang, err, fields)
	}
	fields["tier"] = string(tier)

	provider, err := c.providerFor(tier)
	if err != nil {
		return "", c.fail(domain.CategoryUnknown, lang, err, fields)
	}
	fields["model"] = provider.Model().Name

	ctx, cancel := context.WithTimeout(ctx, c.Config.GetTimeout())
	defer cancel()

	started := time.Now()
	resp, err := provider.Generate(ctx, ports.ProviderRequest{
		Prompt: prompt,
		Model:  provider.Model(),
	})
	fields["duration_ms"] = time.Since(started).Milliseconds()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(err, context.DeadlineExceeded)
		}
		return "", c.fail(Classify(err), lang, err, fields)
	}

	c.Logger.Debug("improvement completed", fields)
	return strings.TrimSpace(resp.Text), nil
}

func (c *Client) providerFor(tier domain.ModelTier) (ports.Provider, error) {
	model, err := c.Config.ModelForTier(tier)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if provider, ok := c.providers[model.Name]; ok {
		return provider, nil
	}
	provider, err := c.ProviderFactory.ForModel(model)
	if err != nil {
		return nil, err
	}
	if c.providers == nil {
		c.providers = map[string]ports.Provider{}
	}
	c.providers[model.Name] = provider
	return provider, nil
}

func (c *Client) fail(category domain.ErrorCategory, lang domain.Language, cause error, fields map[string]interface{}) *domain.ImproveError {
	fields["category"] = string(category)
	c.Logger.Error("improvement request failed", cause, fields)
	return domain.NewImproveError(category, lang, cause)
}

var _ ports.Improver = (*Client)(nil)
