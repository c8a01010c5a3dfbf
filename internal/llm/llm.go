package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Providers accepted by NewClient.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Client completes a single prompt against a generative-language provider.
// Implementations make exactly one upstream call and never retry.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrUnconfigured is returned when no provider credentials are available.
var ErrUnconfigured = errors.New("llm provider not configured")

// Options selects and configures a provider.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// Factory builds a provider client from options.
type Factory func(ctx context.Context, opts Options) (Client, error)

// NewClient resolves opts to a provider client. A missing API key returns
// ErrUnconfigured so callers can degrade without attempting a call.
func NewClient(ctx context.Context, opts Options, providers map[string]Factory) (Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrUnconfigured
	}
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	factory, ok := providers[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", opts.Provider)
	}
	return factory(ctx, opts)
}

// Timed bounds every call on the wrapped client.
type Timed struct {
	Client  Client
	Timeout time.Duration
}

// Complete applies the timeout and delegates.
func (t Timed) Complete(ctx context.Context, prompt string) (string, error) {
	if t.Client == nil {
		return "", ErrUnconfigured
	}
	if t.Timeout <= 0 {
		return t.Client.Complete(ctx, prompt)
	}
	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()
	return t.Client.Complete(ctx, prompt)
}
