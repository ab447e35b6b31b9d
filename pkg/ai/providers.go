package ai

import (
	"context"
	"fmt"
	"time"
)

// Settings selects and configures a Provider.
type Settings struct {
	Provider        string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	ServiceURL      string
	ServiceTimeout  time.Duration
}

// NewProvider builds the configured backend. A backend whose credential is
// missing is returned as an Unconfigured provider so the process still starts
// and every oracle call fails fast with ErrMissingCredential.
func NewProvider(ctx context.Context, s Settings) (Provider, error) {
	switch s.Provider {
	case "gemini", "":
		if s.GeminiAPIKey == "" {
			return Unconfigured{ProviderName: "gemini", Documents: true, Env: "GOOGLE_API_KEY"}, nil
		}
		return NewGemini(ctx, s.GeminiAPIKey, s.GeminiModel)
	case "anthropic":
		if s.AnthropicAPIKey == "" {
			return Unconfigured{ProviderName: "anthropic", Documents: true, Env: "ANTHROPIC_API_KEY"}, nil
		}
		return NewClaude(s.AnthropicAPIKey, s.AnthropicModel)
	case "service":
		return NewService(s.ServiceURL, s.ServiceTimeout), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", s.Provider)
	}
}

// Unconfigured stands in for a provider whose credential is not set.
type Unconfigured struct {
	ProviderName string
	Documents    bool
	Env          string
}

func (u Unconfigured) Name() string { return u.ProviderName }

func (u Unconfigured) SupportsDocuments() bool { return u.Documents }

func (u Unconfigured) Complete(context.Context, Request) (string, error) {
	return "", fmt.Errorf("%s: %w (set %s)", u.ProviderName, ErrMissingCredential, u.Env)
}
