// Package ai provides factory functions for creating completion service
// adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/completion"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/completion/anthropic"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/completion/ollama"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateCompletionService creates a completion service and
// validates connectivity. Returns (nil, nil) when no provider is
// configured; answering then falls back to keyword search.
func CreateAndValidateCompletionService(settings *domain.CompletionSettings) (driven.CompletionService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateCompletionService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'docqa config set' to fix",
			domain.ErrCompletionUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'docqa config set' to fix",
			domain.ErrCompletionUnavailable, err)
	}

	return svc, nil
}

// ValidateCompletionConfig validates a configuration by creating a service
// and pinging it. Intended for use when credentials are first set.
func ValidateCompletionConfig(settings *domain.CompletionSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateCompletionService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateCompletionService creates the appropriate completion service based
// on settings. Returns nil if the provider is not configured. The returned
// service is rate limited.
func CreateCompletionService(settings *domain.CompletionSettings) (driven.CompletionService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	limit := rateLimitFor(settings.Provider)

	switch settings.Provider {
	case domain.AIProviderOllama:
		svc := ollama.NewCompletionService(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		return completion.NewRateLimited(svc, limit), nil

	case domain.AIProviderAnthropic:
		svc, err := anthropic.NewCompletionService(anthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		return completion.NewRateLimited(svc, limit), nil

	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", settings.Provider)
	}
}

// rateLimitFor picks the rate limit for a provider. A local provider has
// no quota to protect, so the limit is there only to bound concurrency.
func rateLimitFor(provider domain.AIProvider) completion.RateLimitConfig {
	if provider.IsLocal() {
		return completion.RateLimitConfig{RequestsPerSecond: 10, BurstSize: 10}
	}
	return completion.DefaultRateLimit
}
