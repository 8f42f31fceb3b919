// Package completion provides shared plumbing for completion service
// adapters.
package completion

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.CompletionService = (*RateLimited)(nil)

// RateLimitConfig holds rate limiting configuration for a provider.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit is a conservative default, well below typical provider
// quotas.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 1.0, BurstSize: 3}

// RateLimited wraps a completion service with a token bucket rate limiter
// and a backoff period for 429 responses.
type RateLimited struct {
	inner driven.CompletionService

	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimited wraps svc with the given rate limit configuration.
func NewRateLimited(svc driven.CompletionService, cfg RateLimitConfig) *RateLimited {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimit
	}
	return &RateLimited{
		inner:   svc,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Complete waits for a token, then delegates to the wrapped service.
// A rate limit error from the provider opens a backoff window that
// later calls wait out.
func (r *RateLimited) Complete(
	ctx context.Context,
	systemPrompt, userPrompt string,
	opts driven.CompleteOptions,
) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	answer, err := r.inner.Complete(ctx, systemPrompt, userPrompt, opts)
	if err != nil {
		var rlErr *domain.RateLimitError
		if errors.As(err, &rlErr) {
			r.recordRateLimit(rlErr.RetryAfterSeconds)
		}
		return "", err
	}
	return answer, nil
}

// wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period opened by a provider 429.
func (r *RateLimited) wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// recordRateLimit opens a backoff window after a provider 429. Without a
// Retry-After hint the window defaults to 60 seconds.
func (r *RateLimited) recordRateLimit(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		retryAfterSeconds = 60
	}

	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// ModelName returns the wrapped service's model name.
func (r *RateLimited) ModelName() string {
	return r.inner.ModelName()
}

// Ping delegates to the wrapped service without consuming a token.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close releases the wrapped service's resources.
func (r *RateLimited) Close() error {
	return r.inner.Close()
}
