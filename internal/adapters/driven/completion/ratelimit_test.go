package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

type stubCompletion struct {
	calls int
	err   error
}

func (s *stubCompletion) Complete(_ context.Context, _, _ string, _ driven.CompleteOptions) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "ok", nil
}
func (s *stubCompletion) ModelName() string            { return "stub" }
func (s *stubCompletion) Ping(_ context.Context) error { return nil }
func (s *stubCompletion) Close() error                 { return nil }

func TestRateLimited_DelegatesComplete(t *testing.T) {
	stub := &stubCompletion{}
	limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

	answer, err := limited.Complete(context.Background(), "sys", "user", driven.CompleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "stub", limited.ModelName())
}

func TestRateLimited_Backoff(t *testing.T) {
	t.Run("provider 429 opens the backoff window", func(t *testing.T) {
		stub := &stubCompletion{err: &domain.RateLimitError{RetryAfterSeconds: 30}}
		limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

		_, err := limited.Complete(context.Background(), "sys", "user", driven.CompleteOptions{})

		var rlErr *domain.RateLimitError
		require.ErrorAs(t, err, &rlErr)
		until := time.Until(limited.retryAt)
		assert.Greater(t, until, 25*time.Second)
		assert.LessOrEqual(t, until, 30*time.Second)
	})

	t.Run("missing retry hint defaults to sixty seconds", func(t *testing.T) {
		stub := &stubCompletion{err: &domain.RateLimitError{}}
		limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

		_, err := limited.Complete(context.Background(), "sys", "user", driven.CompleteOptions{})

		require.Error(t, err)
		assert.Greater(t, time.Until(limited.retryAt), 55*time.Second)
	})

	t.Run("other errors leave the window closed", func(t *testing.T) {
		stub := &stubCompletion{err: errors.New("connection refused")}
		limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

		_, err := limited.Complete(context.Background(), "sys", "user", driven.CompleteOptions{})

		require.Error(t, err)
		assert.True(t, limited.retryAt.IsZero())
	})

	t.Run("open window blocks until cancelled", func(t *testing.T) {
		limited := NewRateLimited(&stubCompletion{}, RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
		limited.recordRateLimit(30)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := limited.Complete(ctx, "sys", "user", driven.CompleteOptions{})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
