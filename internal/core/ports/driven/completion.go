package driven

import "context"

// CompletionService produces a generative answer from a prompt pair.
// It is an unreliable, rate-limited remote dependency: callers must treat
// any failure (network, non-success status, malformed response, timeout)
// as routine and degrade to the fallback search.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - Ollama (local models)
type CompletionService interface {
	// Complete sends the system and user prompts and returns the
	// generated text.
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures a completion request.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
