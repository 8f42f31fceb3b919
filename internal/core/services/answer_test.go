package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockCompletion implements driven.CompletionService for testing.
type mockCompletion struct {
	text  string
	err   error
	calls int

	lastSystem string
	lastUser   string
}

func (m *mockCompletion) Complete(_ context.Context, systemPrompt, userPrompt string, _ driven.CompleteOptions) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func (m *mockCompletion) ModelName() string            { return "mock" }
func (m *mockCompletion) Ping(_ context.Context) error { return nil }
func (m *mockCompletion) Close() error                 { return nil }

// mockSessionStore implements driven.SessionStore for testing.
type mockSessionStore struct {
	appendErr error
	exchanges []domain.Exchange
}

func (m *mockSessionStore) CreateSession(_ context.Context, title string) (*domain.ChatSession, error) {
	return &domain.ChatSession{ID: "s1", Title: title}, nil
}

func (m *mockSessionStore) AppendExchange(_ context.Context, ex domain.Exchange) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.exchanges = append(m.exchanges, ex)
	return nil
}

func (m *mockSessionStore) GetSession(_ context.Context, _ string) (*domain.ChatSession, error) {
	return nil, domain.ErrNotFound
}

func (m *mockSessionStore) ListSessions(_ context.Context) ([]domain.ChatSession, error) {
	return nil, nil
}

func (m *mockSessionStore) ListExchanges(_ context.Context, _ string) ([]domain.Exchange, error) {
	return m.exchanges, nil
}

func (m *mockSessionStore) DeleteSession(_ context.Context, _ string) error { return nil }
func (m *mockSessionStore) Close() error                                    { return nil }

func seededStore(t *testing.T, records ...domain.DocumentRecord) *memory.DocumentStore {
	t.Helper()
	store := memory.NewDocumentStore()
	for _, rec := range records {
		store.Upsert(rec)
	}
	return store
}

func TestAnswerService_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store fails immediately without any completion call", func(t *testing.T) {
		completion := &mockCompletion{text: "should not run"}
		svc := NewAnswerService(memory.NewDocumentStore(), completion, nil, nil)

		_, err := svc.Answer(ctx, "anything at all", "")

		assert.ErrorIs(t, err, domain.ErrNoDocuments)
		assert.Zero(t, completion.calls)
	})

	t.Run("unresolved mention fails without any completion call", func(t *testing.T) {
		completion := &mockCompletion{text: "should not run"}
		store := seededStore(t, domain.DocumentRecord{ID: "a", Seq: 1, Name: "Report.pdf", Text: "body"})
		svc := NewAnswerService(store, completion, nil, nil)

		_, err := svc.Answer(ctx, "@missing what is this", "")

		var noMatch *domain.NoMatchingDocumentError
		require.ErrorAs(t, err, &noMatch)
		assert.Equal(t, "missing", noMatch.Target)
		assert.Zero(t, completion.calls)
	})
}

func TestAnswerService_CompletionPath(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t,
		domain.DocumentRecord{ID: "a", Seq: 1, Name: "guide.pdf", Text: "The latency target is 50ms under nominal load conditions."},
	)

	t.Run("successful completion is returned verbatim", func(t *testing.T) {
		completion := &mockCompletion{text: "The latency target is 50ms."}
		svc := NewAnswerService(store, completion, nil, nil)

		answer, err := svc.Answer(ctx, "what is the latency target?", "")

		require.NoError(t, err)
		assert.False(t, answer.UsedFallback)
		assert.Equal(t, "The latency target is 50ms.", answer.Text)
		assert.Equal(t, []string{"guide.pdf"}, answer.ContextDocuments)
		assert.Equal(t, 1, completion.calls)
	})

	t.Run("prompts embed context and cleaned question", func(t *testing.T) {
		completion := &mockCompletion{text: "ok"}
		svc := NewAnswerService(store, completion, nil, nil)

		_, err := svc.Answer(ctx, "what is the latency target?", "")

		require.NoError(t, err)
		assert.Contains(t, completion.lastUser, "latency target is 50ms")
		assert.Contains(t, completion.lastUser, "what is the latency target?")
		assert.Contains(t, completion.lastSystem, "ONLY the provided document context")
	})

	t.Run("completion failure falls back, never errors", func(t *testing.T) {
		completion := &mockCompletion{err: errors.New("connection refused")}
		svc := NewAnswerService(store, completion, nil, nil)

		answer, err := svc.Answer(ctx, "explain the latency target", "")

		require.NoError(t, err)
		assert.True(t, answer.UsedFallback)
		assert.Contains(t, answer.Text, "guide.pdf")
	})

	t.Run("empty completion text falls back", func(t *testing.T) {
		completion := &mockCompletion{text: "   "}
		svc := NewAnswerService(store, completion, nil, nil)

		answer, err := svc.Answer(ctx, "explain the latency target", "")

		require.NoError(t, err)
		assert.True(t, answer.UsedFallback)
	})

	t.Run("nil completion service always falls back", func(t *testing.T) {
		svc := NewAnswerService(store, nil, nil, nil)

		answer, err := svc.Answer(ctx, "explain the latency target", "")

		require.NoError(t, err)
		assert.True(t, answer.UsedFallback)
	})
}

func TestAnswerService_FallbackPath(t *testing.T) {
	ctx := context.Background()

	t.Run("fallback cites passages and sources", func(t *testing.T) {
		store := seededStore(t,
			domain.DocumentRecord{ID: "a", Seq: 1, Name: "perf.pdf",
				Text: "Both latency and throughput degrade under sustained load."},
			domain.DocumentRecord{ID: "b", Seq: 2, Name: "ops.docx",
				Text: "Operational latency alarms fire at the 99th percentile."},
		)
		svc := NewAnswerService(store, &mockCompletion{err: errors.New("down")}, nil, nil)

		answer, err := svc.Answer(ctx, "explain latency and throughput tradeoffs", "")

		require.NoError(t, err)
		assert.True(t, answer.UsedFallback)
		assert.Contains(t, answer.Text, "[perf.pdf]")
		assert.Contains(t, answer.Text, "Sources:")
		assert.Contains(t, answer.ContextDocuments, "perf.pdf")
	})

	t.Run("zero keyword matches return the fixed no-match message", func(t *testing.T) {
		store := seededStore(t,
			domain.DocumentRecord{ID: "a", Seq: 1, Name: "recipes.pdf",
				Text: "Combine flour and water, then knead the dough thoroughly."},
		)
		svc := NewAnswerService(store, nil, nil, nil)

		answer, err := svc.Answer(ctx, "describe kubernetes autoscaling behaviour", "")

		require.NoError(t, err)
		assert.True(t, answer.UsedFallback)
		assert.Equal(t, NoMatchMessage, answer.Text)
	})

	t.Run("mention scopes the fallback to the targeted document", func(t *testing.T) {
		store := seededStore(t,
			domain.DocumentRecord{ID: "a", Seq: 1, Name: "alpha.pdf",
				Text: "The deployment process requires manual approval gates."},
			domain.DocumentRecord{ID: "b", Seq: 2, Name: "beta.pdf",
				Text: "The deployment pipeline runs fully automated checks."},
		)
		svc := NewAnswerService(store, nil, nil, nil)

		answer, err := svc.Answer(ctx, "@beta describe the deployment process", "")

		require.NoError(t, err)
		assert.Contains(t, answer.Text, "[beta.pdf]")
		assert.NotContains(t, answer.Text, "[alpha.pdf]")
	})
}

func TestAnswerService_SessionPersistence(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t,
		domain.DocumentRecord{ID: "a", Seq: 1, Name: "guide.pdf", Text: "Some reasonably long document body about deployments."},
	)

	t.Run("exchange is recorded with the session", func(t *testing.T) {
		sessions := &mockSessionStore{}
		svc := NewAnswerService(store, &mockCompletion{text: "answer"}, nil, sessions)

		answer, err := svc.Answer(ctx, "describe deployments", "sess-1")

		require.NoError(t, err)
		require.Len(t, sessions.exchanges, 1)
		assert.Equal(t, "sess-1", sessions.exchanges[0].SessionID)
		assert.Equal(t, answer.Text, sessions.exchanges[0].Answer)
		assert.False(t, sessions.exchanges[0].UsedFallback)
	})

	t.Run("persistence failure does not affect the answer", func(t *testing.T) {
		sessions := &mockSessionStore{appendErr: errors.New("disk full")}
		svc := NewAnswerService(store, &mockCompletion{text: "answer"}, nil, sessions)

		answer, err := svc.Answer(ctx, "describe deployments", "sess-1")

		require.NoError(t, err)
		assert.Equal(t, "answer", answer.Text)
	})

	t.Run("no session id skips persistence", func(t *testing.T) {
		sessions := &mockSessionStore{}
		svc := NewAnswerService(store, &mockCompletion{text: "answer"}, nil, sessions)

		_, err := svc.Answer(ctx, "describe deployments", "")

		require.NoError(t, err)
		assert.Empty(t, sessions.exchanges)
	})
}
