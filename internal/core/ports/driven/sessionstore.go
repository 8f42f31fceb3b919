package driven

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// SessionStore persists chat sessions and their exchanges.
// Backed by SQLite. Persistence failures never invalidate an already
// computed answer; callers log and carry on.
type SessionStore interface {
	// CreateSession creates a new session and returns it.
	CreateSession(ctx context.Context, title string) (*domain.ChatSession, error)

	// AppendExchange records a question/answer pair in a session.
	AppendExchange(ctx context.Context, exchange domain.Exchange) error

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, id string) (*domain.ChatSession, error)

	// ListSessions returns all sessions, most recently updated first.
	ListSessions(ctx context.Context) ([]domain.ChatSession, error)

	// ListExchanges returns a session's exchanges in insertion order.
	ListExchanges(ctx context.Context, sessionID string) ([]domain.Exchange, error)

	// DeleteSession removes a session and its exchanges.
	DeleteSession(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
