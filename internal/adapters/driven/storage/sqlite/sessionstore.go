// Package sqlite provides the durable chat-session store. Sessions are
// the only state that survives a restart; documents are re-scanned from
// disk instead.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is a SQLite-backed implementation of driven.SessionStore.
type SessionStore struct {
	db   *sql.DB
	path string
}

// NewSessionStore creates a session store at the specified data directory.
// If dataDir is empty, defaults to ~/.docqa/data/sessions.db.
func NewSessionStore(dataDir string) (*SessionStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docqa", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sessions.db")

	// WAL mode for better concurrency with request handlers.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SessionStore{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SessionStore) Path() string {
	return s.path
}

// migrate applies pending .up.sql files in version order.
func (s *SessionStore) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// CreateSession creates a new session and returns it.
func (s *SessionStore) CreateSession(ctx context.Context, title string) (*domain.ChatSession, error) {
	now := time.Now().UTC()
	session := domain.ChatSession{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, session.ID, session.Title, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return &session, nil
}

// AppendExchange records a question/answer pair and bumps the session's
// updated_at.
func (s *SessionStore) AppendExchange(ctx context.Context, ex domain.Exchange) error {
	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO exchanges (id, session_id, question, answer, used_fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ex.ID, ex.SessionID, ex.Question, ex.Answer, boolToInt(ex.UsedFallback), ex.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting exchange: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE sessions SET updated_at = ? WHERE id = ?
	`, ex.CreatedAt, ex.SessionID); err != nil {
		return fmt.Errorf("updating session: %w", err)
	}

	return tx.Commit()
}

// GetSession retrieves a session by ID.
func (s *SessionStore) GetSession(ctx context.Context, id string) (*domain.ChatSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, created_at, updated_at FROM sessions WHERE id = ?
	`, id)

	var session domain.ChatSession
	err := row.Scan(&session.ID, &session.Title, &session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return &session, nil
}

// ListSessions returns all sessions, most recently updated first.
func (s *SessionStore) ListSessions(ctx context.Context) ([]domain.ChatSession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ChatSession
	for rows.Next() {
		var session domain.ChatSession
		if err := rows.Scan(&session.ID, &session.Title, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// ListExchanges returns a session's exchanges in insertion order.
func (s *SessionStore) ListExchanges(ctx context.Context, sessionID string) ([]domain.Exchange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, question, answer, used_fallback, created_at
		FROM exchanges WHERE session_id = ? ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []domain.Exchange
	for rows.Next() {
		var (
			ex       domain.Exchange
			fallback int
		)
		if err := rows.Scan(&ex.ID, &ex.SessionID, &ex.Question, &ex.Answer, &fallback, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}
		ex.UsedFallback = fallback != 0
		exchanges = append(exchanges, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchanges: %w", err)
	}
	return exchanges, nil
}

// DeleteSession removes a session and its exchanges.
func (s *SessionStore) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
