package mcp

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer       *driving.Answer
	err          error
	lastQuestion string
	lastSession  string
}

func (m *mockAnswerService) Answer(_ context.Context, question, sessionID string) (*driving.Answer, error) {
	m.lastQuestion = question
	m.lastSession = sessionID
	return m.answer, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	infos []driving.DocumentInfo
}

func (m *mockDocumentService) ListDocuments(_ context.Context) []driving.DocumentInfo {
	return m.infos
}

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	state driving.IngestState
}

func (m *mockIngestor) Bootstrap(_ context.Context) {}
func (m *mockIngestor) Run(_ context.Context)       {}
func (m *mockIngestor) State() driving.IngestState  { return m.state }
