package cli

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// stubAnswerService is a canned driving.AnswerService for command tests.
type stubAnswerService struct {
	answer       *driving.Answer
	err          error
	lastQuestion string
	lastSession  string
}

func (s *stubAnswerService) Answer(_ context.Context, question, sessionID string) (*driving.Answer, error) {
	s.lastQuestion = question
	s.lastSession = sessionID
	return s.answer, s.err
}

// stubDocumentService is a canned driving.DocumentService for command tests.
type stubDocumentService struct {
	infos []driving.DocumentInfo
}

func (s *stubDocumentService) ListDocuments(_ context.Context) []driving.DocumentInfo {
	return s.infos
}

// stubIngestor is a no-op driving.Ingestor for command tests.
type stubIngestor struct {
	bootstraps int
}

func (s *stubIngestor) Bootstrap(_ context.Context) { s.bootstraps++ }
func (s *stubIngestor) Run(_ context.Context)       {}
func (s *stubIngestor) State() driving.IngestState  { return driving.IngestIdle }

// setupTestServices injects stub services into the package-level wiring so
// commands run without touching the filesystem. Returns a cleanup that
// restores the previous state.
func setupTestServices(answer *stubAnswerService, docs *stubDocumentService) func() {
	prevAnswer := answerService
	prevDocs := documentService
	prevIngest := ingestService

	answerService = answer
	documentService = docs
	ingestService = &stubIngestor{}

	return func() {
		answerService = prevAnswer
		documentService = prevDocs
		ingestService = prevIngest
	}
}
