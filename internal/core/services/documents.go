package services

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes the in-memory corpus to transport adapters.
type DocumentService struct {
	store driven.DocumentStore
}

// NewDocumentService creates a document service over the given store.
func NewDocumentService(store driven.DocumentStore) *DocumentService {
	return &DocumentService{store: store}
}

// ListDocuments returns all ingested documents in ingestion order.
func (s *DocumentService) ListDocuments(_ context.Context) []driving.DocumentInfo {
	records := s.store.Snapshot()
	infos := make([]driving.DocumentInfo, len(records))
	for i, rec := range records {
		infos[i] = driving.DocumentInfo{
			Name:       rec.Name,
			Characters: len(rec.Text),
			IngestedAt: rec.IngestedAt,
		}
	}
	return infos
}
