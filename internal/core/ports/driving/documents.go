package driving

import (
	"context"
	"time"
)

// DocumentInfo is a read-only view of one ingested document.
type DocumentInfo struct {
	// Name is the file name, including extension.
	Name string

	// Characters is the length of the extracted text.
	Characters int

	// IngestedAt is when the document entered the store.
	IngestedAt time.Time
}

// DocumentService exposes the ingested corpus to transport adapters.
type DocumentService interface {
	// ListDocuments returns all ingested documents in ingestion order.
	ListDocuments(ctx context.Context) []DocumentInfo
}
