package mcp

import (
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer answers questions against the ingested documents.
	Answer driving.AnswerService

	// Documents exposes the ingested corpus.
	Documents driving.DocumentService

	// Ingest reports ingestion state.
	Ingest driving.Ingestor
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	// Documents and Ingest are optional
	return nil
}
