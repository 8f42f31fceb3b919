package driven

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// Extractor converts one binary document format to plain text.
// Each extractor handles a single domain.Format.
type Extractor interface {
	// Format returns the format this extractor handles.
	Format() domain.Format

	// Extract converts raw file bytes to plain text. An empty result is
	// not an error; the caller substitutes a placeholder.
	Extract(ctx context.Context, path string, data []byte) (string, error)
}

// ExtractorRegistry dispatches a file to the extractor for its format.
type ExtractorRegistry interface {
	// Extract detects the file's format by extension and runs the
	// matching extractor. Returns domain.ErrUnsupportedFormat before
	// dispatch for unknown extensions, and *domain.ExtractionError when
	// the extractor itself fails. Empty extractor output is replaced by
	// domain.EmptyTextPlaceholder.
	Extract(ctx context.Context, path string, data []byte) (string, error)
}
