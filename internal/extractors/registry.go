package extractors

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches a file to the extractor for its format.
type Registry struct {
	byFormat map[domain.Format]driven.Extractor
}

// NewRegistry creates a registry over the given extractors.
// Later extractors for the same format replace earlier ones.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byFormat: make(map[domain.Format]driven.Extractor)}
	for _, e := range extractors {
		r.byFormat[e.Format()] = e
	}
	return r
}

// Extract detects the file's format by extension and runs the matching
// extractor. Unsupported extensions are rejected before dispatch with
// domain.ErrUnsupportedFormat; extractor failures are wrapped in
// *domain.ExtractionError. Empty extractor output is replaced by
// domain.EmptyTextPlaceholder so the file still appears downstream as a
// known-but-empty document.
func (r *Registry) Extract(ctx context.Context, path string, data []byte) (string, error) {
	format := domain.DetectFormat(path)
	if format == domain.FormatUnsupported {
		return "", domain.ErrUnsupportedFormat
	}

	extractor, ok := r.byFormat[format]
	if !ok {
		return "", domain.ErrUnsupportedFormat
	}

	text, err := extractor.Extract(ctx, path, data)
	if err != nil {
		return "", &domain.ExtractionError{FileName: filepath.Base(path), Cause: err}
	}

	if strings.TrimSpace(text) == "" {
		return domain.EmptyTextPlaceholder, nil
	}
	return text, nil
}
