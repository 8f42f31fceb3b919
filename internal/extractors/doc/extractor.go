// Package doc extracts text from legacy word-processor documents by
// shelling out to antiword, mirroring the pdftotext approach for PDF.
package doc

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/extractors"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles legacy .doc documents.
type Extractor struct {
	runner extractors.CommandRunner
}

// New creates a .doc extractor using antiword.
func New() *Extractor {
	return &Extractor{runner: extractors.ExecRunner{}}
}

// NewWithRunner creates a .doc extractor with a custom command runner.
func NewWithRunner(runner extractors.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Format returns the format this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatDoc
}

// Extract converts the document at path to plain text.
func (e *Extractor) Extract(ctx context.Context, path string, _ []byte) (string, error) {
	out, err := e.runner.Run(ctx, "antiword", "-m", "UTF-8.txt", path)
	if err != nil {
		return "", fmt.Errorf("antiword: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
