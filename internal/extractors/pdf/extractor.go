// Package pdf extracts text from PDF documents by shelling out to
// pdftotext. The external tool is behind a CommandRunner so tests can
// stub it without a poppler install.
package pdf

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

// Extractor handles PDF documents.
type Extractor struct {
	runner extractors.CommandRunner
}

// New creates a PDF extractor using pdftotext.
func New() *Extractor {
	return &Extractor{runner: extractors.ExecRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
func NewWithRunner(runner extractors.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Format returns the format this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPDF
}

// Extract converts the PDF at path to plain text.
// pdftotext reads the file itself; the raw bytes are unused here.
func (e *Extractor) Extract(ctx context.Context, path string, _ []byte) (string, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
