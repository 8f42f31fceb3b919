package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension the engine does not
	// ingest. It is a skip signal, not a failure: callers ignore the file.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNoDocuments indicates the store holds no documents at all.
	// Request-level and user-visible; no completion or fallback is attempted.
	ErrNoDocuments = errors.New("no documents available")

	// ErrCompletionUnavailable indicates no completion service is
	// configured. The answer pipeline degrades to fallback search.
	ErrCompletionUnavailable = errors.New("completion service unavailable")
)

// ExtractionError wraps a failure from a format extractor. The affected
// file is skipped and logged; ingestion continues for remaining files.
type ExtractionError struct {
	// FileName is the file that failed to extract.
	FileName string

	// Cause is the underlying extractor failure.
	Cause error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.FileName, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NoMatchingDocumentError indicates an @mention resolved to zero documents.
// Request-level and user-visible; the pipeline must not fall through to
// full-corpus context.
type NoMatchingDocumentError struct {
	// Target is the mention token that matched nothing.
	Target string
}

// Error implements the error interface.
func (e *NoMatchingDocumentError) Error() string {
	return fmt.Sprintf("no document matching %q", e.Target)
}

// RateLimitError indicates the completion provider rejected a request
// with HTTP 429. RetryAfterSeconds carries the provider's Retry-After
// hint; zero when the response had none.
type RateLimitError struct {
	RetryAfterSeconds int
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfterSeconds > 0 {
		return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfterSeconds)
	}
	return "rate limited"
}

// CompletionError wraps a failure of the generative completion call
// (network, non-success status, malformed response, timeout). It is routine:
// the pipeline silently falls back to keyword search and never surfaces it.
type CompletionError struct {
	// Cause is the underlying transport or decode failure.
	Cause error
}

// Error implements the error interface.
func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *CompletionError) Unwrap() error {
	return e.Cause
}
