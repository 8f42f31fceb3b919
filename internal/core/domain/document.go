package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// EmptyTextPlaceholder is stored when extraction succeeds but yields no
// text, so the file still enumerates as a known-but-empty document.
const EmptyTextPlaceholder = "[no extractable text]"

// DocumentRecord represents one watched file after text extraction.
// Records are non-durable: the filesystem is the source of truth and the
// store is rebuilt from a directory scan on every start.
type DocumentRecord struct {
	// ID is the unique identifier, generated at ingestion time.
	// It is stable for the record's lifetime.
	ID string

	// Seq is the monotonic ingestion sequence number. Combined with Name
	// it disambiguates rapid re-uploads of the same filename.
	Seq uint64

	// Name is the original filename, used for display and mention matching.
	Name string

	// Text is the extracted plain text. Never empty: extraction that
	// yields nothing stores EmptyTextPlaceholder instead.
	Text string

	// IngestedAt is when extraction succeeded.
	IngestedAt time.Time
}

// Format identifies a supported document format.
type Format string

const (
	// FormatPDF is a PDF document.
	FormatPDF Format = "pdf"

	// FormatDoc is a legacy word-processor document.
	FormatDoc Format = "doc"

	// FormatDocx is a modern word-processor document.
	FormatDocx Format = "docx"

	// FormatUnsupported is any extension the engine does not ingest.
	FormatUnsupported Format = ""
)

// DetectFormat maps a filename to its Format by extension, case-insensitive.
// Returns FormatUnsupported for anything the engine should skip.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".doc":
		return FormatDoc
	case ".docx":
		return FormatDocx
	default:
		return FormatUnsupported
	}
}

// Supported reports whether the filename has an ingestible extension.
func Supported(name string) bool {
	return DetectFormat(name) != FormatUnsupported
}
