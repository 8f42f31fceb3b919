package driven

import "github.com/custodia-labs/docqa-cli/internal/core/domain"

// DocumentStore holds the extracted documents in memory. It is mutated
// only by the ingestion service and read concurrently by request handlers.
// A record exists iff its source file currently exists on disk with a
// supported extension and was processed.
type DocumentStore interface {
	// Replace atomically removes every record whose Name equals
	// record.Name and inserts record under the next ingest sequence.
	// Concurrent Replace calls for one filename always leave exactly one
	// record. Returns the stored record with its assigned sequence.
	Replace(record domain.DocumentRecord) domain.DocumentRecord

	// RemoveByFileName removes the most recent record (highest ingest
	// sequence) whose Name equals name. Returns false if no record matched.
	RemoveByFileName(name string) bool

	// Snapshot returns a consistent point-in-time copy of all records,
	// ordered by ascending ingest sequence. Concurrent upserts never
	// expose a partial record.
	Snapshot() []domain.DocumentRecord

	// Len returns the number of records.
	Len() int

	// IsEmpty reports whether the store holds no records.
	IsEmpty() bool
}
