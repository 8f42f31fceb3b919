// Package memory provides the in-memory document store. The store is a
// derived cache of the watched directory: created empty at process start,
// rebuilt by the bootstrap scan, discarded at shutdown.
package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// A single upsert or remove is atomic from readers' perspective.
type DocumentStore struct {
	mu      sync.RWMutex
	records map[string]domain.DocumentRecord
	nextSeq uint64
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		records: make(map[string]domain.DocumentRecord),
	}
}

// Upsert inserts or replaces a record by ID, keeping the record's own
// sequence. Unlike Replace it never touches other records.
func (s *DocumentStore) Upsert(record domain.DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.Seq > s.nextSeq {
		s.nextSeq = record.Seq
	}
	s.records[record.ID] = record
}

// Replace removes every record whose Name equals record.Name and inserts
// record under the next ingest sequence, all inside one lock. Two racing
// replaces for the same filename can never leave two records behind.
func (s *DocumentStore) Replace(record domain.DocumentRecord) domain.DocumentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.records {
		if rec.Name == record.Name {
			delete(s.records, id)
		}
	}

	s.nextSeq++
	record.Seq = s.nextSeq
	s.records[record.ID] = record
	return record
}

// RemoveByFileName removes the most recent record whose Name equals name.
// Returns false if no record matched.
func (s *DocumentStore) RemoveByFileName(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		found   bool
		bestID  string
		bestSeq uint64
	)
	for id, rec := range s.records {
		if rec.Name != name {
			continue
		}
		if !found || rec.Seq > bestSeq {
			found = true
			bestID = id
			bestSeq = rec.Seq
		}
	}
	if found {
		delete(s.records, bestID)
	}
	return found
}

// Snapshot returns a point-in-time copy of all records, ordered by
// ascending ingest sequence. The copy is safe to read without locking.
func (s *DocumentStore) Snapshot() []domain.DocumentRecord {
	s.mu.RLock()
	out := make([]domain.DocumentRecord, 0, len(s.records))
	for id := range s.records {
		out = append(out, s.records[id])
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// Len returns the number of records.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// IsEmpty reports whether the store holds no records.
func (s *DocumentStore) IsEmpty() bool {
	return s.Len() == 0
}
