package services

import (
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Resolution is the outcome of resolving a MentionQuery against the store.
type Resolution struct {
	// Query is the parsed question.
	Query domain.MentionQuery

	// Matches holds every record whose name contains the target,
	// in store enumeration (ingest sequence) order. Empty when the
	// question has no mention.
	Matches []domain.DocumentRecord
}

// Targeted returns the record that will supply the context when the
// question named a document. With multiple matches the first in store
// enumeration order wins; this is documented behaviour, not a best-match
// heuristic.
func (r Resolution) Targeted() *domain.DocumentRecord {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// ResolveMention parses the question's @mention and matches it against
// the snapshot by case-insensitive substring on record names.
//
// Returns *domain.NoMatchingDocumentError when a mention is present but
// nothing matches; the caller must surface a "not found" answer and must
// not fall through to full-corpus context.
func ResolveMention(question string, snapshot []domain.DocumentRecord) (Resolution, error) {
	query := domain.ParseMention(question)
	res := Resolution{Query: query}

	if !query.HasTarget() {
		return res, nil
	}

	needle := strings.ToLower(query.Target)
	for _, rec := range snapshot {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			res.Matches = append(res.Matches, rec)
		}
	}

	if len(res.Matches) == 0 {
		return res, &domain.NoMatchingDocumentError{Target: query.Target}
	}
	if len(res.Matches) > 1 {
		logger.Warn("mention %q matched %d documents, using %q",
			query.Target, len(res.Matches), res.Matches[0].Name)
	}
	return res, nil
}
