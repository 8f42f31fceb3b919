package driving

import "context"

// Answer is the result of answering one question.
type Answer struct {
	// Text is the final answer string.
	Text string

	// UsedFallback is true when the answer came from the keyword search
	// rather than the completion service.
	UsedFallback bool

	// ContextDocuments lists the names of the documents that supplied
	// the answer context, in the order they were used.
	ContextDocuments []string
}

// AnswerService answers natural-language questions from the ingested
// documents.
type AnswerService interface {
	// Answer runs the two-tier pipeline for one question. The sessionID
	// is optional: when non-empty the exchange is recorded there, and a
	// persistence failure does not affect the returned answer.
	//
	// Errors are returned only for request-level preconditions: an empty
	// store (domain.ErrNoDocuments) or an unresolved mention
	// (*domain.NoMatchingDocumentError). Completion failures never
	// surface; they trigger the fallback.
	Answer(ctx context.Context, question, sessionID string) (*Answer, error)
}
