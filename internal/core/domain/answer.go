package domain

// RankedPassage is a paragraph scored by the fallback search. Ephemeral:
// recomputed on every fallback invocation, never persisted.
type RankedPassage struct {
	// Text is the paragraph content.
	Text string

	// DocumentName is the name of the document the paragraph came from.
	DocumentName string

	// Score is the heuristic relevance score. Higher is better. The
	// ranking is best-effort, not a relevance guarantee.
	Score float64
}
