package domain

import "strings"

// MentionQuery is the parsed form of an incoming question. Ephemeral,
// built once per request.
type MentionQuery struct {
	// Raw is the original question text.
	Raw string

	// Target is the @mention token without the leading '@'.
	// Empty when the question contains no mention.
	Target string

	// Cleaned is the question with the mention token removed and trimmed.
	// Equals Raw (trimmed) when no mention is present.
	Cleaned string
}

// HasTarget reports whether the question named a document.
func (q MentionQuery) HasTarget() bool {
	return q.Target != ""
}

// ParseMention locates the first @token in a question. The token is the
// contiguous non-whitespace run following '@'. The cleaned text has the
// matched "@token" substring removed and surrounding whitespace collapsed
// by a trim.
func ParseMention(question string) MentionQuery {
	q := MentionQuery{Raw: question, Cleaned: strings.TrimSpace(question)}

	at := strings.Index(question, "@")
	if at < 0 {
		return q
	}

	rest := question[at+1:]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if end < 0 {
		end = len(rest)
	}

	token := rest[:end]
	if token == "" {
		// Bare '@' with no token, treat as plain text.
		return q
	}

	q.Target = token
	cleaned := question[:at] + rest[end:]
	q.Cleaned = strings.TrimSpace(strings.Join(strings.Fields(cleaned), " "))
	return q
}
