package domain

import "time"

// ChatSession is a persisted conversation. Sessions outlive the process;
// they are the only durable state the engine keeps.
type ChatSession struct {
	// ID is the unique session identifier.
	ID string

	// Title is a short display title, derived from the first question.
	Title string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// UpdatedAt is when the last exchange was appended.
	UpdatedAt time.Time
}

// Exchange is one question/answer pair within a session.
type Exchange struct {
	// ID is the unique exchange identifier.
	ID string

	// SessionID links to the owning ChatSession.
	SessionID string

	// Question is the user's question as asked.
	Question string

	// Answer is the produced answer text.
	Answer string

	// UsedFallback records whether the answer came from the keyword
	// fallback rather than the completion service.
	UsedFallback bool

	// CreatedAt is when the exchange was recorded.
	CreatedAt time.Time
}
