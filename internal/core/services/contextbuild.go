package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// documentSeparator joins document texts in whole-corpus context.
const documentSeparator = "\n\n"

// AssembledContext is the text handed to the answer stage together with
// the names of the documents it came from.
type AssembledContext struct {
	// Text is the context string, truncated to the requested budget.
	Text string

	// DocumentNames lists the contributing documents in order of use.
	DocumentNames []string
}

// AssembleContext builds the answer context: the targeted document's text
// when resolution produced a target, otherwise the concatenation of every
// snapshot record's text in enumeration order, blank-line separated.
//
// maxChars bounds the context size; zero or negative means unbounded (the
// fallback search runs locally and can afford the whole corpus, while the
// completion call cannot). Returns domain.ErrNoDocuments when there is
// nothing to assemble.
func AssembleContext(res Resolution, snapshot []domain.DocumentRecord, maxChars int) (AssembledContext, error) {
	if target := res.Targeted(); target != nil {
		return AssembledContext{
			Text:          truncate(target.Text, maxChars),
			DocumentNames: []string{target.Name},
		}, nil
	}

	if len(snapshot) == 0 {
		return AssembledContext{}, domain.ErrNoDocuments
	}

	var builder strings.Builder
	names := make([]string, 0, len(snapshot))
	for i, rec := range snapshot {
		if i > 0 {
			builder.WriteString(documentSeparator)
		}
		builder.WriteString(rec.Text)
		names = append(names, rec.Name)
	}

	return AssembledContext{
		Text:          truncate(builder.String(), maxChars),
		DocumentNames: names,
	}, nil
}

func truncate(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	// Back off to a rune boundary so truncation never splits a character.
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
