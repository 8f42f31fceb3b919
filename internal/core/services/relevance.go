package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Fallback scoring parameters. The ranking is a best-effort heuristic,
// not a relevance guarantee.
const (
	// minKeywordLen: question words this short carry no signal.
	minKeywordLen = 4

	// minParagraphLen: paragraphs shorter than this are discarded.
	minParagraphLen = 30

	// densityNumerator drives the short-paragraph density bonus.
	densityNumerator = 500.0

	// headingBonus rewards paragraphs that look like section headings.
	headingBonus = 2.0

	// headingMinLen / headingMaxLen bound what can count as a heading.
	headingMinLen = 20
	headingMaxLen = 200

	// topPassages is how many ranked passages the fallback answer cites.
	topPassages = 5
)

// ExtractKeywords tokenizes the cleaned question into lowercase words
// longer than minKeywordLen-1 characters, deduplicated.
func ExtractKeywords(question string) []string {
	fields := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	var keywords []string
	for _, f := range fields {
		if len(f) < minKeywordLen {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		keywords = append(keywords, f)
	}
	return keywords
}

// RankPassages splits every document into paragraphs on blank-line
// boundaries and scores each against the keywords. Scored paragraphs are
// returned across all documents, descending by score; ties preserve
// encounter order. At most topPassages results are returned.
func RankPassages(snapshot []domain.DocumentRecord, keywords []string) []domain.RankedPassage {
	if len(keywords) == 0 {
		return nil
	}

	var ranked []domain.RankedPassage
	for _, rec := range snapshot {
		for _, para := range splitParagraphs(rec.Text) {
			score, matches := scoreParagraph(para, keywords)
			if matches == 0 {
				continue
			}
			ranked = append(ranked, domain.RankedPassage{
				Text:         para,
				DocumentName: rec.Name,
				Score:        score,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topPassages {
		ranked = ranked[:topPassages]
	}
	logger.Debug("fallback ranked %d passages from %d keywords", len(ranked), len(keywords))
	return ranked
}

// splitParagraphs breaks text on blank lines, trims each paragraph and
// discards those shorter than minParagraphLen.
func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, chunk := range strings.Split(normalized, "\n\n") {
		para := strings.TrimSpace(chunk)
		if len(para) < minParagraphLen {
			continue
		}
		paragraphs = append(paragraphs, para)
	}
	return paragraphs
}

// scoreParagraph computes the heuristic score for one paragraph:
// the distinct-keyword match count, an exponential bonus 2^(n-1) when
// more than one keyword matches, a density bonus favouring short
// keyword-dense paragraphs, and a fixed bonus for heading-like paragraphs.
func scoreParagraph(paragraph string, keywords []string) (score float64, matches int) {
	lower := strings.ToLower(paragraph)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	if matches == 0 {
		return 0, 0
	}

	score = float64(matches)
	if matches > 1 {
		score += float64(int(1) << (matches - 1))
		score += densityNumerator / float64(len(paragraph)+1)
	}
	if looksLikeHeading(paragraph) {
		score += headingBonus
	}
	return score, matches
}

// looksLikeHeading reports whether a short paragraph resembles a section
// heading: it contains a colon or two consecutive uppercase letters.
func looksLikeHeading(paragraph string) bool {
	if len(paragraph) < headingMinLen || len(paragraph) > headingMaxLen {
		return false
	}
	if strings.Contains(paragraph, ":") {
		return true
	}
	prev := false
	for _, r := range paragraph {
		upper := unicode.IsUpper(r)
		if upper && prev {
			return true
		}
		prev = upper
	}
	return false
}
