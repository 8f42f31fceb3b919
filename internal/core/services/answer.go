package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// Defaults for the completion leg of the pipeline.
const (
	// DefaultCompletionContextChars bounds the context embedded in the
	// completion prompt. The fallback search is unbounded: it runs locally.
	DefaultCompletionContextChars = 12000

	// DefaultCompletionTimeout bounds the external completion call so a
	// slow service cannot stall the fallback path.
	DefaultCompletionTimeout = 60 * time.Second

	// DefaultMaxTokens is the completion generation cap.
	DefaultMaxTokens = 1024
)

// NoMatchMessage is returned when the fallback finds no keyword matches.
const NoMatchMessage = "I could not find any matching information in the ingested documents."

// apologyMessage is the last-resort degraded answer for an unexpected
// internal failure in the fallback stage.
const apologyMessage = "Sorry, something went wrong while searching your documents. Please try again."

// Embedded prompt defaults, used when no PromptStore is configured.
const (
	defaultSystemPrompt = `You are a document assistant. Answer the user's question using ONLY the provided document context. If the context does not contain the answer, say so. Do not invent information.`

	defaultUserPrompt = `Context:
%s

Question: %s`
)

// AnswerService runs the two-tier answer pipeline: a generative
// completion attempt over the assembled context, falling back to the
// deterministic keyword/paragraph search when the completion fails.
type AnswerService struct {
	docStore     driven.DocumentStore
	completion   driven.CompletionService
	promptStore  driven.PromptStore
	sessionStore driven.SessionStore

	contextChars      int
	completionTimeout time.Duration
}

// NewAnswerService creates the answer pipeline. The completion, prompt
// and session stores are optional: a nil completion service means every
// answer comes from the fallback search, and a nil session store disables
// exchange persistence.
func NewAnswerService(
	docStore driven.DocumentStore,
	completion driven.CompletionService,
	promptStore driven.PromptStore,
	sessionStore driven.SessionStore,
) *AnswerService {
	return &AnswerService{
		docStore:          docStore,
		completion:        completion,
		promptStore:       promptStore,
		sessionStore:      sessionStore,
		contextChars:      DefaultCompletionContextChars,
		completionTimeout: DefaultCompletionTimeout,
	}
}

// SetContextBudget overrides the completion context character budget.
func (s *AnswerService) SetContextBudget(chars int) {
	if chars > 0 {
		s.contextChars = chars
	}
}

// SetCompletionTimeout overrides the completion call timeout.
func (s *AnswerService) SetCompletionTimeout(d time.Duration) {
	if d > 0 {
		s.completionTimeout = d
	}
}

// Answer runs the pipeline for one question.
//
// Only precondition violations surface as errors: an empty store
// (domain.ErrNoDocuments) or an unresolved mention
// (*domain.NoMatchingDocumentError). A failing completion call is routine
// and silently drives the fallback; an unexpected internal failure in the
// fallback yields a generic apology answer, never an error.
func (s *AnswerService) Answer(ctx context.Context, question, sessionID string) (*driving.Answer, error) {
	snapshot := s.docStore.Snapshot()
	if len(snapshot) == 0 {
		return nil, domain.ErrNoDocuments
	}

	res, err := ResolveMention(question, snapshot)
	if err != nil {
		return nil, err
	}

	answer := s.answerFromContext(ctx, res, snapshot)

	s.persistExchange(ctx, sessionID, question, answer)
	return answer, nil
}

// answerFromContext runs the completion attempt and, on any failure,
// the fallback search. It always produces an answer.
func (s *AnswerService) answerFromContext(
	ctx context.Context,
	res Resolution,
	snapshot []domain.DocumentRecord,
) *driving.Answer {
	if text, names, ok := s.attemptCompletion(ctx, res, snapshot); ok {
		return &driving.Answer{Text: text, UsedFallback: false, ContextDocuments: names}
	}
	return s.fallbackSearch(res, snapshot)
}

// attemptCompletion assembles the bounded context and calls the
// completion service. A false result means "fall back", regardless of why.
func (s *AnswerService) attemptCompletion(
	ctx context.Context,
	res Resolution,
	snapshot []domain.DocumentRecord,
) (text string, documentNames []string, ok bool) {
	if s.completion == nil {
		logger.Debug("no completion service configured, using fallback")
		return "", nil, false
	}

	assembled, err := AssembleContext(res, snapshot, s.contextChars)
	if err != nil {
		return "", nil, false
	}

	systemPrompt, userPrompt := s.buildPrompts(assembled.Text, res.Query.Cleaned)

	callCtx, cancel := context.WithTimeout(ctx, s.completionTimeout)
	defer cancel()

	out, err := s.completion.Complete(callCtx, systemPrompt, userPrompt, driven.CompleteOptions{
		MaxTokens: DefaultMaxTokens,
	})
	if err != nil {
		// Expected and routine: network, status, parse or timeout.
		logger.Debug("completion failed, falling back: %v", err)
		return "", nil, false
	}

	out = strings.TrimSpace(out)
	if out == "" {
		logger.Debug("completion returned empty text, falling back")
		return "", nil, false
	}
	return out, assembled.DocumentNames, true
}

// buildPrompts loads the prompt templates, falling back to the embedded
// defaults when no store is configured or a template fails to load.
func (s *AnswerService) buildPrompts(contextText, question string) (systemPrompt, userPrompt string) {
	systemPrompt = defaultSystemPrompt
	userTemplate := defaultUserPrompt

	if s.promptStore != nil {
		if p, err := s.promptStore.Load(driven.PromptAnswerSystem); err == nil && p != "" {
			systemPrompt = p
		}
		if p, err := s.promptStore.Load(driven.PromptAnswerUser); err == nil && p != "" {
			userTemplate = p
		}
	}

	return systemPrompt, fmt.Sprintf(userTemplate, contextText, question)
}

// fallbackSearch runs the deterministic keyword/paragraph ranking over
// the targeted document or the whole corpus. An internal panic is the
// only path that degrades to the generic apology.
func (s *AnswerService) fallbackSearch(res Resolution, snapshot []domain.DocumentRecord) (answer *driving.Answer) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("fallback search panicked: %v", r)
			answer = &driving.Answer{Text: apologyMessage, UsedFallback: true}
		}
	}()

	corpus := snapshot
	if target := res.Targeted(); target != nil {
		corpus = []domain.DocumentRecord{*target}
	}

	keywords := ExtractKeywords(res.Query.Cleaned)
	ranked := RankPassages(corpus, keywords)
	if len(ranked) == 0 {
		return &driving.Answer{Text: NoMatchMessage, UsedFallback: true}
	}

	return &driving.Answer{
		Text:             composeFallbackAnswer(ranked),
		UsedFallback:     true,
		ContextDocuments: distinctSources(ranked),
	}
}

// composeFallbackAnswer enumerates the ranked passages with their source
// documents, followed by a summary line of the distinct sources.
func composeFallbackAnswer(ranked []domain.RankedPassage) string {
	var b strings.Builder
	b.WriteString("Here is the most relevant information I found:\n")
	for i, p := range ranked {
		fmt.Fprintf(&b, "\n%d. [%s] %s\n", i+1, p.DocumentName, p.Text)
	}
	b.WriteString("\nSources: ")
	b.WriteString(strings.Join(distinctSources(ranked), ", "))
	return b.String()
}

// distinctSources returns the distinct document names in encounter order.
func distinctSources(ranked []domain.RankedPassage) []string {
	seen := make(map[string]struct{}, len(ranked))
	var names []string
	for _, p := range ranked {
		if _, ok := seen[p.DocumentName]; ok {
			continue
		}
		seen[p.DocumentName] = struct{}{}
		names = append(names, p.DocumentName)
	}
	return names
}

// persistExchange records the answered question in the session store.
// Persistence failure is logged and never affects the returned answer.
func (s *AnswerService) persistExchange(ctx context.Context, sessionID, question string, answer *driving.Answer) {
	if s.sessionStore == nil || sessionID == "" {
		return
	}

	err := s.sessionStore.AppendExchange(ctx, domain.Exchange{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		Question:     question,
		Answer:       answer.Text,
		UsedFallback: answer.UsedFallback,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		logger.Warn("failed to persist exchange in session %s: %v", sessionID, err)
	}
}
