package content

import (
	"context"
	"log"
	"strings"

	"edu-assistant-be/internal/constant"
	"edu-assistant-be/pkg/llm"
	"edu-assistant-be/pkg/rag/answer"
	"edu-assistant-be/pkg/store"
)

// tutoringIndicators mark a conversational query as a learning request
// worth delegating to the tutor.
var tutoringIndicators = []string{
	"explain", "teach", "learn", "understand", "help me with",
	"math", "algebra", "fraction", "geometry", "equation",
	"practice", "quiz", "homework", "step by step",
	"confused", "struggling", "don't get", "tutor",
}

// KnowledgePipeline answers from the session's document corpus.
type KnowledgePipeline interface {
	Answer(ctx context.Context, state *store.SessionState, query string) (string, error)
}

// TutorDelegate receives queries the content agent classifies as tutoring.
type TutorDelegate interface {
	Handle(ctx context.Context, state *store.SessionState, query string) (string, error)
}

// Agent is the general conversational route. Tutoring-flavored queries are
// delegated down the hierarchy; everything else is answered from the
// session corpus when possible and from plain conversation otherwise.
type Agent struct {
	pipeline    KnowledgePipeline
	tutor       TutorDelegate
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewAgent(pipeline KnowledgePipeline, tutor TutorDelegate, llmProvider llm.LLMProvider, logger *log.Logger) *Agent {
	return &Agent{
		pipeline:    pipeline,
		tutor:       tutor,
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (a *Agent) Handle(ctx context.Context, state *store.SessionState, query string) (string, error) {
	if IsTutoringQuery(query) {
		a.logger.Printf("[CONTENT] Delegating to tutor agent: %q", query)
		return a.tutor.Handle(ctx, state, query)
	}

	grounded, err := a.pipeline.Answer(ctx, state, query)
	if err != nil {
		return "", err
	}
	if grounded != constant.MsgNoDocuments && grounded != constant.MsgLowRelevance {
		return grounded, nil
	}

	// Nothing useful in the corpus: fall back to plain conversation.
	return a.chat(ctx, state, query)
}

func (a *Agent) chat(ctx context.Context, state *store.SessionState, query string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: "You are a friendly educational assistant. Keep answers short and honest. Reply in the language of the question."},
	}
	if history := answer.FormatHistory(state.History); history != "None" {
		messages = append(messages, llm.Message{Role: "system", Content: "Recent conversation:\n" + history})
	}
	messages = append(messages, llm.Message{Role: "user", Content: query})

	response, err := a.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.7))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// IsTutoringQuery reports whether the query matches the tutoring indicator
// table.
func IsTutoringQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, indicator := range tutoringIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
