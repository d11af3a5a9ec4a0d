package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"edu-assistant-be/internal/constant"
	"edu-assistant-be/pkg/llm"
	"edu-assistant-be/pkg/rag/parse"
)

// Query routes. content_agent is both a real route and the gated fallback:
// ambiguity degrades to the most general conversational path.
const (
	RouteQA            = "qa"
	RouteSummarization = "summarization"
	RouteContentAgent  = "content_agent"
	RouteTutorAgent    = "tutor_agent" // reached only by delegation, never routed directly
)

var queryVocabulary = map[string]bool{
	RouteQA:            true,
	RouteSummarization: true,
	RouteContentAgent:  true,
}

// QueryRequest is the typed result handed to the dispatcher.
type QueryRequest struct {
	Route      string  `json:"route"`
	Confidence float64 `json:"confidence"`
	Details    string  `json:"details,omitempty"`
}

// QueryRouter maps a knowledge-intent utterance onto a closed route set,
// with the same confidence gate as the intent classifier.
type QueryRouter struct {
	llmProvider llm.LLMProvider
	threshold   float64
	logger      *log.Logger
}

func NewQueryRouter(llmProvider llm.LLMProvider, threshold float64, logger *log.Logger) *QueryRouter {
	return &QueryRouter{
		llmProvider: llmProvider,
		threshold:   threshold,
		logger:      logger,
	}
}

func (r *QueryRouter) Route(ctx context.Context, utterance string) *QueryRequest {
	prompt := fmt.Sprintf(constant.QueryRouterPrompt, utterance)

	response, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		r.logger.Printf("[ERROR] Query routing failed: %v", err)
		return r.fallback(0.0)
	}

	req, err := parseQueryRequest(response)
	if err != nil {
		r.logger.Printf("[WARN] Query parsing failed: %v", err)
		return r.fallback(0.0)
	}

	if req.Route == "" || !queryVocabulary[req.Route] || req.Confidence < r.threshold {
		return r.fallback(req.Confidence)
	}

	r.logger.Printf("[QUERY] %q -> %s (confidence %.2f)", utterance, req.Route, req.Confidence)
	return req
}

func (r *QueryRouter) fallback(confidence float64) *QueryRequest {
	return &QueryRequest{
		Route:      RouteContentAgent,
		Confidence: confidence,
		Details:    "Query type ambiguous. Routed to general chat.",
	}
}

func parseQueryRequest(response string) (*QueryRequest, error) {
	jsonContent := parse.ExtractFirstJSONObject(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var req QueryRequest
	if err := json.Unmarshal([]byte(jsonContent), &req); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	req.Route = strings.ToLower(strings.TrimSpace(req.Route))
	return &req, nil
}
