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

// Action vocabulary. "unknown" is the gated fallback, never an error.
const (
	ActionOpenDoc       = "open_doc"
	ActionCloseDoc      = "close_doc"
	ActionNextSection   = "next_section"
	ActionPrevSection   = "prev_section"
	ActionAddNote       = "add_note"
	ActionOpenNote      = "open_note"
	ActionBookmark      = "bookmark"
	ActionShowBookmarks = "show_bookmarks"
	ActionOpenChat      = "open_chat"
	ActionCloseChat     = "close_chat"
	ActionLocation      = "location"
	ActionUnknown       = "unknown"
)

var actionVocabulary = map[string]bool{
	ActionOpenDoc:       true,
	ActionCloseDoc:      true,
	ActionNextSection:   true,
	ActionPrevSection:   true,
	ActionAddNote:       true,
	ActionOpenNote:      true,
	ActionBookmark:      true,
	ActionShowBookmarks: true,
	ActionOpenChat:      true,
	ActionCloseChat:     true,
	ActionLocation:      true,
	ActionUnknown:       true,
}

// ActionDetails carries the structured arguments the router extracted.
type ActionDetails struct {
	NoteText string `json:"note_text,omitempty"`
	PageNum  *int   `json:"page_num,omitempty"`
	DocTitle string `json:"doc_title,omitempty"`
}

// ActionRequest is the typed result handed to the dispatcher.
type ActionRequest struct {
	Type       string        `json:"type"`
	Confidence float64       `json:"confidence"`
	Details    ActionDetails `json:"details"`
	Message    string        `json:"message,omitempty"` // set on the gated fallback
}

// ActionRouter maps an action-intent utterance onto the closed action
// vocabulary, with the same confidence gate as the intent classifier.
type ActionRouter struct {
	llmProvider llm.LLMProvider
	threshold   float64
	logger      *log.Logger
}

func NewActionRouter(llmProvider llm.LLMProvider, threshold float64, logger *log.Logger) *ActionRouter {
	return &ActionRouter{
		llmProvider: llmProvider,
		threshold:   threshold,
		logger:      logger,
	}
}

func (r *ActionRouter) Route(ctx context.Context, utterance string) *ActionRequest {
	prompt := fmt.Sprintf(constant.ActionRouterPrompt, utterance)

	response, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		r.logger.Printf("[ERROR] Action routing failed: %v", err)
		return r.fallback(0.0)
	}

	req, err := parseActionRequest(response)
	if err != nil {
		r.logger.Printf("[WARN] Action parsing failed: %v", err)
		return r.fallback(0.0)
	}

	if req.Type == "" || !actionVocabulary[req.Type] || req.Confidence < r.threshold {
		return r.fallback(req.Confidence)
	}

	r.logger.Printf("[ACTION] %q -> %s (confidence %.2f)", utterance, req.Type, req.Confidence)
	return req
}

func (r *ActionRouter) fallback(confidence float64) *ActionRequest {
	return &ActionRequest{
		Type:       ActionUnknown,
		Confidence: confidence,
		Message:    "Action type ambiguous or unavailable. Please clarify.",
	}
}

func parseActionRequest(response string) (*ActionRequest, error) {
	jsonContent := parse.ExtractFirstJSONObject(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var req ActionRequest
	if err := json.Unmarshal([]byte(jsonContent), &req); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	return &req, nil
}
