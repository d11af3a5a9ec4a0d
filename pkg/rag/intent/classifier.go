package intent

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

// Intent is the binary classification of an utterance.
type Intent struct {
	Type       string  `json:"intent_type"` // "action" | "query"
	Confidence float64 `json:"confidence"`  // 0.0-1.0
	Details    string  `json:"details"`
}

const (
	TypeAction = "action"
	TypeQuery  = "query"
)

// Classifier performs pure LLM-based intent classification. Ambiguity never
// fails the request: anything unparseable or below the confidence threshold
// degrades to the query path.
type Classifier struct {
	llmProvider llm.LLMProvider
	threshold   float64
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, threshold float64, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		threshold:   threshold,
		logger:      logger,
	}
}

// Classify analyzes the utterance and returns a gated intent. Callers must
// short-circuit empty input themselves; Classify assumes a non-empty string.
func (c *Classifier) Classify(ctx context.Context, utterance string) *Intent {
	prompt := fmt.Sprintf(constant.IntentClassifierPrompt, utterance)

	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[ERROR] Intent classification failed: %v", err)
		return c.gate(&Intent{Confidence: 0.0, Details: "No JSON found or invalid LLM output."})
	}

	parsed, err := parseIntent(response)
	if err != nil {
		c.logger.Printf("[WARN] Intent parsing failed: %v", err)
		return c.gate(&Intent{Confidence: 0.0, Details: "No JSON found or invalid LLM output."})
	}

	gated := c.gate(parsed)
	c.logger.Printf("[INTENT] %q -> %s (confidence %.2f)", truncate(utterance, 60), gated.Type, gated.Confidence)
	return gated
}

// gate forces the safe default when the type is missing or confidence is
// below the threshold, regardless of what the provider returned.
func (c *Classifier) gate(in *Intent) *Intent {
	if in.Type == "" || in.Confidence < c.threshold {
		return &Intent{
			Type:       TypeQuery,
			Confidence: in.Confidence,
			Details:    "Intent was ambiguous. Routed to general chat for user clarification.",
		}
	}
	return in
}

func parseIntent(response string) (*Intent, error) {
	jsonContent := parse.ExtractFirstJSONObject(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var intent Intent
	if err := json.Unmarshal([]byte(jsonContent), &intent); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	intent.Type = strings.ToLower(strings.TrimSpace(intent.Type))
	if intent.Type != TypeAction && intent.Type != TypeQuery {
		intent.Type = ""
	}
	return &intent, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
