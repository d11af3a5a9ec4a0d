package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"edu-assistant-be/internal/constant"
	"edu-assistant-be/pkg/llm"
	"edu-assistant-be/pkg/rag/parse"
	"edu-assistant-be/pkg/store"
)

// Mode selects the answer output shape.
type Mode string

const (
	ModeText         Mode = "text"
	ModeJSON         Mode = "json"
	ModeLearningUnit Mode = "learning_unit"
)

// historyWindow is how many recent exchanges are replayed into the prompt.
const historyWindow = 6

// StructuredAnswer is the ModeJSON payload.
type StructuredAnswer struct {
	Response          string   `json:"response"`
	SourcesReferenced []string `json:"sources_referenced"`
	Confidence        string   `json:"confidence"`
}

// UnitSection is one titled block of a learning unit.
type UnitSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// LearningUnit is the ModeLearningUnit payload.
type LearningUnit struct {
	Title        string        `json:"title"`
	Introduction string        `json:"introduction"`
	Sections     []UnitSection `json:"sections"`
	Summary      string        `json:"summary"`
	Difficulty   string        `json:"difficulty"`
}

// Answer holds exactly one of the three shapes, selected by Mode.
type Answer struct {
	Mode       Mode
	Text       string
	Structured *StructuredAnswer
	Unit       *LearningUnit
}

// Request carries everything the generator needs for one answer. Template
// must have three %s slots in order: context, history, question.
type Request struct {
	Template string
	Question string
	Context  string
	History  []store.HistoryEntry
	Mode     Mode
}

// Generator produces grounded answers from assembled context. It never
// returns an error to the caller: provider and parse failures degrade to a
// mode-appropriate fallback payload.
type Generator struct {
	llm    llm.LLMProvider
	logger *log.Logger
}

func NewGenerator(provider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{llm: provider, logger: logger}
}

func (g *Generator) Generate(ctx context.Context, req Request) *Answer {
	template := req.Template
	if template == "" {
		template = constant.GroundedAnswerPrompt
	}

	prompt := fmt.Sprintf(template, req.Context, FormatHistory(req.History), req.Question)
	switch req.Mode {
	case ModeJSON:
		prompt += constant.JSONAnswerInstruction
	case ModeLearningUnit:
		prompt += constant.LearningUnitInstruction
	}

	raw, err := g.llm.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		g.logger.Printf("[ERROR] Answer generation failed (mode=%s): %v", req.Mode, err)
		return g.fallback(req.Mode, fmt.Sprintf("I encountered an error while processing your question: %v", err))
	}

	switch req.Mode {
	case ModeJSON:
		return g.parseStructured(raw)
	case ModeLearningUnit:
		return g.parseUnit(raw)
	default:
		return &Answer{Mode: ModeText, Text: strings.TrimSpace(raw)}
	}
}

func (g *Generator) parseStructured(raw string) *Answer {
	if blob := parse.ExtractFirstJSONObject(raw); blob != "" {
		var s StructuredAnswer
		if err := json.Unmarshal([]byte(blob), &s); err == nil && s.Response != "" {
			return &Answer{Mode: ModeJSON, Structured: &s}
		}
	}
	g.logger.Printf("[GENERATION] Structured answer parse failed, wrapping raw output")
	return &Answer{Mode: ModeJSON, Structured: &StructuredAnswer{
		Response:          strings.TrimSpace(raw),
		SourcesReferenced: []string{},
		Confidence:        "low",
	}}
}

func (g *Generator) parseUnit(raw string) *Answer {
	if blob := parse.ExtractFirstJSONObject(raw); blob != "" {
		var u LearningUnit
		if err := json.Unmarshal([]byte(blob), &u); err == nil && u.Title != "" {
			return &Answer{Mode: ModeLearningUnit, Unit: &u}
		}
	}
	g.logger.Printf("[GENERATION] Learning unit parse failed, using fallback unit")
	return &Answer{Mode: ModeLearningUnit, Unit: &LearningUnit{
		Title:        "Error in Processing",
		Introduction: strings.TrimSpace(raw),
		Sections:     []UnitSection{},
		Summary:      "",
		Difficulty:   "medium",
	}}
}

func (g *Generator) fallback(mode Mode, message string) *Answer {
	switch mode {
	case ModeJSON:
		return &Answer{Mode: ModeJSON, Structured: &StructuredAnswer{
			Response:          message,
			SourcesReferenced: []string{},
			Confidence:        "low",
		}}
	case ModeLearningUnit:
		return &Answer{Mode: ModeLearningUnit, Unit: &LearningUnit{
			Title:        "Error in Processing",
			Introduction: message,
			Sections:     []UnitSection{},
			Difficulty:   "medium",
		}}
	default:
		return &Answer{Mode: ModeText, Text: message}
	}
}

// FormatHistory renders the most recent exchanges as "User:"/"Assistant:"
// lines for prompt replay. Empty history renders as "None".
func FormatHistory(history []store.HistoryEntry) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(history))
	for _, h := range history {
		prefix := "User"
		if h.Role == "assistant" {
			prefix = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", prefix, h.Content))
	}
	return strings.Join(lines, "\n")
}
