package answer

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"edu-assistant-be/pkg/llm"
	"edu-assistant-be/pkg/store"
)

type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestGenerateTextMode(t *testing.T) {
	g := NewGenerator(&fakeLLM{response: "  Newton's first law states...  "}, testLogger())
	got := g.Generate(context.Background(), Request{Question: "what is inertia?", Context: "ctx", Mode: ModeText})

	if got.Text != "Newton's first law states..." {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Structured != nil || got.Unit != nil {
		t.Error("text mode must not populate structured payloads")
	}
}

func TestGenerateJSONMode(t *testing.T) {
	response := `Here you go:
{"response": "Inertia is resistance to change in motion.", "sources_referenced": ["Physics Notes"], "confidence": "high"}`
	g := NewGenerator(&fakeLLM{response: response}, testLogger())
	got := g.Generate(context.Background(), Request{Question: "q", Context: "ctx", Mode: ModeJSON})

	if got.Structured == nil {
		t.Fatal("expected structured answer")
	}
	if got.Structured.Confidence != "high" {
		t.Errorf("Confidence = %q", got.Structured.Confidence)
	}
	if len(got.Structured.SourcesReferenced) != 1 {
		t.Errorf("SourcesReferenced = %v", got.Structured.SourcesReferenced)
	}
}

func TestGenerateJSONModeParseFailureWrapsRaw(t *testing.T) {
	g := NewGenerator(&fakeLLM{response: "plain prose, no json"}, testLogger())
	got := g.Generate(context.Background(), Request{Question: "q", Mode: ModeJSON})

	if got.Structured == nil {
		t.Fatal("expected fallback structured answer")
	}
	if got.Structured.Response != "plain prose, no json" {
		t.Errorf("Response = %q", got.Structured.Response)
	}
	if got.Structured.Confidence != "low" {
		t.Errorf("Confidence = %q, want low", got.Structured.Confidence)
	}
}

func TestGenerateLearningUnitMode(t *testing.T) {
	response := `{"title": "Inertia", "introduction": "intro", "sections": [{"heading": "h1", "body": "b1"}], "summary": "sum", "difficulty": "medium"}`
	g := NewGenerator(&fakeLLM{response: response}, testLogger())
	got := g.Generate(context.Background(), Request{Question: "q", Mode: ModeLearningUnit})

	if got.Unit == nil {
		t.Fatal("expected learning unit")
	}
	if got.Unit.Title != "Inertia" || len(got.Unit.Sections) != 1 {
		t.Errorf("unexpected unit: %+v", got.Unit)
	}
}

func TestGenerateLearningUnitParseFailure(t *testing.T) {
	g := NewGenerator(&fakeLLM{response: "not a unit"}, testLogger())
	got := g.Generate(context.Background(), Request{Question: "q", Mode: ModeLearningUnit})

	if got.Unit == nil || got.Unit.Title != "Error in Processing" {
		t.Fatalf("expected fallback unit, got %+v", got.Unit)
	}
}

func TestGenerateProviderError(t *testing.T) {
	g := NewGenerator(&fakeLLM{err: errors.New("connection refused")}, testLogger())
	got := g.Generate(context.Background(), Request{Question: "q", Mode: ModeText})

	if !strings.Contains(got.Text, "I encountered an error while processing your question") {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestGenerateReplaysRecentHistory(t *testing.T) {
	f := &fakeLLM{response: "ok"}
	g := NewGenerator(f, testLogger())

	history := make([]store.HistoryEntry, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, store.HistoryEntry{Role: "user", Content: string(rune('a' + i))})
	}
	g.Generate(context.Background(), Request{Question: "q", History: history, Mode: ModeText})

	if strings.Contains(f.lastPrompt, "User: a") {
		t.Error("prompt contains history older than the replay window")
	}
	if !strings.Contains(f.lastPrompt, "User: j") {
		t.Error("prompt missing most recent history entry")
	}
}

func TestFormatHistory(t *testing.T) {
	if got := FormatHistory(nil); got != "None" {
		t.Errorf("empty history = %q, want None", got)
	}

	got := FormatHistory([]store.HistoryEntry{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	})
	want := "User: hi\nAssistant: hello"
	if got != want {
		t.Errorf("FormatHistory = %q, want %q", got, want)
	}
}
