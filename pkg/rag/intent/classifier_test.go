package intent

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"edu-assistant-be/pkg/llm"
)

// fakeLLM returns a canned response or error for every call.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		response       string
		err            error
		wantType       string
		wantConfidence float64
	}{
		{
			name:           "confident action",
			response:       `{"intent_type": "action", "confidence": 0.92, "details": "open command"}`,
			wantType:       TypeAction,
			wantConfidence: 0.92,
		},
		{
			name:           "arabic open command is an action",
			response:       "Classification:\n{\"intent_type\": \"action\", \"confidence\": 0.88, \"details\": \"افتح = open\"}",
			wantType:       TypeAction,
			wantConfidence: 0.88,
		},
		{
			name:           "low confidence forces query",
			response:       `{"intent_type": "action", "confidence": 0.45}`,
			wantType:       TypeQuery,
			wantConfidence: 0.45,
		},
		{
			name:           "missing type forces query",
			response:       `{"confidence": 0.99}`,
			wantType:       TypeQuery,
			wantConfidence: 0.99,
		},
		{
			name:           "unknown type value forces query",
			response:       `{"intent_type": "navigation", "confidence": 0.9}`,
			wantType:       TypeQuery,
			wantConfidence: 0.9,
		},
		{
			name:           "unparseable output forces query",
			response:       "I think the user wants to chat.",
			wantType:       TypeQuery,
			wantConfidence: 0.0,
		},
		{
			name:           "provider error forces query",
			err:            errors.New("connection refused"),
			wantType:       TypeQuery,
			wantConfidence: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&fakeLLM{response: tt.response, err: tt.err}, 0.6, testLogger())
			got := c.Classify(context.Background(), "افتح الفيزياء")

			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestGateKeepsDetailsOnFallback(t *testing.T) {
	c := NewClassifier(&fakeLLM{response: `{"intent_type": "", "confidence": 0.2}`}, 0.6, testLogger())
	got := c.Classify(context.Background(), "hmm")
	if got.Details == "" {
		t.Error("expected an explanatory note on the fallback intent")
	}
}
