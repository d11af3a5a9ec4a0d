package content

import (
	"context"
	"log"
	"os"
	"testing"

	"edu-assistant-be/internal/constant"
	"edu-assistant-be/pkg/llm"
	"edu-assistant-be/pkg/store"
)

type fakePipeline struct {
	answer string
	calls  int
}

func (f *fakePipeline) Answer(ctx context.Context, state *store.SessionState, query string) (string, error) {
	f.calls++
	return f.answer, nil
}

type fakeTutor struct {
	calls int
}

func (f *fakeTutor) Handle(ctx context.Context, state *store.SessionState, query string) (string, error) {
	f.calls++
	return "tutor answer", nil
}

type fakeLLM struct {
	response string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.response, nil
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestHandleDelegatesTutoringQueries(t *testing.T) {
	pipeline := &fakePipeline{answer: "grounded"}
	tutor := &fakeTutor{}
	agent := NewAgent(pipeline, tutor, &fakeLLM{}, testLogger())

	got, err := agent.Handle(context.Background(), &store.SessionState{}, "can you explain fractions to me?")
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if got != "tutor answer" {
		t.Errorf("answer = %q", got)
	}
	if tutor.calls != 1 {
		t.Errorf("tutor calls = %d, want 1", tutor.calls)
	}
	if pipeline.calls != 0 {
		t.Errorf("pipeline should not run for delegated queries, calls = %d", pipeline.calls)
	}
}

func TestHandleAnswersFromCorpus(t *testing.T) {
	pipeline := &fakePipeline{answer: "grounded answer"}
	agent := NewAgent(pipeline, &fakeTutor{}, &fakeLLM{response: "chat answer"}, testLogger())

	got, err := agent.Handle(context.Background(), &store.SessionState{}, "what does the document say about water?")
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got != "grounded answer" {
		t.Errorf("answer = %q", got)
	}
}

func TestHandleFallsBackToChat(t *testing.T) {
	tests := []struct {
		name     string
		pipeline string
	}{
		{"no documents", constant.MsgNoDocuments},
		{"low relevance", constant.MsgLowRelevance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := NewAgent(&fakePipeline{answer: tt.pipeline}, &fakeTutor{}, &fakeLLM{response: "chat answer"}, testLogger())

			got, err := agent.Handle(context.Background(), &store.SessionState{}, "how was your day?")
			if err != nil {
				t.Fatalf("handle: %v", err)
			}
			if got != "chat answer" {
				t.Errorf("answer = %q, want plain chat fallback", got)
			}
		})
	}
}

func TestIsTutoringQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"can you teach me algebra", true},
		{"I'm struggling with this homework", true},
		{"explain photosynthesis step by step", true},
		{"what's the weather like", false},
		{"summarize the second chapter", false},
	}

	for _, tt := range tests {
		if got := IsTutoringQuery(tt.query); got != tt.want {
			t.Errorf("IsTutoringQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
