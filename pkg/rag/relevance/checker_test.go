package relevance

import (
	"testing"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/pkg/rag/retriever"
)

func passages(scores ...float64) []*retriever.RetrievedPassage {
	out := make([]*retriever.RetrievedPassage, len(scores))
	for i, s := range scores {
		out[i] = &retriever.RetrievedPassage{
			Chunk:    &entity.DocumentChunk{Content: "chunk"},
			Score:    s,
			Distance: 1 - s,
		}
	}
	return out
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name         string
		threshold    float64
		topN         int
		scores       []float64
		wantRelevant bool
		wantCount    int
		wantBest     float64
	}{
		{
			name:         "empty retrieval is never relevant",
			threshold:    0.3,
			topN:         5,
			scores:       nil,
			wantRelevant: false,
		},
		{
			name:         "best below threshold fails the gate",
			threshold:    0.4,
			topN:         5,
			scores:       []float64{0.35, 0.2},
			wantRelevant: false,
			wantBest:     0.35,
		},
		{
			name:         "best at threshold passes",
			threshold:    0.3,
			topN:         5,
			scores:       []float64{0.3},
			wantRelevant: true,
			wantCount:    1,
			wantBest:     0.3,
		},
		{
			name:         "top-N trims the tail",
			threshold:    0.3,
			topN:         2,
			scores:       []float64{0.9, 0.8, 0.7, 0.6},
			wantRelevant: true,
			wantCount:    2,
			wantBest:     0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(tt.threshold, tt.topN)
			got := c.Check(passages(tt.scores...))

			if got.Relevant != tt.wantRelevant {
				t.Fatalf("Relevant = %v, want %v", got.Relevant, tt.wantRelevant)
			}
			if len(got.Passages) != tt.wantCount {
				t.Errorf("len(Passages) = %d, want %d", len(got.Passages), tt.wantCount)
			}
			if got.BestScore != tt.wantBest {
				t.Errorf("BestScore = %v, want %v", got.BestScore, tt.wantBest)
			}
		})
	}
}

func TestCheckSortsDescending(t *testing.T) {
	c := NewChecker(0.1, 5)
	got := c.Check(passages(0.2, 0.9, 0.5))

	if !got.Relevant {
		t.Fatal("expected relevant result")
	}
	for i := 1; i < len(got.Passages); i++ {
		if got.Passages[i].Score > got.Passages[i-1].Score {
			t.Errorf("passages not sorted descending at index %d", i)
		}
	}
}

func TestCheckDoesNotMutateInput(t *testing.T) {
	in := passages(0.2, 0.9)
	NewChecker(0.1, 5).Check(in)
	if in[0].Score != 0.2 || in[1].Score != 0.9 {
		t.Error("input slice order changed")
	}
}
