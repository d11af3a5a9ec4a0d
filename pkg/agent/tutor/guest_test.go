package tutor

import (
	"testing"

	"edu-assistant-be/pkg/language"
)

func TestInferGuestProfileGrade(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantGrade int
	}{
		{"explicit ordinal grade wins", "I'm in 3rd grade and confused about fractions", 3},
		{"explicit grade N form", "help a grade 7 student with algebra", 7},
		{"kindergarten band", "my kindergarten kid needs counting help", 1},
		{"elementary band", "elementary science question", 4},
		{"algebra implies middle school", "solve this algebra equation", 8},
		{"calculus implies high school", "I need calculus derivatives explained", 11},
		{"university band", "university level theoretical physics", 16},
		{"fraction defaults to middle school", "how do fractions work", 8},
		{"fraction with simple cue reads elementary", "simple fractions please", 4},
		{"no cues falls back to default", "tell me about photosynthesis", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferGuestProfile(tt.query)
			if got.Grade != tt.wantGrade {
				t.Errorf("Grade = %d, want %d", got.Grade, tt.wantGrade)
			}
		})
	}
}

func TestInferGuestProfileStyleAndDifficulty(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantStyle      string
		wantDifficulty string
	}{
		{"visual cue", "show me a diagram of the water cycle", "Visual", DifficultyMedium},
		{"kinesthetic cue", "I want hands-on practice", "Kinesthetic", DifficultyMedium},
		{"analytical cue", "prove why this works", "Analytical", DifficultyMedium},
		{"creative cue", "tell it as a story", "Creative", DifficultyMedium},
		{"struggle forces easy", "I'm struggling with this", "Mixed", DifficultyEasy},
		{"easy cue", "keep it easy please", "Mixed", DifficultyEasy},
		{"basic cue", "just the basic idea", "Mixed", DifficultyEasy},
		{"confusing cue", "this topic is confusing", "Mixed", DifficultyEasy},
		{"advanced forces challenging", "give me advanced material", "Mixed", DifficultyChallenging},
		{"no cues", "photosynthesis", "Mixed", DifficultyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferGuestProfile(tt.query)
			if got.LearningStyle != tt.wantStyle {
				t.Errorf("LearningStyle = %q, want %q", got.LearningStyle, tt.wantStyle)
			}
			if got.DifficultyPreference != tt.wantDifficulty {
				t.Errorf("DifficultyPreference = %q, want %q", got.DifficultyPreference, tt.wantDifficulty)
			}
		})
	}
}

func TestInferGuestProfileLanguage(t *testing.T) {
	if got := InferGuestProfile("¿puedes explicar las fracciones?").PreferredLanguage; got != language.Spanish {
		t.Errorf("PreferredLanguage = %q, want Spanish", got)
	}
	if got := InferGuestProfile("اشرح لي الكسور").PreferredLanguage; got != language.Arabic {
		t.Errorf("PreferredLanguage = %q, want Arabic", got)
	}
	if got := InferGuestProfile("explain fractions").PreferredLanguage; got != language.English {
		t.Errorf("PreferredLanguage = %q, want English", got)
	}
}

func TestInferGuestProfileDefaultsAndPurity(t *testing.T) {
	a := InferGuestProfile("tell me about photosynthesis")
	b := InferGuestProfile("tell me about photosynthesis")

	if !a.GuestSession {
		t.Error("guest profile must carry GuestSession=true")
	}
	if a.AccuracyRate != 0.7 || a.AvgResponseTime != 15.0 || a.CompletionRate != 0.8 {
		t.Errorf("defaults = %.2f/%.1f/%.2f", a.AccuracyRate, a.AvgResponseTime, a.CompletionRate)
	}
	if len(a.PreferredExplanationStyles) != 2 {
		t.Fatalf("expected 2 seeded style preferences, got %d", len(a.PreferredExplanationStyles))
	}
	if a.PreferredExplanationStyles[0].Effectiveness != 0.9 || a.PreferredExplanationStyles[1].Effectiveness != 0.8 {
		t.Errorf("seeded effectiveness = %+v", a.PreferredExplanationStyles)
	}
	if a.PreferredExplanationStyles[1].Style != "encouraging" {
		t.Errorf("second seeded style = %q", a.PreferredExplanationStyles[1].Style)
	}

	// Pure inference: identical inputs yield identical profiles except ids.
	a.Id = b.Id
	if a.Grade != b.Grade || a.LearningStyle != b.LearningStyle ||
		a.DifficultyPreference != b.DifficultyPreference || a.PreferredLanguage != b.PreferredLanguage {
		t.Error("inference is not deterministic for identical input")
	}
}
