package tutor

import (
	"log"
	"os"
	"testing"

	"edu-assistant-be/internal/entity"
)

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func profileWith(mutate func(*entity.LearnerProfile)) *entity.LearnerProfile {
	p := &entity.LearnerProfile{
		Grade:                8,
		LearningStyle:        "Mixed",
		PreferredLanguage:    "English",
		DifficultyPreference: "",
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func TestSelectStylePrecedence(t *testing.T) {
	engine := NewExplanationEngine(nil, StyleDetailed, testLogger())

	tests := []struct {
		name    string
		profile *entity.LearnerProfile
		query   string
		want    string
	}{
		{
			name: "explicit request beats stored preference",
			profile: profileWith(func(p *entity.LearnerProfile) {
				p.PreferredExplanationStyles = []entity.ExplanationStylePreference{{Style: StyleDetailed, Effectiveness: 0.95}}
			}),
			query: "explain this step by step",
			want:  StyleStepByStep,
		},
		{
			name: "stored preference beats struggle signal",
			profile: profileWith(func(p *entity.LearnerProfile) {
				p.PreferredExplanationStyles = []entity.ExplanationStylePreference{{Style: StyleAnalogy, Effectiveness: 0.9}}
			}),
			query: "I'm confused about osmosis",
			want:  StyleAnalogy,
		},
		{
			name: "highest effectiveness stored preference wins",
			profile: profileWith(func(p *entity.LearnerProfile) {
				p.PreferredExplanationStyles = []entity.ExplanationStylePreference{
					{Style: StyleDetailed, Effectiveness: 0.6},
					{Style: StyleVisual, Effectiveness: 0.8},
				}
			}),
			query: "what is osmosis",
			want:  StyleVisual,
		},
		{
			name:    "struggle signal beats grade",
			profile: profileWith(func(p *entity.LearnerProfile) { p.Grade = 12 }),
			query:   "I'm struggling with osmosis",
			want:    StyleSimplified,
		},
		{
			name:    "low grade derives simplified",
			profile: profileWith(func(p *entity.LearnerProfile) { p.Grade = 3 }),
			query:   "what is osmosis",
			want:    StyleSimplified,
		},
		{
			name:    "middle grade derives step-by-step",
			profile: profileWith(nil),
			query:   "what is osmosis",
			want:    StyleStepByStep,
		},
		{
			name:    "high grade derives detailed",
			profile: profileWith(func(p *entity.LearnerProfile) { p.Grade = 14 }),
			query:   "what is osmosis",
			want:    StyleDetailed,
		},
		{
			name: "learning style derives when grade unknown",
			profile: profileWith(func(p *entity.LearnerProfile) {
				p.Grade = 0
				p.LearningStyle = "Kinesthetic"
			}),
			query: "what is osmosis",
			want:  StyleInteractive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.SelectStyle(tt.profile, tt.query); got != tt.want {
				t.Errorf("SelectStyle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectStyleGlobalDefault(t *testing.T) {
	engine := NewExplanationEngine(nil, StylePractical, testLogger())
	profile := profileWith(func(p *entity.LearnerProfile) {
		p.Grade = 0
		p.LearningStyle = ""
	})

	if got := engine.SelectStyle(profile, "what is osmosis"); got != StylePractical {
		t.Errorf("SelectStyle = %q, want configured default", got)
	}
}

func TestSelectDifficultyPrecedence(t *testing.T) {
	gen := NewPracticeGenerator(nil, DifficultyMedium, testLogger())

	tests := []struct {
		name    string
		profile *entity.LearnerProfile
		query   string
		want    string
	}{
		{
			name:    "explicit request beats stored preference",
			profile: profileWith(func(p *entity.LearnerProfile) { p.DifficultyPreference = DifficultyEasy }),
			query:   "give me challenging problems",
			want:    DifficultyChallenging,
		},
		{
			name:    "stored preference beats struggle signal",
			profile: profileWith(func(p *entity.LearnerProfile) { p.DifficultyPreference = DifficultyChallenging }),
			query:   "I'm confused, give me practice",
			want:    DifficultyChallenging,
		},
		{
			name:    "hard alias maps to challenging",
			profile: profileWith(func(p *entity.LearnerProfile) { p.DifficultyPreference = "hard" }),
			query:   "practice please",
			want:    DifficultyChallenging,
		},
		{
			name:    "struggle signal beats grade",
			profile: profileWith(func(p *entity.LearnerProfile) { p.Grade = 12 }),
			query:   "I'm struggling, give me practice",
			want:    DifficultyEasy,
		},
		{
			name:    "low grade derives easy",
			profile: profileWith(func(p *entity.LearnerProfile) { p.Grade = 2 }),
			query:   "practice please",
			want:    DifficultyEasy,
		},
		{
			name:    "high grade derives challenging",
			profile: profileWith(func(p *entity.LearnerProfile) { p.Grade = 12 }),
			query:   "practice please",
			want:    DifficultyChallenging,
		},
		{
			name: "analytical style derives challenging when grade unknown",
			profile: profileWith(func(p *entity.LearnerProfile) {
				p.Grade = 0
				p.LearningStyle = "Analytical"
			}),
			query: "practice please",
			want:  DifficultyChallenging,
		},
		{
			name: "default when nothing applies",
			profile: profileWith(func(p *entity.LearnerProfile) {
				p.Grade = 0
				p.LearningStyle = ""
			}),
			query: "practice please",
			want:  DifficultyMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gen.SelectDifficulty(tt.profile, tt.query); got != tt.want {
				t.Errorf("SelectDifficulty = %q, want %q", got, tt.want)
			}
		})
	}
}
