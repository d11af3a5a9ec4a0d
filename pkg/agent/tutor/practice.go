package tutor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"edu-assistant-be/internal/constant"
	"edu-assistant-be/internal/entity"
	"edu-assistant-be/pkg/llm"
)

// Practice difficulties. "hard" is accepted as an alias for challenging in
// stored preferences.
const (
	DifficultyEasy        = "easy"
	DifficultyMedium      = "medium"
	DifficultyChallenging = "challenging"
)

var practiceDifficulties = map[string]string{
	DifficultyEasy:        DifficultyEasy,
	DifficultyMedium:      DifficultyMedium,
	DifficultyChallenging: DifficultyChallenging,
	"hard":                DifficultyChallenging,
}

var explicitDifficultyCues = []struct {
	difficulty string
	keywords   []string
}{
	{DifficultyEasy, []string{"easy problems", "something easy", "easy practice", "warm up", "warm-up"}},
	{DifficultyChallenging, []string{"challenging", "hard problems", "something hard", "advanced", "rigorous"}},
	{DifficultyMedium, []string{"medium difficulty", "moderate"}},
}

// PracticeGenerator produces practice problems tuned to a learner profile.
type PracticeGenerator struct {
	llmProvider       llm.LLMProvider
	defaultDifficulty string
	logger            *log.Logger
}

func NewPracticeGenerator(llmProvider llm.LLMProvider, defaultDifficulty string, logger *log.Logger) *PracticeGenerator {
	if _, ok := practiceDifficulties[defaultDifficulty]; !ok {
		defaultDifficulty = DifficultyMedium
	}
	return &PracticeGenerator{
		llmProvider:       llmProvider,
		defaultDifficulty: defaultDifficulty,
		logger:            logger,
	}
}

// SelectDifficulty resolves the practice difficulty with the same
// precedence chain as explanation styles: explicit request, stored
// preference, struggle signal, grade, learning style, generator default.
func (g *PracticeGenerator) SelectDifficulty(profile *entity.LearnerProfile, query string) string {
	lower := strings.ToLower(query)

	for _, cue := range explicitDifficultyCues {
		for _, kw := range cue.keywords {
			if strings.Contains(lower, kw) {
				return cue.difficulty
			}
		}
	}

	if d, ok := practiceDifficulties[profile.DifficultyPreference]; ok {
		return d
	}

	for _, kw := range struggleCues {
		if strings.Contains(lower, kw) {
			return DifficultyEasy
		}
	}

	if profile.Grade > 0 {
		switch {
		case profile.Grade <= 5:
			return DifficultyEasy
		case profile.Grade >= 11:
			return DifficultyChallenging
		default:
			return DifficultyMedium
		}
	}

	if profile.LearningStyle == "Analytical" {
		return DifficultyChallenging
	}

	return g.defaultDifficulty
}

// Generate produces practice problems for the topic.
func (g *PracticeGenerator) Generate(ctx context.Context, profile *entity.LearnerProfile, query string) (string, error) {
	difficulty := g.SelectDifficulty(profile, query)
	prompt := fmt.Sprintf(constant.PracticePrompt, ProfileSummary(profile), difficulty, query)

	response, err := g.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.5))
	if err != nil {
		g.logger.Printf("[ERROR] Practice generation failed: %v", err)
		return "", err
	}

	g.logger.Printf("[TUTOR] Practice generated (difficulty=%s, grade=%d)", difficulty, profile.Grade)
	return strings.TrimSpace(response), nil
}
