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

// Explanation styles.
const (
	StyleSimplified  = "simplified"
	StyleDetailed    = "detailed"
	StyleAnalogy     = "analogy"
	StyleStepByStep  = "step-by-step"
	StyleVisual      = "visual"
	StyleInteractive = "interactive"
	StylePractical   = "practical"
)

var explanationStyles = map[string]bool{
	StyleSimplified:  true,
	StyleDetailed:    true,
	StyleAnalogy:     true,
	StyleStepByStep:  true,
	StyleVisual:      true,
	StyleInteractive: true,
	StylePractical:   true,
}

// explicitStyleCues map query phrasings to a requested style.
var explicitStyleCues = []struct {
	style    string
	keywords []string
}{
	{StyleSimplified, []string{"explain simply", "in simple terms", "like i'm five", "eli5"}},
	{StyleStepByStep, []string{"step by step", "step-by-step", "one step at a time"}},
	{StyleAnalogy, []string{"analogy", "compare it to", "metaphor"}},
	{StyleVisual, []string{"visually", "with a diagram", "draw it", "picture it"}},
	{StyleDetailed, []string{"in detail", "detailed explanation", "thoroughly", "in depth"}},
	{StyleInteractive, []string{"interactively", "quiz me", "ask me questions"}},
	{StylePractical, []string{"practical example", "real world", "real-world", "in practice"}},
}

var struggleCues = []string{"confused", "struggling", "don't understand", "don't get it", "lost", "stuck"}

// ExplanationEngine renders topic explanations tuned to a learner profile.
type ExplanationEngine struct {
	llmProvider  llm.LLMProvider
	defaultStyle string
	logger       *log.Logger
}

func NewExplanationEngine(llmProvider llm.LLMProvider, defaultStyle string, logger *log.Logger) *ExplanationEngine {
	if !explanationStyles[defaultStyle] {
		defaultStyle = StyleDetailed
	}
	return &ExplanationEngine{
		llmProvider:  llmProvider,
		defaultStyle: defaultStyle,
		logger:       logger,
	}
}

// SelectStyle resolves the explanation style. Precedence, highest first:
// explicit request, stored preference, struggle signal, grade, learning
// style, engine default.
func (e *ExplanationEngine) SelectStyle(profile *entity.LearnerProfile, query string) string {
	lower := strings.ToLower(query)

	for _, cue := range explicitStyleCues {
		for _, kw := range cue.keywords {
			if strings.Contains(lower, kw) {
				return cue.style
			}
		}
	}

	if style := bestStoredStyle(profile); style != "" {
		return style
	}

	for _, kw := range struggleCues {
		if strings.Contains(lower, kw) {
			return StyleSimplified
		}
	}

	if profile.Grade > 0 {
		switch {
		case profile.Grade <= 5:
			return StyleSimplified
		case profile.Grade <= 10:
			return StyleStepByStep
		default:
			return StyleDetailed
		}
	}

	if style, ok := styleToExplanation[profile.LearningStyle]; ok && explanationStyles[style] {
		return style
	}

	return e.defaultStyle
}

// Explain generates a styled explanation of the topic.
func (e *ExplanationEngine) Explain(ctx context.Context, profile *entity.LearnerProfile, query string) (string, error) {
	style := e.SelectStyle(profile, query)
	prompt := fmt.Sprintf(constant.ExplanationPrompt, ProfileSummary(profile), style, query)

	response, err := e.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.5))
	if err != nil {
		e.logger.Printf("[ERROR] Explanation generation failed: %v", err)
		return "", err
	}

	e.logger.Printf("[TUTOR] Explanation generated (style=%s, grade=%d)", style, profile.Grade)
	return strings.TrimSpace(response), nil
}

// bestStoredStyle returns the highest-effectiveness stored preference that
// is a known explanation style.
func bestStoredStyle(profile *entity.LearnerProfile) string {
	best := ""
	bestScore := 0.0
	for _, pref := range profile.PreferredExplanationStyles {
		if explanationStyles[pref.Style] && pref.Effectiveness > bestScore {
			best = pref.Style
			bestScore = pref.Effectiveness
		}
	}
	return best
}

// ProfileSummary renders the learner facts the prompts need.
func ProfileSummary(profile *entity.LearnerProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grade: %d. Learning style: %s. Preferred language: %s. Difficulty preference: %s.",
		profile.Grade, profile.LearningStyle, profile.PreferredLanguage, profile.DifficultyPreference)
	if len(profile.Struggles) > 0 {
		fmt.Fprintf(&b, " Struggles with: %s.", strings.Join(profile.Struggles, ", "))
	}
	if len(profile.MasteredTopics) > 0 {
		fmt.Fprintf(&b, " Mastered: %s.", strings.Join(profile.MasteredTopics, ", "))
	}
	return b.String()
}
