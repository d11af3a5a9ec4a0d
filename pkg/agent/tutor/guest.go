package tutor

import (
	"regexp"
	"strconv"
	"strings"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/pkg/language"

	"github.com/google/uuid"
)

// Guest profile defaults. Observed metrics start at population-typical
// values so incremental averages behave from the first interaction.
const (
	guestDefaultGrade      = 8
	guestDefaultAccuracy   = 0.7
	guestDefaultRespTime   = 15.0
	guestDefaultCompletion = 0.8
)

var explicitGradeRe = regexp.MustCompile(`(?i)(?:(\d{1,2})(?:st|nd|rd|th)?\s+grade|grade\s+(\d{1,2}))`)

// gradeBands are scanned in order; the first hit wins.
var gradeBands = []struct {
	grade    int
	keywords []string
}{
	{1, []string{"kindergarten", "kinder"}},
	{4, []string{"elementary", "primary school"}},
	{8, []string{"middle school", "algebra", "pre-algebra"}},
	{11, []string{"high school", "ap ", "calculus", "trigonometry"}},
	{16, []string{"university", "college", "theoretical", "undergraduate"}},
}

var styleCues = []struct {
	style    string
	keywords []string
}{
	{"Visual", []string{"visual", "diagram", "picture", "draw", "show me"}},
	{"Auditory", []string{"listen", "hear", "sound", "tell me about", "talk me through"}},
	{"Kinesthetic", []string{"hands-on", "hands on", "practice", "try it", "exercise"}},
	{"Analytical", []string{"why", "prove", "logic", "analyze", "derive"}},
	{"Creative", []string{"story", "imagine", "creative", "fun way"}},
}

var (
	easyCues        = []string{"easy", "simple", "basic", "confused", "confusing", "struggling", "don't understand", "lost"}
	challengingCues = []string{"challenging", "advanced", "rigorous", "hard problem"}
	elementaryCues  = []string{"elementary", "simple", "basic"}
)

// styleToExplanation maps a learning style to the explanation style that
// serves it best.
var styleToExplanation = map[string]string{
	"Visual":      StyleVisual,
	"Auditory":    StyleDetailed,
	"Kinesthetic": StyleInteractive,
	"Analytical":  StyleStepByStep,
	"Creative":    StyleAnalogy,
	"Mixed":       StyleSimplified,
}

// InferGuestProfile builds a synthetic learner profile from a single
// utterance. Pure function: same query, same profile shape (the id aside).
// Guest profiles are never persisted.
func InferGuestProfile(query string) *entity.LearnerProfile {
	lower := strings.ToLower(query)

	style := inferLearningStyle(lower)
	profile := &entity.LearnerProfile{
		Id:                   uuid.New(),
		Grade:                inferGrade(lower),
		LearningStyle:        style,
		PreferredLanguage:    language.Detect(query),
		DifficultyPreference: inferDifficulty(lower),
		AccuracyRate:         guestDefaultAccuracy,
		AvgResponseTime:      guestDefaultRespTime,
		CompletionRate:       guestDefaultCompletion,
		PreferredExplanationStyles: []entity.ExplanationStylePreference{
			{Style: styleToExplanation[style], Effectiveness: 0.9},
			{Style: "encouraging", Effectiveness: 0.8},
		},
		GuestSession: true,
	}
	return profile
}

func inferGrade(lower string) int {
	if m := explicitGradeRe.FindStringSubmatch(lower); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 16 {
			return n
		}
	}

	for _, band := range gradeBands {
		for _, kw := range band.keywords {
			if strings.Contains(lower, kw) {
				return band.grade
			}
		}
	}

	// Fractions skew middle school unless the phrasing reads elementary.
	if strings.Contains(lower, "fraction") {
		for _, cue := range elementaryCues {
			if strings.Contains(lower, cue) {
				return 4
			}
		}
		return 8
	}

	return guestDefaultGrade
}

func inferLearningStyle(lower string) string {
	for _, cue := range styleCues {
		for _, kw := range cue.keywords {
			if strings.Contains(lower, kw) {
				return cue.style
			}
		}
	}
	return "Mixed"
}

func inferDifficulty(lower string) string {
	for _, kw := range easyCues {
		if strings.Contains(lower, kw) {
			return DifficultyEasy
		}
	}
	for _, kw := range challengingCues {
		if strings.Contains(lower, kw) {
			return DifficultyChallenging
		}
	}
	return DifficultyMedium
}
