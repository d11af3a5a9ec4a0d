package tutor

import (
	"context"
	"log"
	"time"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/contract"
)

// SummaryTruncationLimit bounds interaction summaries written into the
// tutoring session state.
const SummaryTruncationLimit = 200

// ProgressTracker folds observed performance into the durable learner
// model. Metrics are blended with incremental averages so one bad session
// never erases history.
type ProgressTracker struct {
	profiles contract.LearnerProfileRepository
	logger   *log.Logger
}

func NewProgressTracker(profiles contract.LearnerProfileRepository, logger *log.Logger) *ProgressTracker {
	return &ProgressTracker{profiles: profiles, logger: logger}
}

// RecordPerformance blends one observation into the profile's running
// metrics. Negative inputs are ignored per-metric. Guests update in memory
// only.
func (t *ProgressTracker) RecordPerformance(ctx context.Context, profile *entity.LearnerProfile, accuracy, responseTime, completion float64) error {
	n := profile.TotalSessions
	if accuracy >= 0 {
		profile.AccuracyRate = entity.ApplyIncrementalAverage(profile.AccuracyRate, n, accuracy)
	}
	if responseTime >= 0 {
		profile.AvgResponseTime = entity.ApplyIncrementalAverage(profile.AvgResponseTime, n, responseTime)
	}
	if completion >= 0 {
		profile.CompletionRate = entity.ApplyIncrementalAverage(profile.CompletionRate, n, completion)
	}
	profile.TotalSessions++

	return t.persist(ctx, profile)
}

// RecordStruggle appends a struggle topic once.
func (t *ProgressTracker) RecordStruggle(ctx context.Context, profile *entity.LearnerProfile, topic string) error {
	if topic == "" || contains(profile.Struggles, topic) {
		return nil
	}
	profile.Struggles = append(profile.Struggles, topic)
	return t.persist(ctx, profile)
}

// RecordMastery promotes a topic to mastered and clears it from struggles.
func (t *ProgressTracker) RecordMastery(ctx context.Context, profile *entity.LearnerProfile, topic string) error {
	if topic == "" {
		return nil
	}
	if !contains(profile.MasteredTopics, topic) {
		profile.MasteredTopics = append(profile.MasteredTopics, topic)
	}
	profile.Struggles = remove(profile.Struggles, topic)
	return t.persist(ctx, profile)
}

// RecordStyleEffectiveness blends one effectiveness observation into the
// stored preference for the style, creating it on first use.
func (t *ProgressTracker) RecordStyleEffectiveness(ctx context.Context, profile *entity.LearnerProfile, style string, effectiveness float64) error {
	for i, pref := range profile.PreferredExplanationStyles {
		if pref.Style == style {
			profile.PreferredExplanationStyles[i].Effectiveness =
				entity.ApplyIncrementalAverage(pref.Effectiveness, profile.TotalSessions, effectiveness)
			return t.persist(ctx, profile)
		}
	}
	profile.PreferredExplanationStyles = append(profile.PreferredExplanationStyles,
		entity.ExplanationStylePreference{Style: style, Effectiveness: effectiveness})
	return t.persist(ctx, profile)
}

func (t *ProgressTracker) persist(ctx context.Context, profile *entity.LearnerProfile) error {
	if profile.GuestSession {
		return nil
	}
	now := time.Now()
	profile.UpdatedAt = &now
	if err := t.profiles.Update(ctx, profile); err != nil {
		t.logger.Printf("[ERROR] Failed to persist learner profile %s: %v", profile.Id, err)
		return err
	}
	return nil
}

// TruncateSummary bounds a text for the session state interaction history.
func TruncateSummary(text string) string {
	runes := []rune(text)
	if len(runes) <= SummaryTruncationLimit {
		return text
	}
	return string(runes[:SummaryTruncationLimit])
}

func contains(items []string, item string) bool {
	for _, v := range items {
		if v == item {
			return true
		}
	}
	return false
}

func remove(items []string, item string) []string {
	out := items[:0]
	for _, v := range items {
		if v != item {
			out = append(out, v)
		}
	}
	return out
}
