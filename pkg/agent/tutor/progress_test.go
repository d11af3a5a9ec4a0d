package tutor

import (
	"context"
	"math"
	"testing"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/specification"
)

type fakeProfileRepo struct {
	updated int
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *entity.LearnerProfile) error { return nil }
func (f *fakeProfileRepo) Update(ctx context.Context, p *entity.LearnerProfile) error {
	f.updated++
	return nil
}
func (f *fakeProfileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearnerProfile, error) {
	return nil, nil
}

var _ contract.LearnerProfileRepository = (*fakeProfileRepo)(nil)

func TestRecordPerformanceBlendsIncrementally(t *testing.T) {
	repo := &fakeProfileRepo{}
	tracker := NewProgressTracker(repo, testLogger())

	profile := &entity.LearnerProfile{
		AccuracyRate:    0.7,
		AvgResponseTime: 15.0,
		CompletionRate:  0.8,
		TotalSessions:   4,
	}

	if err := tracker.RecordPerformance(context.Background(), profile, 0.9, 10.0, 1.0); err != nil {
		t.Fatalf("record: %v", err)
	}

	// (0.7*4 + 0.9) / 5 = 0.74
	if math.Abs(profile.AccuracyRate-0.74) > 1e-9 {
		t.Errorf("AccuracyRate = %v, want 0.74", profile.AccuracyRate)
	}
	// (15*4 + 10) / 5 = 14
	if math.Abs(profile.AvgResponseTime-14.0) > 1e-9 {
		t.Errorf("AvgResponseTime = %v, want 14.0", profile.AvgResponseTime)
	}
	if profile.TotalSessions != 5 {
		t.Errorf("TotalSessions = %d, want 5", profile.TotalSessions)
	}
	if repo.updated != 1 {
		t.Errorf("repo updates = %d, want 1", repo.updated)
	}
}

func TestRecordPerformanceSkipsGuestPersistence(t *testing.T) {
	repo := &fakeProfileRepo{}
	tracker := NewProgressTracker(repo, testLogger())

	profile := &entity.LearnerProfile{GuestSession: true, TotalSessions: 0, AccuracyRate: 0.7}
	if err := tracker.RecordPerformance(context.Background(), profile, 1.0, -1, -1); err != nil {
		t.Fatalf("record: %v", err)
	}

	if repo.updated != 0 {
		t.Error("guest profile must never be persisted")
	}
	// Only accuracy was observed; the negative metrics stay untouched.
	if math.Abs(profile.AccuracyRate-1.0) > 1e-9 {
		t.Errorf("AccuracyRate = %v, want 1.0", profile.AccuracyRate)
	}
}

func TestRecordMasteryClearsStruggle(t *testing.T) {
	tracker := NewProgressTracker(&fakeProfileRepo{}, testLogger())
	profile := &entity.LearnerProfile{GuestSession: true, Struggles: []string{"fractions", "decimals"}}
	ctx := context.Background()

	if err := tracker.RecordMastery(ctx, profile, "fractions"); err != nil {
		t.Fatalf("mastery: %v", err)
	}

	if len(profile.MasteredTopics) != 1 || profile.MasteredTopics[0] != "fractions" {
		t.Errorf("MasteredTopics = %v", profile.MasteredTopics)
	}
	if len(profile.Struggles) != 1 || profile.Struggles[0] != "decimals" {
		t.Errorf("Struggles = %v", profile.Struggles)
	}
}

func TestRecordStruggleIsIdempotent(t *testing.T) {
	tracker := NewProgressTracker(&fakeProfileRepo{}, testLogger())
	profile := &entity.LearnerProfile{GuestSession: true}
	ctx := context.Background()

	tracker.RecordStruggle(ctx, profile, "fractions")
	tracker.RecordStruggle(ctx, profile, "fractions")

	if len(profile.Struggles) != 1 {
		t.Errorf("Struggles = %v, want single entry", profile.Struggles)
	}
}

func TestRecordStyleEffectivenessBlends(t *testing.T) {
	tracker := NewProgressTracker(&fakeProfileRepo{}, testLogger())
	profile := &entity.LearnerProfile{
		GuestSession:  true,
		TotalSessions: 1,
		PreferredExplanationStyles: []entity.ExplanationStylePreference{
			{Style: StyleVisual, Effectiveness: 0.6},
		},
	}
	ctx := context.Background()

	// (0.6*1 + 1.0) / 2 = 0.8
	tracker.RecordStyleEffectiveness(ctx, profile, StyleVisual, 1.0)
	if math.Abs(profile.PreferredExplanationStyles[0].Effectiveness-0.8) > 1e-9 {
		t.Errorf("Effectiveness = %v, want 0.8", profile.PreferredExplanationStyles[0].Effectiveness)
	}

	// Unknown style is created as-is.
	tracker.RecordStyleEffectiveness(ctx, profile, StyleAnalogy, 0.5)
	if len(profile.PreferredExplanationStyles) != 2 {
		t.Fatalf("styles = %+v", profile.PreferredExplanationStyles)
	}
}
