package tutor

import (
	"context"
	"testing"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/pkg/llm"
	"edu-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type fakeInteractionRepo struct {
	created []*entity.LearnerInteraction
}

func (f *fakeInteractionRepo) Create(ctx context.Context, i *entity.LearnerInteraction) error {
	f.created = append(f.created, i)
	return nil
}
func (f *fakeInteractionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearnerInteraction, error) {
	return f.created, nil
}
func (f *fakeInteractionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.created)), nil
}

var _ contract.LearnerInteractionRepository = (*fakeInteractionRepo)(nil)

type fakeTutorLLM struct {
	response string
}

func (f *fakeTutorLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, nil
}
func (f *fakeTutorLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.response, nil
}

type storedProfileRepo struct {
	fakeProfileRepo
	profile *entity.LearnerProfile
	created []*entity.LearnerProfile
}

func (f *storedProfileRepo) Create(ctx context.Context, p *entity.LearnerProfile) error {
	f.created = append(f.created, p)
	return nil
}

func (f *storedProfileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearnerProfile, error) {
	return f.profile, nil
}

func newTestAgent(profiles contract.LearnerProfileRepository, interactions *fakeInteractionRepo, sessions *fakeSessionRepo) *Agent {
	provider := &fakeTutorLLM{response: "here is your explanation"}
	return NewAgent(
		profiles,
		interactions,
		NewSessionManager(sessions, testLogger()),
		NewExplanationEngine(provider, StyleDetailed, testLogger()),
		NewPracticeGenerator(provider, DifficultyMedium, testLogger()),
		testLogger(),
	)
}

func TestHandleGuestTurn(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	sessions := newFakeSessionRepo()
	agent := newTestAgent(&fakeProfileRepo{}, interactions, sessions)

	state := &store.SessionState{ID: uuid.New().String()} // no learner id: guest
	got, err := agent.Handle(context.Background(), state, "explain fractions simply")
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if got != "here is your explanation" {
		t.Errorf("answer = %q", got)
	}
	if len(sessions.sessions) != 0 {
		t.Error("guest turn persisted a tutoring session")
	}
	if len(interactions.created) != 0 {
		t.Error("guest turn persisted a learner interaction")
	}
	if state.Progress == nil || state.Progress.TotalInteractions != 1 {
		t.Errorf("rolling progress not recorded: %+v", state.Progress)
	}
	if state.Progress.TypeCounts["explanation_count"] != 1 {
		t.Errorf("TypeCounts = %v", state.Progress.TypeCounts)
	}
	if state.TutoringSessionID == uuid.Nil {
		t.Error("session id not written back to state")
	}
}

func TestHandleGuestReusesSessionAcrossTurns(t *testing.T) {
	agent := newTestAgent(&fakeProfileRepo{}, &fakeInteractionRepo{}, newFakeSessionRepo())
	state := &store.SessionState{ID: uuid.New().String()}
	ctx := context.Background()

	if _, err := agent.Handle(ctx, state, "explain fractions"); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	firstSession := state.TutoringSessionID

	if _, err := agent.Handle(ctx, state, "explain decimals"); err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if state.TutoringSessionID != firstSession {
		t.Error("guest session should persist across turns of one conversation")
	}
}

func TestHandleRegisteredLearnerLogsInteraction(t *testing.T) {
	learnerId := uuid.New()
	profiles := &storedProfileRepo{profile: &entity.LearnerProfile{
		Id:            learnerId,
		Grade:         8,
		LearningStyle: "Mixed",
	}}
	interactions := &fakeInteractionRepo{}
	sessions := newFakeSessionRepo()
	agent := newTestAgent(profiles, interactions, sessions)

	state := &store.SessionState{ID: uuid.New().String(), LearnerID: learnerId}
	if _, err := agent.Handle(context.Background(), state, "give me practice problems on fractions"); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sessions.sessions) != 1 {
		t.Fatalf("sessions persisted = %d, want 1", len(sessions.sessions))
	}
	if len(interactions.created) != 1 {
		t.Fatalf("interactions persisted = %d, want 1", len(interactions.created))
	}
	if interactions.created[0].Type != entity.InteractionPractice {
		t.Errorf("interaction type = %q, want practice", interactions.created[0].Type)
	}
}

func TestHandleSeedsProfileOnFirstContact(t *testing.T) {
	learnerId := uuid.New()
	profiles := &storedProfileRepo{profile: nil} // unknown learner
	agent := newTestAgent(profiles, &fakeInteractionRepo{}, newFakeSessionRepo())

	state := &store.SessionState{ID: uuid.New().String(), LearnerID: learnerId}
	if _, err := agent.Handle(context.Background(), state, "explain algebra"); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(profiles.created) != 1 {
		t.Fatalf("profiles created = %d, want 1", len(profiles.created))
	}
	seeded := profiles.created[0]
	if seeded.Id != learnerId {
		t.Error("seeded profile must carry the learner id")
	}
	if seeded.GuestSession {
		t.Error("seeded profile must be durable, not guest")
	}
}

func TestRateDifficultyValidation(t *testing.T) {
	agent := newTestAgent(&fakeProfileRepo{}, &fakeInteractionRepo{}, newFakeSessionRepo())
	state := &store.SessionState{ID: uuid.New().String()}

	if err := agent.RateDifficulty(context.Background(), state, 0); err == nil {
		t.Error("rating 0 should be rejected")
	}
	if err := agent.RateDifficulty(context.Background(), state, 6); err == nil {
		t.Error("rating 6 should be rejected")
	}
	if err := agent.RateDifficulty(context.Background(), state, 3); err != nil {
		t.Errorf("rating 3 rejected: %v", err)
	}
	if len(state.Progress.DifficultyRatings) != 1 || state.Progress.DifficultyRatings[0] != 3 {
		t.Errorf("DifficultyRatings = %v", state.Progress.DifficultyRatings)
	}
}
