package tutor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var practiceRequestCues = []string{"practice", "problems", "quiz", "exercise", "test me", "drill"}

// Agent is the tutoring endpoint of the delegation chain. Registered
// learners get durable sessions and interaction logs; guests get an
// inferred profile and an in-memory session that is never persisted.
type Agent struct {
	profiles      contract.LearnerProfileRepository
	interactions  contract.LearnerInteractionRepository
	sessions      *SessionManager
	explainer     *ExplanationEngine
	practice      *PracticeGenerator
	guestSessions *cache.Cache // keyed by chat session id
	logger        *log.Logger
}

func NewAgent(
	profiles contract.LearnerProfileRepository,
	interactions contract.LearnerInteractionRepository,
	sessions *SessionManager,
	explainer *ExplanationEngine,
	practice *PracticeGenerator,
	logger *log.Logger,
) *Agent {
	return &Agent{
		profiles:      profiles,
		interactions:  interactions,
		sessions:      sessions,
		explainer:     explainer,
		practice:      practice,
		guestSessions: cache.New(1*time.Hour, 10*time.Minute),
		logger:        logger,
	}
}

// Handle runs one tutoring turn: resolve the learner, resolve the session,
// generate the response, log the interaction and the rolling progress.
func (a *Agent) Handle(ctx context.Context, state *store.SessionState, query string) (string, error) {
	profile, err := a.resolveProfile(ctx, state, query)
	if err != nil {
		return "", err
	}

	session, err := a.resolveSession(ctx, state, profile, query)
	if err != nil {
		return "", err
	}

	interactionType := entity.InteractionExplanation
	var response string
	if wantsPractice(query) {
		interactionType = entity.InteractionPractice
		response, err = a.practice.Generate(ctx, profile, query)
	} else {
		response, err = a.explainer.Explain(ctx, profile, query)
	}
	if err != nil {
		return "", err
	}

	a.logInteraction(ctx, session, interactionType, query, response, nil)
	if aerr := a.sessions.AppendInteraction(ctx, session, interactionType, response); aerr != nil {
		a.logger.Printf("[WARN] Interaction summary not saved: %v", aerr)
	}

	state.EnsureProgress().RecordInteraction(interactionType, time.Now(), nil)
	state.TutoringSessionID = session.Id
	return response, nil
}

// RateDifficulty attaches a 1-5 difficulty rating to the session's rolling
// progress and the interaction log.
func (a *Agent) RateDifficulty(ctx context.Context, state *store.SessionState, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("difficulty rating must be between 1 and 5, got %d", rating)
	}
	state.EnsureProgress().RecordInteraction(entity.InteractionFeedback, time.Now(), &rating)

	if state.TutoringSessionID == uuid.Nil {
		return nil
	}
	interaction := &entity.LearnerInteraction{
		TutoringSessionId: state.TutoringSessionID,
		Type:              entity.InteractionFeedback,
		Query:             "difficulty rating",
		Response:          fmt.Sprintf("%d", rating),
		DifficultyRating:  &rating,
	}
	if err := a.interactions.Create(ctx, interaction); err != nil {
		a.logger.Printf("[WARN] Failed to persist difficulty rating: %v", err)
	}
	return nil
}

func (a *Agent) resolveProfile(ctx context.Context, state *store.SessionState, query string) (*entity.LearnerProfile, error) {
	if state.LearnerID == uuid.Nil {
		profile := InferGuestProfile(query)
		a.logger.Printf("[TUTOR] Guest profile inferred (grade=%d, style=%s, lang=%s)",
			profile.Grade, profile.LearningStyle, profile.PreferredLanguage)
		return profile, nil
	}

	profile, err := a.profiles.FindOne(ctx, specification.ByID{ID: state.LearnerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load learner profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	// First contact with a registered learner: seed the durable profile
	// from the same inference the guest path uses.
	profile = InferGuestProfile(query)
	profile.Id = state.LearnerID
	profile.GuestSession = false
	if err := a.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create learner profile: %w", err)
	}
	return profile, nil
}

func (a *Agent) resolveSession(ctx context.Context, state *store.SessionState, profile *entity.LearnerProfile, query string) (*entity.TutoringSession, error) {
	if profile.GuestSession {
		if cached, found := a.guestSessions.Get(state.ID); found {
			return cached.(*entity.TutoringSession), nil
		}
		session := a.sessions.StartGuest(TruncateSummary(query))
		a.guestSessions.Set(state.ID, session, cache.DefaultExpiration)
		return session, nil
	}

	active, err := a.sessions.Resume(ctx, profile.Id)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}
	return a.sessions.Start(ctx, profile.Id, TruncateSummary(query))
}

// logInteraction is best-effort: a logging failure never costs the learner
// their answer.
func (a *Agent) logInteraction(ctx context.Context, session *entity.TutoringSession, interactionType, query, response string, rating *int) {
	if session.LearnerId == nil {
		return
	}
	interaction := &entity.LearnerInteraction{
		TutoringSessionId: session.Id,
		Type:              interactionType,
		Query:             query,
		Response:          response,
		DifficultyRating:  rating,
	}
	if err := a.interactions.Create(ctx, interaction); err != nil {
		a.logger.Printf("[WARN] Failed to persist learner interaction: %v", err)
	}
}

func wantsPractice(query string) bool {
	lower := strings.ToLower(query)
	for _, cue := range practiceRequestCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
