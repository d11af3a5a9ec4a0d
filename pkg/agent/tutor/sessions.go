package tutor

import (
	"context"
	"fmt"
	"log"
	"time"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
)

// SessionManager owns the tutoring session lifecycle:
// none -> active -> ended (terminal). At most one active session per
// registered learner; starting a new one ends the previous first.
type SessionManager struct {
	sessions contract.TutoringSessionRepository
	logger   *log.Logger
}

func NewSessionManager(sessions contract.TutoringSessionRepository, logger *log.Logger) *SessionManager {
	return &SessionManager{sessions: sessions, logger: logger}
}

// Start opens a new active session for the learner. Any currently active
// session is ended first with ended_by = new_session_started and its
// performance summary written.
func (m *SessionManager) Start(ctx context.Context, learnerId uuid.UUID, topic string) (*entity.TutoringSession, error) {
	prior, err := m.sessions.FindActiveByLearner(ctx, learnerId)
	if err != nil {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	if prior != nil {
		if err := m.End(ctx, prior, entity.EndedByNewSession); err != nil {
			return nil, err
		}
		m.logger.Printf("[TUTOR] Ended session %s for learner %s (new session started)", prior.Id, learnerId)
	}

	session := &entity.TutoringSession{
		LearnerId: &learnerId,
		Topic:     topic,
		State:     map[string]interface{}{"interaction_history": []interface{}{}},
		Active:    true,
		StartedAt: time.Now(),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create tutoring session: %w", err)
	}
	return session, nil
}

// Resume returns the learner's active session, or nil when none exists.
func (m *SessionManager) Resume(ctx context.Context, learnerId uuid.UUID) (*entity.TutoringSession, error) {
	return m.sessions.FindActiveByLearner(ctx, learnerId)
}

// End closes a session. Ended is terminal: a second End is a no-op.
func (m *SessionManager) End(ctx context.Context, session *entity.TutoringSession, endedBy string) error {
	if !session.Active {
		return nil
	}
	now := time.Now()
	session.Active = false
	session.EndedAt = &now
	session.EndedBy = endedBy
	session.PerformanceSummary = summarize(session)

	if session.LearnerId == nil {
		// Guest sessions live and die in memory.
		return nil
	}
	if err := m.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to end tutoring session: %w", err)
	}
	return nil
}

// StartGuest opens the in-memory degenerate session for a guest. It is
// never persisted and ends implicitly with the conversation.
func (m *SessionManager) StartGuest(topic string) *entity.TutoringSession {
	return &entity.TutoringSession{
		Id:        uuid.New(),
		Topic:     topic,
		State:     map[string]interface{}{"interaction_history": []interface{}{}},
		Active:    true,
		StartedAt: time.Now(),
	}
}

// AppendInteraction records a truncated interaction summary in the session
// state, bounded by InteractionHistoryCap.
func (m *SessionManager) AppendInteraction(ctx context.Context, session *entity.TutoringSession, interactionType, summary string) error {
	if session.State == nil {
		session.State = map[string]interface{}{}
	}

	history, _ := session.State["interaction_history"].([]interface{})
	history = append(history, map[string]interface{}{
		"type":    interactionType,
		"summary": TruncateSummary(summary),
		"at":      time.Now().Format(time.RFC3339),
	})
	if len(history) > entity.InteractionHistoryCap {
		history = history[len(history)-entity.InteractionHistoryCap:]
	}
	session.State["interaction_history"] = history

	if session.LearnerId == nil {
		return nil
	}
	if err := m.sessions.Update(ctx, session); err != nil {
		m.logger.Printf("[WARN] Failed to persist session state: %v", err)
		return err
	}
	return nil
}

// summarize derives the end-of-session performance summary from state.
func summarize(session *entity.TutoringSession) map[string]interface{} {
	history, _ := session.State["interaction_history"].([]interface{})
	duration := 0.0
	if session.EndedAt != nil {
		duration = session.EndedAt.Sub(session.StartedAt).Seconds()
	}
	return map[string]interface{}{
		"topic":             session.Topic,
		"interaction_count": len(history),
		"duration_seconds":  duration,
	}
}
