// FILE: internal/service/tutoring_service.go
package service

import (
	"context"

	"edu-assistant-be/internal/dto"
	"edu-assistant-be/internal/repository/memory"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/internal/repository/unitofwork"
	"edu-assistant-be/pkg/agent/tutor"

	"github.com/google/uuid"
)

type ITutoringService interface {
	GetSessions(ctx context.Context, learnerId uuid.UUID) ([]*dto.TutoringSessionResponse, error)
	EndActiveSession(ctx context.Context, learnerId uuid.UUID) error
	RateDifficulty(ctx context.Context, req *dto.RateDifficultyRequest) error
}

type tutoringService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionRepo    *memory.SessionStateRepository
	sessionManager *tutor.SessionManager
	tutorAgent     *tutor.Agent
}

func NewTutoringService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionStateRepository,
	sessionManager *tutor.SessionManager,
	tutorAgent *tutor.Agent,
) ITutoringService {
	return &tutoringService{
		uowFactory:     uowFactory,
		sessionRepo:    sessionRepo,
		sessionManager: sessionManager,
		tutorAgent:     tutorAgent,
	}
}

func (ts *tutoringService) GetSessions(ctx context.Context, learnerId uuid.UUID) ([]*dto.TutoringSessionResponse, error) {
	uow := ts.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.TutoringSessionRepository().FindAll(ctx,
		specification.ByLearnerID{LearnerID: learnerId},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.TutoringSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, &dto.TutoringSessionResponse{
			Id:                 session.Id,
			Topic:              session.Topic,
			Active:             session.Active,
			StartedAt:          session.StartedAt,
			EndedAt:            session.EndedAt,
			EndedBy:            session.EndedBy,
			PerformanceSummary: session.PerformanceSummary,
		})
	}
	return response, nil
}

// EndActiveSession closes the learner's active session on explicit request.
// Ending is idempotent: no active session is not an error.
func (ts *tutoringService) EndActiveSession(ctx context.Context, learnerId uuid.UUID) error {
	uow := ts.uowFactory.NewUnitOfWork(ctx)

	active, err := uow.TutoringSessionRepository().FindActiveByLearner(ctx, learnerId)
	if err != nil {
		return err
	}
	if active == nil {
		return nil
	}

	return ts.sessionManager.End(ctx, active, "user_request")
}

// RateDifficulty records a 1-5 difficulty rating against the chat
// session's rolling progress and the tutoring interaction log.
func (ts *tutoringService) RateDifficulty(ctx context.Context, req *dto.RateDifficultyRequest) error {
	state := ts.sessionRepo.LoadOrCreate(req.SessionId.String())
	if err := ts.tutorAgent.RateDifficulty(ctx, state, req.Rating); err != nil {
		return err
	}
	ts.sessionRepo.Save(state)
	return nil
}
