package unitofwork

import (
	"context"

	"edu-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	NoteRepository() contract.NoteRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ConversationTurnRepository() contract.ConversationTurnRepository
	RouterDecisionRepository() contract.RouterDecisionRepository

	LearnerProfileRepository() contract.LearnerProfileRepository
	TutoringSessionRepository() contract.TutoringSessionRepository
	LearnerInteractionRepository() contract.LearnerInteractionRepository
}
