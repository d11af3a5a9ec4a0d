// FILE: internal/service/note_service.go
package service

import (
	"context"

	"edu-assistant-be/internal/dto"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// INoteService exposes read access to session notes. Notes are created
// through the add_note conversational action, not through this service.
type INoteService interface {
	ListBySession(ctx context.Context, sessionId uuid.UUID, page *int) ([]*dto.NoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory) INoteService {
	return &noteService{
		uowFactory: uowFactory,
	}
}

func (c *noteService) ListBySession(ctx context.Context, sessionId uuid.UUID, page *int) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if page != nil {
		specs = append(specs, specification.ByPage{Page: *page})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, &dto.NoteResponse{
			Id:        note.Id,
			SessionId: note.SessionId,
			Content:   note.Content,
			Page:      note.Page,
			CreatedAt: note.CreatedAt,
		})
	}
	return response, nil
}

func (c *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().Delete(ctx, id)
}
