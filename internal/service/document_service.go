// FILE: internal/service/document_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"edu-assistant-be/internal/dto"
	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/internal/repository/unitofwork"
	"edu-assistant-be/pkg/events"
	"edu-assistant-be/pkg/language"
	pktNats "edu-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.ShowDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// Upload stores the document and queues it for chunking and embedding.
// The ingestion worker picks it up off the topic asynchronously.
func (c *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	pages := req.Pages
	content := req.Content
	if len(pages) == 0 && content != "" {
		pages = map[string]string{"1": content}
	}
	if content == "" && len(pages) > 0 {
		content = joinPages(pages)
	}

	lang := req.Language
	if lang == "" {
		lang = language.Detect(content)
	}

	doc := entity.Document{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Title:     req.Title,
		Content:   content,
		Pages:     pages,
		Language:  lang,
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishIngestDocumentMessage{
		DocumentId: doc.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := c.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	// Publish Event for external consumers
	if c.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "DOCUMENT_UPLOADED",
			Data: map[string]interface{}{
				"title":       doc.Title,
				"document_id": doc.Id,
				"session_id":  req.SessionId,
			},
			OccurredAt: time.Now(),
		}
		// We log error but don't fail the request as the event is auxiliary
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish DOCUMENT_UPLOADED event: %v\n", err)
		}
	}

	return &dto.UploadDocumentResponse{Id: doc.Id}, nil
}

func (c *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil // Not found
	}
	return toDocumentResponse(doc), nil
}

func (c *documentService) ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.ShowDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ShowDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, toDocumentResponse(doc))
	}
	return response, nil
}

// Delete removes the document and its chunks in one transaction.
func (c *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func toDocumentResponse(doc *entity.Document) *dto.ShowDocumentResponse {
	return &dto.ShowDocumentResponse{
		Id:        doc.Id,
		SessionId: doc.SessionId,
		Title:     doc.Title,
		Language:  doc.Language,
		PageCount: len(doc.Pages),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// joinPages flattens the page map into one text block in page order.
func joinPages(pages map[string]string) string {
	max := 0
	for key := range pages {
		if n, err := strconv.Atoi(key); err == nil && n > max {
			max = n
		}
	}
	parts := make([]string, 0, len(pages))
	for i := 1; i <= max; i++ {
		if text, ok := pages[strconv.Itoa(i)]; ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
