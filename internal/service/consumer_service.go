// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"time"

	"edu-assistant-be/internal/dto"
	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/internal/repository/unitofwork"
	"edu-assistant-be/pkg/embedding"
	"edu-assistant-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the ingestion worker: it chunks uploaded documents
// and embeds the chunks into the vector store.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing document ingestion for DocumentId: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if doc == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	newChunks, ok := cs.buildChunks(doc, msg)
	if !ok {
		return // buildChunks already Nacked
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	log.Printf("[INFO] Deleting old chunks for document %s", payload.DocumentId)
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old chunks: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Creating %d new chunks for document %s", len(newChunks), payload.DocumentId)
	if len(newChunks) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, newChunks); err != nil {
			log.Printf("[ERROR] Failed to create bulk chunks: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Document processed: %d chunks for DocumentId: %s", len(newChunks), payload.DocumentId)
	msg.Ack()
}

// buildChunks splits every page and embeds each slice. Page provenance is
// kept on the chunk so answers can cite where they came from.
func (cs *consumerService) buildChunks(doc *entity.Document, msg *message.Message) ([]*entity.DocumentChunk, bool) {
	var newChunks []*entity.DocumentChunk
	chunkIndex := 0

	for _, pageNum := range sortedPageNumbers(doc.Pages) {
		pageText := doc.Pages[strconv.Itoa(pageNum)]
		if pageText == "" {
			continue
		}

		// ChunkSize: 1500 chars (approx 375 tokens) - Ultra safe for context limits
		// Overlap: 200 chars
		chunks := utils.SplitText(pageText, 1500, 200)

		for _, chunk := range chunks {
			res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
			if err != nil {
				log.Printf("[ERROR] Failed to generate embedding for chunk %d of document %s: %v", chunkIndex, doc.Id, err)
				msg.Nack()
				return nil, false
			}

			page := pageNum
			newChunks = append(newChunks, &entity.DocumentChunk{
				Id:         uuid.New(),
				DocumentId: doc.Id,
				Content:    chunk,
				Embedding:  res.Embedding.Values,
				Page:       &page,
				Language:   doc.Language,
				ChunkIndex: chunkIndex,
				CreatedAt:  time.Now(),
			})
			chunkIndex++
		}
	}

	log.Printf("[INFO] Document %s split into %d chunks across %d pages", doc.Id, chunkIndex, len(doc.Pages))
	return newChunks, true
}

func sortedPageNumbers(pages map[string]string) []int {
	numbers := make([]int, 0, len(pages))
	for key := range pages {
		if n, err := strconv.Atoi(key); err == nil {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers
}
