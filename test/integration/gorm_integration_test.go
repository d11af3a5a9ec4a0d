package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/internal/repository/unitofwork"
	"edu-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.TutoringSessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Document Chunk Repository", func(t *testing.T) {
		// Count implies table check
		count, err := uow.DocumentChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentChunk count: %d", count)
	})

	t.Run("Check Transactional Document Ingestion", func(t *testing.T) {
		ctx := context.Background()

		session := &entity.ChatSession{
			Id:        uuid.New(),
			CreatedAt: time.Now(),
		}
		err := uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		sessionId := session.Id
		doc := &entity.Document{
			Id:        uuid.New(),
			SessionId: &sessionId,
			Title:     "Integration Test Document " + uuid.New().String(),
			Content:   "Photosynthesis is the process plants use to make food.",
			Pages:     map[string]string{"1": "Photosynthesis is the process plants use to make food."},
			Language:  "en",
			CreatedAt: time.Now(),
		}
		err = uow.DocumentRepository().Create(ctx, doc)
		assert.NoError(t, err)

		// Transaction Test: replace chunks atomically
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		err = uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id)
		assert.NoError(t, err)

		page := 1
		chunk := &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			Content:    doc.Content,
			Embedding:  make([]float32, 768),
			Page:       &page,
			Language:   "en",
			ChunkIndex: 0,
			CreatedAt:  time.Now(),
		}
		err = uow.DocumentChunkRepository().CreateBulk(ctx, []*entity.DocumentChunk{chunk})
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		// Read back through the contract
		found, err := uow.DocumentChunkRepository().FindOne(context.Background(), specification.ByDocumentID{DocumentID: doc.Id})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		t.Log("Successfully ingested a document with chunks in a transaction")
	})
}
