package bootstrap

import (
	"context"
	"log"
	"os"

	"edu-assistant-be/internal/config"
	"edu-assistant-be/internal/controller"
	"edu-assistant-be/internal/pkg/logger"
	"edu-assistant-be/internal/repository/memory"
	"edu-assistant-be/internal/repository/unitofwork"
	"edu-assistant-be/internal/service"
	"edu-assistant-be/pkg/agent/tutor"
	"edu-assistant-be/pkg/embedding"
	"edu-assistant-be/pkg/embedding/jina"
	"edu-assistant-be/pkg/llm/factory"
	"edu-assistant-be/pkg/rerank"

	pktNats "edu-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	DocumentController  controller.IDocumentController
	NoteController      controller.INoteController
	TutoringController  controller.ITutoringController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// System logger, exposed so main can Sync on shutdown
	SysLogger *logger.ZapLogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		sysLogger.Info("bootstrap", "Using Embedding Provider: OLLAMA", map[string]interface{}{"model": cfg.Ai.OllamaModel})
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		sysLogger.Info("bootstrap", "Using Embedding Provider: JINA AI", nil)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		sysLogger.Info("bootstrap", "Using Embedding Provider: GEMINI", nil)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Groq,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("bootstrap", "Using LLM Provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	var reranker rerank.Reranker
	if cfg.Ai.RerankEnabled && cfg.Keys.Jina != "" {
		reranker = rerank.NewJinaReranker(cfg.Keys.Jina)
		sysLogger.Info("bootstrap", "Reranking enabled (Jina)", nil)
	}

	// Initialize In-Memory Session State Storage
	sessionRepo := memory.NewSessionStateRepository()

	// 3.5 Infrastructure
	// NATS (best effort: the assistant works without the event bus)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
	}

	// 4. Tutoring Domain Components (shared by assistant and tutoring services)
	repos := uowFactory.NewUnitOfWork(context.Background())
	tutorLogger := log.New(os.Stdout, "[TUTOR] ", log.LstdFlags)
	sessionManager := tutor.NewSessionManager(repos.TutoringSessionRepository(), tutorLogger)
	tutorAgent := tutor.NewAgent(
		repos.LearnerProfileRepository(),
		repos.LearnerInteractionRepository(),
		sessionManager,
		tutor.NewExplanationEngine(llmProvider, cfg.Tutor.DefaultStyle, tutorLogger),
		tutor.NewPracticeGenerator(llmProvider, cfg.Tutor.DefaultDifficulty, tutorLogger),
		tutorLogger,
	)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		embeddingProvider,
	)

	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub)
	noteService := service.NewNoteService(uowFactory)
	tutoringService := service.NewTutoringService(uowFactory, sessionRepo, sessionManager, tutorAgent)

	assistantService := service.NewAssistantService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		reranker,
		sessionRepo,
		tutorAgent,
		cfg,
	)

	// 6. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		DocumentController:  controller.NewDocumentController(documentService),
		NoteController:      controller.NewNoteController(noteService),
		TutoringController:  controller.NewTutoringController(tutoringService),

		ConsumerService: consumerService,
		SysLogger:       sysLogger,
	}
}
