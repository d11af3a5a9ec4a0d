// FILE: internal/service/assistant_service.go
package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"edu-assistant-be/internal/config"
	"edu-assistant-be/internal/dto"
	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/memory"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/internal/repository/unitofwork"
	"edu-assistant-be/pkg/agent/content"
	"edu-assistant-be/pkg/agent/tutor"
	"edu-assistant-be/pkg/dispatch"
	"edu-assistant-be/pkg/embedding"
	"edu-assistant-be/pkg/llm"
	"edu-assistant-be/pkg/rag/answer"
	"edu-assistant-be/pkg/rag/contextbuilder"
	"edu-assistant-be/pkg/rag/intent"
	"edu-assistant-be/pkg/rag/orchestrator"
	"edu-assistant-be/pkg/rag/relevance"
	"edu-assistant-be/pkg/rag/retriever"
	"edu-assistant-be/pkg/rag/router"
	"edu-assistant-be/pkg/rerank"

	"github.com/google/uuid"
)

// IAssistantService defines the conversational assistant interface
type IAssistantService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	SendMessage(ctx context.Context, learnerId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetHistoryResponse, error)
}

// assistantService coordinates the classification, routing and dispatch
// chain for every utterance.
type assistantService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.SessionStateRepository
	llmLogger   *log.Logger

	classifier   *intent.Classifier
	actionRouter *router.ActionRouter
	queryRouter  *router.QueryRouter
	dispatcher   *dispatch.Dispatcher
}

// NewAssistantService builds the full pipeline: retrieval, relevance
// gating, context assembly, grounded generation, the agent hierarchy and
// the dispatcher that ties them to per-session state.
func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	reranker rerank.Reranker,
	sessionRepo *memory.SessionStateRepository,
	tutorAgent *tutor.Agent,
	cfg *config.Config,
) IAssistantService {

	llmLogger := initLLMLogger()
	repos := uowFactory.NewUnitOfWork(context.Background())

	ret := retriever.NewRetriever(
		embeddingProvider,
		repos.DocumentChunkRepository(),
		cfg.Ai.EmbeddingDimension,
		cfg.Rag.TopK,
		llmLogger,
	)
	builder := contextbuilder.NewBuilder(cfg.Rag.MaxContextDocs, cfg.Rag.MaxContextChars)
	generator := answer.NewGenerator(llmProvider, llmLogger)

	// Each retrieval call site keeps its own relevance floor: direct
	// qa/summarization answers from a wide net, while the conversational
	// corpus probe only prefers documents over plain chat on a strong match.
	qaPipeline := orchestrator.NewOrchestrator(
		ret,
		relevance.NewChecker(cfg.Rag.QASimilarityThreshold, cfg.Rag.TopN),
		builder,
		generator,
		repos.DocumentRepository(),
		reranker,
		cfg.Rag.QASimilarityThreshold,
		llmLogger,
	)
	chatPipeline := orchestrator.NewOrchestrator(
		ret,
		relevance.NewChecker(cfg.Rag.ChatSimilarityThreshold, cfg.Rag.TopN),
		builder,
		generator,
		repos.DocumentRepository(),
		reranker,
		cfg.Rag.ChatSimilarityThreshold,
		llmLogger,
	)

	contentAgent := content.NewAgent(chatPipeline, tutorAgent, llmProvider, llmLogger)

	dispatcher := dispatch.NewDispatcher(
		repos.DocumentRepository(),
		repos.NoteRepository(),
		repos.ConversationTurnRepository(),
		repos.RouterDecisionRepository(),
		sessionRepo,
		qaPipeline,
		contentAgent,
		llmLogger,
	)

	return &assistantService{
		uowFactory:   uowFactory,
		sessionRepo:  sessionRepo,
		llmLogger:    llmLogger,
		classifier:   intent.NewClassifier(llmProvider, cfg.Rag.ConfidenceThreshold, llmLogger),
		actionRouter: router.NewActionRouter(llmProvider, cfg.Rag.ConfidenceThreshold, llmLogger),
		queryRouter:  router.NewQueryRouter(llmProvider, cfg.Rag.ConfidenceThreshold, llmLogger),
		dispatcher:   dispatcher,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// CreateSession creates a new chat session
func (as *assistantService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	session := entity.ChatSession{
		Id:        uuid.New(),
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

// SendMessage runs one conversational turn: classify, route, dispatch.
// learnerId is uuid.Nil for guests.
func (as *assistantService) SendMessage(ctx context.Context, learnerId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil // Not found
	}

	state := as.sessionRepo.LoadOrCreate(session.Id.String())
	if learnerId != uuid.Nil {
		state.LearnerID = learnerId
	}

	utterance := strings.TrimSpace(req.Message)

	var (
		intentType string
		result     *dispatch.Result
	)

	if utterance == "" {
		// Empty input never reaches the classifier: it degrades straight
		// to the general conversational route.
		intentType = intent.TypeQuery
		result = as.dispatcher.DispatchQuery(ctx, state, &router.QueryRequest{
			Route:      router.RouteContentAgent,
			Confidence: 0.0,
			Details:    "Empty input. Routed to general chat.",
		}, utterance)
	} else {
		classified := as.classifier.Classify(ctx, utterance)
		intentType = classified.Type

		if classified.Type == intent.TypeAction {
			actionReq := as.actionRouter.Route(ctx, utterance)
			result = as.dispatcher.DispatchAction(ctx, state, actionReq, utterance)
		} else {
			queryReq := as.queryRouter.Route(ctx, utterance)
			result = as.dispatcher.DispatchQuery(ctx, state, queryReq, utterance)
		}
	}

	state.AppendHistory("user", utterance)
	state.AppendHistory("assistant", result.Message)
	state.LastQuery = utterance
	as.sessionRepo.Save(state)

	return &dto.SendMessageResponse{
		SessionId: session.Id,
		Intent:    intentType,
		Route:     result.Route,
		Status:    result.Status,
		Message:   result.Message,
		Data:      result.Data,
	}, nil
}

// GetHistory returns the persisted conversation turns, oldest first.
func (as *assistantService) GetHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetHistoryResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	turns, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetHistoryResponse, 0, len(turns))
	for _, turn := range turns {
		response = append(response, &dto.GetHistoryResponse{
			Id:        turn.Id,
			Query:     turn.Query,
			Answer:    turn.Answer,
			CreatedAt: turn.CreatedAt,
		})
	}
	return response, nil
}
