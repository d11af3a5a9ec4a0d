package orchestrator

import (
	"context"
	"log"

	"edu-assistant-be/internal/constant"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/pkg/rag/answer"
	"edu-assistant-be/pkg/rag/contextbuilder"
	"edu-assistant-be/pkg/rag/relevance"
	"edu-assistant-be/pkg/rag/retriever"
	"edu-assistant-be/pkg/rerank"
	"edu-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// Orchestrator runs the full retrieve -> gate -> assemble -> generate
// pipeline. Empty corpus and low relevance are answered with fixed
// messages, never errors; only infrastructure failures propagate.
type Orchestrator struct {
	retriever *retriever.Retriever
	gate      *relevance.Checker
	builder   *contextbuilder.Builder
	generator *answer.Generator
	documents contract.DocumentRepository
	reranker  rerank.Reranker // optional, nil disables reranking
	threshold float64
	logger    *log.Logger
}

func NewOrchestrator(
	ret *retriever.Retriever,
	gate *relevance.Checker,
	builder *contextbuilder.Builder,
	generator *answer.Generator,
	documents contract.DocumentRepository,
	reranker rerank.Reranker,
	threshold float64,
	logger *log.Logger,
) *Orchestrator {
	if threshold <= 0 {
		threshold = relevance.DefaultThreshold
	}
	return &Orchestrator{
		retriever: ret,
		gate:      gate,
		builder:   builder,
		generator: generator,
		documents: documents,
		reranker:  reranker,
		threshold: threshold,
		logger:    logger,
	}
}

// Answer produces a grounded answer to a direct question.
func (o *Orchestrator) Answer(ctx context.Context, state *store.SessionState, query string) (string, error) {
	return o.run(ctx, state, query, constant.GroundedAnswerPrompt)
}

// Summarize produces a grounded summary of the session's documents.
func (o *Orchestrator) Summarize(ctx context.Context, state *store.SessionState, query string) (string, error) {
	return o.run(ctx, state, query, constant.SummarizationPrompt)
}

func (o *Orchestrator) run(ctx context.Context, state *store.SessionState, query, template string) (string, error) {
	filter := o.searchFilter(state)

	passages, err := o.retriever.Retrieve(ctx, query, o.threshold, filter)
	if err != nil {
		return "", err
	}

	if len(passages) == 0 {
		empty, cerr := o.corpusEmpty(ctx, state)
		if cerr != nil {
			return "", cerr
		}
		if empty {
			return constant.MsgNoDocuments, nil
		}
		return constant.MsgLowRelevance, nil
	}

	gated := o.gate.Check(passages)
	if !gated.Relevant {
		o.logger.Printf("[PIPELINE] Relevance gate rejected query (best score %.3f)", gated.BestScore)
		return constant.MsgLowRelevance, nil
	}

	passagesOrdered := o.maybeRerank(ctx, query, gated.Passages)

	titles, err := o.documentTitles(ctx, passagesOrdered)
	if err != nil {
		return "", err
	}

	contextBlock := o.builder.Build(passagesOrdered, titles)
	result := o.generator.Generate(ctx, answer.Request{
		Template: template,
		Question: query,
		Context:  contextBlock,
		History:  state.History,
		Mode:     answer.ModeText,
	})
	return result.Text, nil
}

// maybeRerank reorders passages with the cross-encoder when one is
// configured. Rerank failures keep the similarity order, the request
// never fails on a missing optional capability.
func (o *Orchestrator) maybeRerank(ctx context.Context, query string, passages []*retriever.RetrievedPassage) []*retriever.RetrievedPassage {
	if o.reranker == nil || len(passages) < 2 {
		return passages
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Chunk.Content
	}

	ranked, err := o.reranker.Rerank(ctx, query, texts, len(texts))
	if err != nil {
		o.logger.Printf("[WARN] Rerank failed, keeping similarity order: %v", err)
		return passages
	}

	reordered := make([]*retriever.RetrievedPassage, 0, len(ranked))
	for _, r := range ranked {
		if r.Index >= 0 && r.Index < len(passages) {
			reordered = append(reordered, passages[r.Index])
		}
	}
	if len(reordered) == 0 {
		return passages
	}
	return reordered
}

// searchFilter scopes retrieval to the open document when one is active,
// else to the whole session corpus.
func (o *Orchestrator) searchFilter(state *store.SessionState) contract.ChunkSearchFilter {
	filter := contract.ChunkSearchFilter{}
	if state.HasActiveDocument() {
		docId := state.ActiveDocumentID
		filter.DocumentId = &docId
	} else if sessionId, err := uuid.Parse(state.ID); err == nil {
		filter.SessionId = &sessionId
	}
	return filter
}

func (o *Orchestrator) corpusEmpty(ctx context.Context, state *store.SessionState) (bool, error) {
	if state.HasActiveDocument() {
		return false, nil
	}
	sessionId, err := uuid.Parse(state.ID)
	if err != nil {
		return true, nil
	}
	count, err := o.documents.Count(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (o *Orchestrator) documentTitles(ctx context.Context, passages []*retriever.RetrievedPassage) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(passages))
	for _, p := range passages {
		if !seen[p.Chunk.DocumentId] {
			seen[p.Chunk.DocumentId] = true
			ids = append(ids, p.Chunk.DocumentId)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	docs, err := o.documents.FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	titles := make(map[uuid.UUID]string, len(docs))
	for _, d := range docs {
		titles[d.Id] = d.Title
	}
	return titles, nil
}
