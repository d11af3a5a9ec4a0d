package dispatch

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"edu-assistant-be/internal/constant"
	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/memory"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/pkg/rag/router"
	"edu-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// Message aliases so callers and tests read naturally at the dispatch layer.
const (
	MsgNoDocuments = constant.MsgNoDocuments
	MsgEndOfDoc    = constant.MsgEndOfDoc
	MsgStartOfDoc  = constant.MsgStartOfDoc
)

// QueryPipeline answers qa/summarization requests over the session corpus.
type QueryPipeline interface {
	Answer(ctx context.Context, state *store.SessionState, query string) (string, error)
	Summarize(ctx context.Context, state *store.SessionState, query string) (string, error)
}

// ConversationalAgent handles the content_agent route, including tutoring
// delegation.
type ConversationalAgent interface {
	Handle(ctx context.Context, state *store.SessionState, query string) (string, error)
}

// Dispatcher executes routed actions against per-session state and hands
// routed queries to the knowledge pipeline or the conversational agent.
// The pagination cursor lives in the session state, so concurrent sessions
// never share position.
type Dispatcher struct {
	documents contract.DocumentRepository
	notes     contract.NoteRepository
	turns     contract.ConversationTurnRepository
	decisions contract.RouterDecisionRepository
	sessions  *memory.SessionStateRepository
	pipeline  QueryPipeline
	agent     ConversationalAgent
	logger    *log.Logger
}

func NewDispatcher(
	documents contract.DocumentRepository,
	notes contract.NoteRepository,
	turns contract.ConversationTurnRepository,
	decisions contract.RouterDecisionRepository,
	sessions *memory.SessionStateRepository,
	pipeline QueryPipeline,
	agent ConversationalAgent,
	logger *log.Logger,
) *Dispatcher {
	return &Dispatcher{
		documents: documents,
		notes:     notes,
		turns:     turns,
		decisions: decisions,
		sessions:  sessions,
		pipeline:  pipeline,
		agent:     agent,
		logger:    logger,
	}
}

// DispatchAction executes one routed action and commits the mutated session
// state. The navigation cursor is only advanced on success.
func (d *Dispatcher) DispatchAction(ctx context.Context, state *store.SessionState, req *router.ActionRequest, utterance string) *Result {
	var result *Result

	switch req.Type {
	case router.ActionOpenDoc:
		result = d.openDoc(ctx, state, req.Details.DocTitle)
	case router.ActionCloseDoc:
		result = d.closeDoc(state)
	case router.ActionNextSection:
		result = d.turnPage(ctx, state, +1)
	case router.ActionPrevSection:
		result = d.turnPage(ctx, state, -1)
	case router.ActionAddNote:
		result = d.addNote(ctx, state, req.Details, utterance)
	case router.ActionOpenNote:
		result = d.openNotes(ctx, state, req.Details.PageNum)
	case router.ActionBookmark:
		result = d.bookmark(ctx, state)
	case router.ActionShowBookmarks:
		result = d.showBookmarks(state)
	case router.ActionOpenChat:
		state.ChatOpen = true
		result = &Result{Status: StatusSuccess, Route: req.Type, Message: "Chat mode is on. Ask me anything about your documents."}
	case router.ActionCloseChat:
		state.ChatOpen = false
		result = &Result{Status: StatusSuccess, Route: req.Type, Message: "Chat mode is off."}
	case router.ActionLocation:
		result = d.location(ctx, state)
	default:
		message := req.Message
		if message == "" {
			message = "Action type ambiguous or unavailable. Please clarify."
		}
		result = &Result{Status: StatusUnknownAction, Route: router.ActionUnknown, Message: message}
	}

	if result.Route == "" {
		result.Route = req.Type
	}
	d.sessions.Save(state)
	d.recordTurn(ctx, state, utterance, result.Message)
	return result
}

// DispatchQuery runs one routed knowledge request. qa and summarization
// require a document; content_agent works with or without one. Every
// dispatch records the exchange, terminal and error statuses included.
func (d *Dispatcher) DispatchQuery(ctx context.Context, state *store.SessionState, req *router.QueryRequest, utterance string) *Result {
	d.recordDecision(ctx, utterance, req.Route)

	result := d.runQuery(ctx, state, req, utterance)

	d.sessions.Save(state)
	d.recordTurn(ctx, state, utterance, result.Message)
	return result
}

func (d *Dispatcher) runQuery(ctx context.Context, state *store.SessionState, req *router.QueryRequest, utterance string) *Result {
	var (
		answer string
		err    error
	)

	switch req.Route {
	case router.RouteQA, router.RouteSummarization:
		doc, derr := d.activeDocument(ctx, state)
		if derr != nil {
			return &Result{Status: StatusError, Route: req.Route, Message: fmt.Sprintf("I encountered an error while processing your question: %v", derr)}
		}
		if doc == nil {
			return &Result{Status: StatusNoDocument, Route: req.Route, Message: MsgNoDocuments}
		}
		if req.Route == router.RouteQA {
			answer, err = d.pipeline.Answer(ctx, state, utterance)
		} else {
			answer, err = d.pipeline.Summarize(ctx, state, utterance)
		}
	default:
		answer, err = d.agent.Handle(ctx, state, utterance)
	}

	if err != nil {
		return &Result{Status: StatusError, Route: req.Route, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}

	return &Result{Status: StatusSuccess, Route: req.Route, Message: answer}
}

// openDoc activates a document and resets the cursor to the first page.
// With no title it falls back to the most recent upload for the session.
func (d *Dispatcher) openDoc(ctx context.Context, state *store.SessionState, title string) *Result {
	var (
		doc *entity.Document
		err error
	)
	if title != "" {
		doc, err = d.documents.FindOne(ctx, specification.ByTitleLike{Term: title})
	} else {
		doc, err = d.mostRecentDocument(ctx, state)
	}
	if err != nil {
		return &Result{Status: StatusError, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}
	if doc == nil {
		if title != "" {
			return &Result{Status: StatusNotFound, Message: fmt.Sprintf("I couldn't find a document matching %q.", title)}
		}
		return &Result{Status: StatusNoDocument, Message: MsgNoDocuments}
	}

	state.ActiveDocumentID = doc.Id
	state.CurrentPage = 0

	data := map[string]interface{}{
		"document_id": doc.Id.String(),
		"title":       doc.Title,
		"page_count":  pageCount(doc),
		"page":        1,
	}
	if content, ok := pageContent(doc, 0); ok {
		data["content"] = content
	}
	return &Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Opened %q.", doc.Title),
		Data:    data,
	}
}

func (d *Dispatcher) closeDoc(state *store.SessionState) *Result {
	if !state.HasActiveDocument() {
		return &Result{Status: StatusNoDocument, Message: "No document is currently open."}
	}
	state.ActiveDocumentID = uuid.Nil
	state.CurrentPage = 0
	return &Result{Status: StatusSuccess, Message: "Document closed."}
}

// turnPage moves the cursor by delta. Terminal pages return a terminal
// status and leave the cursor where it was.
func (d *Dispatcher) turnPage(ctx context.Context, state *store.SessionState, delta int) *Result {
	doc, err := d.activeDocument(ctx, state)
	if err != nil {
		return &Result{Status: StatusError, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}
	if doc == nil {
		return &Result{Status: StatusNoDocument, Message: MsgNoDocuments}
	}

	candidate := state.CurrentPage + delta
	if candidate < 0 {
		return &Result{Status: StatusStartOfDocument, Message: MsgStartOfDoc}
	}
	if candidate >= pageCount(doc) {
		return &Result{Status: StatusLimitReached, Message: MsgEndOfDoc}
	}

	state.CurrentPage = candidate
	data := map[string]interface{}{
		"page":       candidate + 1,
		"page_count": pageCount(doc),
		"title":      doc.Title,
	}
	if content, ok := pageContent(doc, candidate); ok {
		data["content"] = content
	}
	return &Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Page %d of %d.", candidate+1, pageCount(doc)),
		Data:    data,
	}
}

func (d *Dispatcher) addNote(ctx context.Context, state *store.SessionState, details router.ActionDetails, utterance string) *Result {
	text, page := noteArgs(details, utterance)
	if text == "" {
		return &Result{Status: StatusError, Message: "I couldn't find the note text. Please tell me what to note."}
	}

	sessionId, err := uuid.Parse(state.ID)
	if err != nil {
		return &Result{Status: StatusError, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}

	note := &entity.Note{
		SessionId: sessionId,
		Content:   text,
		Page:      page,
	}
	if err := d.notes.Create(ctx, note); err != nil {
		return &Result{Status: StatusError, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}

	message := fmt.Sprintf("Note saved: %q.", text)
	if page != nil {
		message = fmt.Sprintf("Note saved on page %d: %q.", *page, text)
	}
	return &Result{
		Status:  StatusSuccess,
		Message: message,
		Data:    map[string]interface{}{"note_id": note.Id.String()},
	}
}

func (d *Dispatcher) openNotes(ctx context.Context, state *store.SessionState, page *int) *Result {
	sessionId, err := uuid.Parse(state.ID)
	if err != nil {
		return &Result{Status: StatusError, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}

	specs := []specification.Specification{
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if page != nil {
		specs = append(specs, specification.ByPage{Page: *page})
	}

	notes, err := d.notes.FindAll(ctx, specs...)
	if err != nil {
		return &Result{Status: StatusError, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}

	items := make([]map[string]interface{}, 0, len(notes))
	for _, n := range notes {
		item := map[string]interface{}{
			"id":      n.Id.String(),
			"content": n.Content,
		}
		if n.Page != nil {
			item["page"] = *n.Page
		}
		items = append(items, item)
	}
	return &Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("You have %d note(s).", len(items)),
		Data:    map[string]interface{}{"notes": items},
	}
}

func (d *Dispatcher) bookmark(ctx context.Context, state *store.SessionState) *Result {
	doc, err := d.activeDocument(ctx, state)
	if err != nil {
		return &Result{Status: StatusError, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}
	if doc == nil {
		return &Result{Status: StatusNoDocument, Message: MsgNoDocuments}
	}

	for _, b := range state.Bookmarks {
		if b == state.CurrentPage {
			return &Result{Status: StatusSuccess, Message: fmt.Sprintf("Page %d is already bookmarked.", state.CurrentPage+1)}
		}
	}
	state.Bookmarks = append(state.Bookmarks, state.CurrentPage)
	return &Result{Status: StatusSuccess, Message: fmt.Sprintf("Bookmarked page %d.", state.CurrentPage+1)}
}

func (d *Dispatcher) showBookmarks(state *store.SessionState) *Result {
	pages := make([]int, 0, len(state.Bookmarks))
	for _, b := range state.Bookmarks {
		pages = append(pages, b+1)
	}
	return &Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("You have %d bookmark(s).", len(pages)),
		Data:    map[string]interface{}{"bookmarks": pages},
	}
}

func (d *Dispatcher) location(ctx context.Context, state *store.SessionState) *Result {
	doc, err := d.activeDocument(ctx, state)
	if err != nil {
		return &Result{Status: StatusError, Message: fmt.Sprintf("I encountered an error while processing your question: %v", err)}
	}
	if doc == nil {
		return &Result{Status: StatusNoDocument, Message: MsgNoDocuments}
	}
	return &Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("You are on page %d of %d in %q.", state.CurrentPage+1, pageCount(doc), doc.Title),
		Data: map[string]interface{}{
			"page":       state.CurrentPage + 1,
			"page_count": pageCount(doc),
			"title":      doc.Title,
		},
	}
}

// activeDocument resolves the session's document: the explicitly opened
// one, else the most recent upload for the session.
func (d *Dispatcher) activeDocument(ctx context.Context, state *store.SessionState) (*entity.Document, error) {
	if state.HasActiveDocument() {
		return d.documents.FindOne(ctx, specification.ByID{ID: state.ActiveDocumentID})
	}
	return d.mostRecentDocument(ctx, state)
}

func (d *Dispatcher) mostRecentDocument(ctx context.Context, state *store.SessionState) (*entity.Document, error) {
	sessionId, err := uuid.Parse(state.ID)
	if err != nil {
		return nil, nil
	}
	return d.documents.FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

// recordTurn appends the exchange to the audit log. Failures are logged
// and swallowed, the user still gets their answer.
func (d *Dispatcher) recordTurn(ctx context.Context, state *store.SessionState, query, answer string) {
	turn := &entity.ConversationTurn{Query: query, Answer: answer}
	if sessionId, err := uuid.Parse(state.ID); err == nil {
		turn.SessionId = &sessionId
	}
	if err := d.turns.Create(ctx, turn); err != nil {
		d.logger.Printf("[WARN] Failed to persist conversation turn: %v", err)
	}
}

func (d *Dispatcher) recordDecision(ctx context.Context, query, route string) {
	decision := &entity.RouterDecision{Query: query, Route: route}
	if err := d.decisions.Create(ctx, decision); err != nil {
		d.logger.Printf("[WARN] Failed to persist router decision: %v", err)
	}
}

// pageCount is the highest numeric page key, tolerating sparse maps.
func pageCount(doc *entity.Document) int {
	max := 0
	for key := range doc.Pages {
		if n, err := strconv.Atoi(key); err == nil && n > max {
			max = n
		}
	}
	return max
}

// pageContent returns the text of the 0-based cursor position.
func pageContent(doc *entity.Document, cursor int) (string, bool) {
	content, ok := doc.Pages[strconv.Itoa(cursor+1)]
	return content, ok
}
