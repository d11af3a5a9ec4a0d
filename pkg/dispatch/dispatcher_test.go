package dispatch

import (
	"context"
	"log"
	"os"
	"testing"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/memory"
	"edu-assistant-be/internal/repository/specification"
	"edu-assistant-be/pkg/rag/router"
	"edu-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// --- fakes ---

type fakeDocumentRepo struct {
	doc *entity.Document
	err error
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error { return nil }
func (f *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error { return nil }
func (f *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }
func (f *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	return f.doc, f.err
}
func (f *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	if f.doc == nil {
		return nil, f.err
	}
	return []*entity.Document{f.doc}, f.err
}
func (f *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeNoteRepo struct {
	created []*entity.Note
}

func (f *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	note.Id = uuid.New()
	f.created = append(f.created, note)
	return nil
}
func (f *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	return nil, nil
}
func (f *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	return f.created, nil
}
func (f *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeTurnRepo struct {
	turns []*entity.ConversationTurn
}

func (f *fakeTurnRepo) Create(ctx context.Context, turn *entity.ConversationTurn) error {
	f.turns = append(f.turns, turn)
	return nil
}
func (f *fakeTurnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	return f.turns, nil
}
func (f *fakeTurnRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.turns)), nil
}

type fakeDecisionRepo struct {
	decisions []*entity.RouterDecision
}

func (f *fakeDecisionRepo) Create(ctx context.Context, d *entity.RouterDecision) error {
	f.decisions = append(f.decisions, d)
	return nil
}
func (f *fakeDecisionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RouterDecision, error) {
	return f.decisions, nil
}

type fakePipeline struct {
	answer string
	err    error
}

func (f *fakePipeline) Answer(ctx context.Context, state *store.SessionState, query string) (string, error) {
	return f.answer, f.err
}
func (f *fakePipeline) Summarize(ctx context.Context, state *store.SessionState, query string) (string, error) {
	return f.answer, f.err
}

type fakeAgent struct {
	answer string
	err    error
}

func (f *fakeAgent) Handle(ctx context.Context, state *store.SessionState, query string) (string, error) {
	return f.answer, f.err
}

// --- helpers ---

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

type fixture struct {
	dispatcher *Dispatcher
	docs       *fakeDocumentRepo
	notes      *fakeNoteRepo
	turns      *fakeTurnRepo
	decisions  *fakeDecisionRepo
	state      *store.SessionState
}

func newFixture(doc *entity.Document) *fixture {
	docs := &fakeDocumentRepo{doc: doc}
	notes := &fakeNoteRepo{}
	turns := &fakeTurnRepo{}
	decisions := &fakeDecisionRepo{}
	sessions := memory.NewSessionStateRepository()

	state := &store.SessionState{ID: uuid.New().String(), LearnerID: uuid.New()}
	if doc != nil {
		state.ActiveDocumentID = doc.Id
	}
	sessions.Save(state)

	d := NewDispatcher(docs, notes, turns, decisions, sessions,
		&fakePipeline{answer: "grounded answer"},
		&fakeAgent{answer: "agent answer"},
		testLogger())

	return &fixture{dispatcher: d, docs: docs, notes: notes, turns: turns, decisions: decisions, state: state}
}

func threePageDoc() *entity.Document {
	return &entity.Document{
		Id:    uuid.New(),
		Title: "Physics Notes",
		Pages: map[string]string{"1": "page one", "2": "page two", "3": "page three"},
	}
}

func action(actionType string) *router.ActionRequest {
	return &router.ActionRequest{Type: actionType, Confidence: 0.9}
}

// --- tests ---

func TestNextThenPrevReturnsToOriginalPage(t *testing.T) {
	f := newFixture(threePageDoc())
	f.state.CurrentPage = 1
	ctx := context.Background()

	next := f.dispatcher.DispatchAction(ctx, f.state, action(router.ActionNextSection), "next")
	if next.Status != StatusSuccess {
		t.Fatalf("next: status = %q", next.Status)
	}
	if f.state.CurrentPage != 2 {
		t.Fatalf("cursor after next = %d, want 2", f.state.CurrentPage)
	}

	prev := f.dispatcher.DispatchAction(ctx, f.state, action(router.ActionPrevSection), "previous")
	if prev.Status != StatusSuccess {
		t.Fatalf("prev: status = %q", prev.Status)
	}
	if f.state.CurrentPage != 1 {
		t.Errorf("cursor after next+prev = %d, want 1", f.state.CurrentPage)
	}
}

func TestNextAtLastPageDoesNotMoveCursor(t *testing.T) {
	f := newFixture(threePageDoc())
	f.state.CurrentPage = 2

	got := f.dispatcher.DispatchAction(context.Background(), f.state, action(router.ActionNextSection), "next")

	if got.Status != StatusLimitReached {
		t.Errorf("status = %q, want %q", got.Status, StatusLimitReached)
	}
	if got.Message != MsgEndOfDoc {
		t.Errorf("message = %q", got.Message)
	}
	if f.state.CurrentPage != 2 {
		t.Errorf("cursor moved to %d on a terminal page", f.state.CurrentPage)
	}
}

func TestPrevAtFirstPageDoesNotMoveCursor(t *testing.T) {
	f := newFixture(threePageDoc())

	got := f.dispatcher.DispatchAction(context.Background(), f.state, action(router.ActionPrevSection), "previous")

	if got.Status != StatusStartOfDocument {
		t.Errorf("status = %q, want %q", got.Status, StatusStartOfDocument)
	}
	if f.state.CurrentPage != 0 {
		t.Errorf("cursor moved to %d at the start", f.state.CurrentPage)
	}
}

func TestOpenDocResetsCursor(t *testing.T) {
	doc := threePageDoc()
	f := newFixture(doc)
	f.state.CurrentPage = 2

	req := action(router.ActionOpenDoc)
	req.Details.DocTitle = "Physics"
	got := f.dispatcher.DispatchAction(context.Background(), f.state, req, "open the physics file")

	if got.Status != StatusSuccess {
		t.Fatalf("status = %q", got.Status)
	}
	if f.state.CurrentPage != 0 {
		t.Errorf("cursor = %d, want 0 after open", f.state.CurrentPage)
	}
	if f.state.ActiveDocumentID != doc.Id {
		t.Error("active document not set")
	}
	if got.Data["page_count"] != 3 {
		t.Errorf("page_count = %v", got.Data["page_count"])
	}
}

func TestOpenDocUnknownTitle(t *testing.T) {
	f := newFixture(nil)

	req := action(router.ActionOpenDoc)
	req.Details.DocTitle = "Chemistry"
	got := f.dispatcher.DispatchAction(context.Background(), f.state, req, "open chemistry")

	if got.Status != StatusNotFound {
		t.Errorf("status = %q, want %q", got.Status, StatusNotFound)
	}
}

func TestAddNoteFromArabicFreeText(t *testing.T) {
	f := newFixture(threePageDoc())

	got := f.dispatcher.DispatchAction(context.Background(), f.state,
		action(router.ActionAddNote), "أضف ملاحظة (مراجعة الفصل الثالث) صفحة ١٢")

	if got.Status != StatusSuccess {
		t.Fatalf("status = %q: %s", got.Status, got.Message)
	}
	if len(f.notes.created) != 1 {
		t.Fatalf("notes created = %d", len(f.notes.created))
	}
	note := f.notes.created[0]
	if note.Content != "مراجعة الفصل الثالث" {
		t.Errorf("note content = %q", note.Content)
	}
	if note.Page == nil || *note.Page != 12 {
		t.Errorf("note page = %v, want 12", note.Page)
	}
}

func TestAddNoteUsesStructuredDetailsFirst(t *testing.T) {
	f := newFixture(threePageDoc())
	page := 5

	req := action(router.ActionAddNote)
	req.Details = router.ActionDetails{NoteText: "revise chapter 3", PageNum: &page}
	got := f.dispatcher.DispatchAction(context.Background(), f.state, req, "add a note")

	if got.Status != StatusSuccess {
		t.Fatalf("status = %q", got.Status)
	}
	note := f.notes.created[0]
	if note.Content != "revise chapter 3" || note.Page == nil || *note.Page != 5 {
		t.Errorf("note = %q page %v", note.Content, note.Page)
	}
}

func TestBookmarkAndShowBookmarks(t *testing.T) {
	f := newFixture(threePageDoc())
	f.state.CurrentPage = 1
	ctx := context.Background()

	if got := f.dispatcher.DispatchAction(ctx, f.state, action(router.ActionBookmark), "bookmark this"); got.Status != StatusSuccess {
		t.Fatalf("bookmark status = %q", got.Status)
	}
	// Bookmarking the same page twice keeps a single entry.
	f.dispatcher.DispatchAction(ctx, f.state, action(router.ActionBookmark), "bookmark this")

	got := f.dispatcher.DispatchAction(ctx, f.state, action(router.ActionShowBookmarks), "show bookmarks")
	pages, ok := got.Data["bookmarks"].([]int)
	if !ok || len(pages) != 1 || pages[0] != 2 {
		t.Errorf("bookmarks = %v, want [2]", got.Data["bookmarks"])
	}
}

func TestChatToggle(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	f.dispatcher.DispatchAction(ctx, f.state, action(router.ActionOpenChat), "open chat")
	if !f.state.ChatOpen {
		t.Error("chat should be open")
	}
	f.dispatcher.DispatchAction(ctx, f.state, action(router.ActionCloseChat), "close chat")
	if f.state.ChatOpen {
		t.Error("chat should be closed")
	}
}

func TestUnknownActionCarriesClarification(t *testing.T) {
	f := newFixture(nil)

	req := &router.ActionRequest{Type: router.ActionUnknown, Message: "Action type ambiguous or unavailable. Please clarify."}
	got := f.dispatcher.DispatchAction(context.Background(), f.state, req, "do the thing")

	if got.Status != StatusUnknownAction {
		t.Errorf("status = %q", got.Status)
	}
	if got.Message == "" {
		t.Error("expected a clarification message")
	}
}

func TestQueryWithoutDocument(t *testing.T) {
	f := newFixture(nil)

	got := f.dispatcher.DispatchQuery(context.Background(), f.state,
		&router.QueryRequest{Route: router.RouteQA, Confidence: 0.9}, "what is inertia?")

	if got.Status != StatusNoDocument {
		t.Errorf("status = %q, want %q", got.Status, StatusNoDocument)
	}
	if got.Message != MsgNoDocuments {
		t.Errorf("message = %q", got.Message)
	}
}

func TestQueryWithoutDocumentStillRecordsTurn(t *testing.T) {
	f := newFixture(nil)

	got := f.dispatcher.DispatchQuery(context.Background(), f.state,
		&router.QueryRequest{Route: router.RouteQA, Confidence: 0.9}, "what is inertia?")

	if got.Status != StatusNoDocument {
		t.Fatalf("status = %q, want %q", got.Status, StatusNoDocument)
	}
	if len(f.turns.turns) != 1 {
		t.Fatalf("turns persisted = %d, want 1", len(f.turns.turns))
	}
	turn := f.turns.turns[0]
	if turn.Query != "what is inertia?" || turn.Answer != MsgNoDocuments {
		t.Errorf("turn = %q / %q", turn.Query, turn.Answer)
	}
}

func TestQueryPipelineErrorStillRecordsTurn(t *testing.T) {
	f := newFixture(threePageDoc())
	f.dispatcher.pipeline = &fakePipeline{err: context.DeadlineExceeded}

	got := f.dispatcher.DispatchQuery(context.Background(), f.state,
		&router.QueryRequest{Route: router.RouteQA, Confidence: 0.9}, "what is inertia?")

	if got.Status != StatusError {
		t.Fatalf("status = %q, want %q", got.Status, StatusError)
	}
	if len(f.turns.turns) != 1 {
		t.Fatalf("turns persisted = %d, want 1", len(f.turns.turns))
	}
	if f.turns.turns[0].Answer != got.Message {
		t.Errorf("recorded answer %q does not match result message %q", f.turns.turns[0].Answer, got.Message)
	}
}

func TestQueryRunsPipelineAndRecordsAudit(t *testing.T) {
	f := newFixture(threePageDoc())

	got := f.dispatcher.DispatchQuery(context.Background(), f.state,
		&router.QueryRequest{Route: router.RouteQA, Confidence: 0.9}, "what is inertia?")

	if got.Status != StatusSuccess || got.Message != "grounded answer" {
		t.Errorf("result = %q / %q", got.Status, got.Message)
	}
	if len(f.decisions.decisions) != 1 || f.decisions.decisions[0].Route != router.RouteQA {
		t.Errorf("decisions = %+v", f.decisions.decisions)
	}
	if len(f.turns.turns) != 1 {
		t.Errorf("turns = %d, want 1", len(f.turns.turns))
	}
}

func TestContentAgentRouteWorksWithoutDocument(t *testing.T) {
	f := newFixture(nil)

	got := f.dispatcher.DispatchQuery(context.Background(), f.state,
		&router.QueryRequest{Route: router.RouteContentAgent, Confidence: 0.9}, "let's chat")

	if got.Status != StatusSuccess || got.Message != "agent answer" {
		t.Errorf("result = %q / %q", got.Status, got.Message)
	}
}

var _ contract.DocumentRepository = (*fakeDocumentRepo)(nil)
var _ contract.NoteRepository = (*fakeNoteRepo)(nil)
var _ contract.ConversationTurnRepository = (*fakeTurnRepo)(nil)
var _ contract.RouterDecisionRepository = (*fakeDecisionRepo)(nil)
