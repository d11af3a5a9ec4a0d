package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters by owning chat session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByDocumentID filters chunks/notes by owning document
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByLearnerID filters by owning learner profile
type ByLearnerID struct {
	LearnerID uuid.UUID
}

func (s ByLearnerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("learner_id = ?", s.LearnerID)
}

// ByTutoringSessionID filters interactions by tutoring session
type ByTutoringSessionID struct {
	TutoringSessionID uuid.UUID
}

func (s ByTutoringSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tutoring_session_id = ?", s.TutoringSessionID)
}

// ByActive filters tutoring sessions on the active flag
type ByActive struct {
	Active bool
}

func (s ByActive) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", s.Active)
}

// ByPage filters notes by page number
type ByPage struct {
	Page int
}

func (s ByPage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page = ?", s.Page)
}

// ByTitleLike matches documents whose title contains the term,
// case-insensitive. ILIKE is Postgres-specific.
type ByTitleLike struct {
	Term string
}

func (s ByTitleLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Term+"%")
}

// ByRoute filters router decisions by chosen route
type ByRoute struct {
	Route string
}

func (s ByRoute) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("route = ?", s.Route)
}
