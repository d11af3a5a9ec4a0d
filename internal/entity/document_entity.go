package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded learning document. Pages maps a page number
// (string key, e.g. "1") to that page's text; "end of document" means a
// requested page beyond the highest existing key.
type Document struct {
	Id         uuid.UUID
	SessionId  *uuid.UUID // nullable: a document may be session-less
	Title      string
	Content    string
	Pages      map[string]string
	Language   string
	SourcePath string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
