package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceTypeFaq      = "faq"
	SourceTypeDocument = "document"
)

type KnowledgeVector struct {
	Id         uuid.UUID
	SourceType string
	SourceId   uuid.UUID
	Title      string
	Content    string
	Embedding  []float32
	Metadata   map[string]interface{}
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
