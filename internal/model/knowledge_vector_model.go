package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// KnowledgeVector is one embedded entry of the semantic index. A source row
// (FAQ or document chunk) owns at most one vector.
type KnowledgeVector struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceType string            `gorm:"type:varchar(30);not null;uniqueIndex:idx_knowledge_source"`
	SourceId   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_knowledge_source"`
	Title      string            `gorm:"type:text"`
	Content    string            `gorm:"type:text"`
	Embedding  pgvector.Vector   `gorm:"type:vector(768)"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime"`
}

func (KnowledgeVector) TableName() string {
	return "knowledge_vectors"
}
