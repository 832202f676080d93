package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// ChatMessage stores one question/answer exchange of a session.
type ChatMessage struct {
	Id                   uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId            string            `gorm:"type:varchar(255);not null;index"`
	UserMessage          string            `gorm:"type:text;not null"`
	BotResponse          string            `gorm:"type:text;not null"`
	UserMessageEmbedding *pgvector.Vector  `gorm:"type:vector(768)"` // filled asynchronously
	KnowledgeSources     datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt            time.Time         `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
