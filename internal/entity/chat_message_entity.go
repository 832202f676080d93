package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id                   uuid.UUID
	SessionId            string
	UserMessage          string
	BotResponse          string
	UserMessageEmbedding []float32
	KnowledgeSources     map[string]interface{}
	CreatedAt            time.Time
}
