package mapper

import (
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var embedding []float32
	if msg.UserMessageEmbedding != nil {
		embedding = msg.UserMessageEmbedding.Slice()
	}

	return &entity.ChatMessage{
		Id:                   msg.Id,
		SessionId:            msg.SessionId,
		UserMessage:          msg.UserMessage,
		BotResponse:          msg.BotResponse,
		UserMessageEmbedding: embedding,
		KnowledgeSources:     msg.KnowledgeSources,
		CreatedAt:            msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(msg.UserMessageEmbedding) > 0 {
		v := pgvector.NewVector(msg.UserMessageEmbedding)
		embedding = &v
	}

	return &model.ChatMessage{
		Id:                   msg.Id,
		SessionId:            msg.SessionId,
		UserMessage:          msg.UserMessage,
		BotResponse:          msg.BotResponse,
		UserMessageEmbedding: embedding,
		KnowledgeSources:     msg.KnowledgeSources,
		CreatedAt:            msg.CreatedAt,
	}
}
