package knowledge

import (
	"context"
	"fmt"

	"huddleup-faq-be/internal/dto"
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/internal/repository/specification"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/pkg/assistant"
)

// HistoryStore persists exchanges in chat_messages. Each row expands to a
// user turn followed by an assistant turn.
type HistoryStore struct {
	uowFactory unitofwork.RepositoryFactory
	queue      Enqueuer
	logger     logger.ILogger
}

var (
	_ assistant.HistoryReader       = (*HistoryStore)(nil)
	_ assistant.InteractionRecorder = (*HistoryStore)(nil)
)

func NewHistoryStore(uowFactory unitofwork.RepositoryFactory, queue Enqueuer, log logger.ILogger) *HistoryStore {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &HistoryStore{uowFactory: uowFactory, queue: queue, logger: log}
}

func (h *HistoryStore) SaveInteraction(ctx context.Context, in assistant.Interaction) error {
	msg := &entity.ChatMessage{
		SessionId:        in.SessionID,
		UserMessage:      in.Question,
		BotResponse:      in.Answer,
		KnowledgeSources: in.KnowledgeSources(),
	}
	if err := h.uowFactory.NewUnitOfWork(ctx).ChatMessageRepository().Create(ctx, msg); err != nil {
		return fmt.Errorf("save chat message: %w", err)
	}

	if h.queue == nil {
		return nil
	}
	// embedding failures never fail the save
	if err := h.queue.Enqueue(ctx, dto.EmbedJobMessage{Kind: dto.EmbedKindChat, Id: msg.Id}); err != nil {
		h.logger.Warn(module, "Could not schedule chat embedding", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.Id,
		})
	}
	return nil
}

func (h *HistoryStore) Messages(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error) {
	return h.uowFactory.NewUnitOfWork(ctx).ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
}

func (h *HistoryStore) History(ctx context.Context, sessionID string) ([]assistant.Turn, error) {
	messages, err := h.Messages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return ToTurns(messages), nil
}

func ToTurns(messages []*entity.ChatMessage) []assistant.Turn {
	turns := make([]assistant.Turn, 0, len(messages)*2)
	for _, m := range messages {
		turns = append(turns,
			assistant.Turn{Role: assistant.RoleUser, Content: m.UserMessage},
			assistant.Turn{Role: assistant.RoleAssistant, Content: m.BotResponse},
		)
	}
	return turns
}
