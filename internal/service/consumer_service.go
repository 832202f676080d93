package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"huddleup-faq-be/internal/dto"
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/internal/repository/specification"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"gorm.io/gorm"
)

const (
	consumerModule = "CONSUMER"
	handlerName    = "embed-jobs"
)

// Jobs failing with these are acked, not retried.
var (
	errGone        = errors.New("source row not found")
	errUnknownKind = errors.New("unknown embed job kind")
	errNoEmbedder  = errors.New("no embedding provider configured")
)

// DefaultRetry bounds in-process retries of a failing job. A job still
// failing after the last attempt is dropped.
func DefaultRetry() middleware.Retry {
	return middleware.Retry{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2,
	}
}

type IConsumerService interface {
	Consume(ctx context.Context) error
	Handle(ctx context.Context, job dto.EmbedJobMessage) error
}

type consumerService struct {
	subscriber        message.Subscriber
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
	retry             middleware.Retry
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &consumerService{
		subscriber:        subscriber,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
		retry:             DefaultRetry(),
	}
}

// Consume starts a router on the embed topic and returns once it is
// subscribed. The router stops when ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NopLogger{})
	if err != nil {
		return fmt.Errorf("create router: %w", err)
	}

	handle := cs.retry.Middleware(func(msg *message.Message) ([]*message.Message, error) {
		return nil, cs.handleMessage(msg)
	})
	router.AddNoPublisherHandler(handlerName, cs.topicName, cs.subscriber, func(msg *message.Message) error {
		if _, err := handle(msg); err != nil {
			cs.logger.Error(consumerModule, "Embed job dropped after retries", map[string]interface{}{
				"error":      err.Error(),
				"message_id": msg.UUID,
			})
		}
		return nil
	})

	runErr := make(chan error, 1)
	go func() {
		runErr <- router.Run(ctx)
	}()

	select {
	case <-router.Running():
		return nil
	case err := <-runErr:
		if err == nil {
			err = errors.New("router stopped before running")
		}
		return err
	case <-ctx.Done():
		_ = router.Close()
		return ctx.Err()
	}
}

// handleMessage returns an error only for failures worth retrying.
func (cs *consumerService) handleMessage(msg *message.Message) error {
	var job dto.EmbedJobMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.logger.Error(consumerModule, "Malformed embed job", map[string]interface{}{"error": err.Error(), "message_id": msg.UUID})
		return nil
	}

	err := cs.Handle(msg.Context(), job)
	switch {
	case err == nil:
		cs.logger.Info(consumerModule, "Embedding stored", map[string]interface{}{"kind": job.Kind, "id": job.Id})
		return nil
	case errors.Is(err, errGone):
		cs.logger.Warn(consumerModule, "Embed job source is gone", map[string]interface{}{"kind": job.Kind, "id": job.Id})
		return nil
	case errors.Is(err, errNoEmbedder):
		cs.logger.Warn(consumerModule, "Embed job skipped, no embedding provider", map[string]interface{}{"kind": job.Kind, "id": job.Id})
		return nil
	case errors.Is(err, errUnknownKind):
		cs.logger.Error(consumerModule, "Unknown embed job kind", map[string]interface{}{"kind": job.Kind, "id": job.Id})
		return nil
	default:
		cs.logger.Warn(consumerModule, "Embed job failed", map[string]interface{}{
			"error": err.Error(),
			"kind":  job.Kind,
			"id":    job.Id,
		})
		return err
	}
}

// Handle embeds the row a job points at and stores the vector.
func (cs *consumerService) Handle(ctx context.Context, job dto.EmbedJobMessage) error {
	switch job.Kind {
	case dto.EmbedKindFaq:
		return cs.embedFaq(ctx, job)
	case dto.EmbedKindChunk:
		return cs.embedChunk(ctx, job)
	case dto.EmbedKindChat:
		return cs.embedChat(ctx, job)
	default:
		return fmt.Errorf("%w: %q", errUnknownKind, job.Kind)
	}
}

func (cs *consumerService) embed(ctx context.Context, text, task string) ([]float32, error) {
	if cs.embeddingProvider == nil {
		return nil, errNoEmbedder
	}
	res, err := cs.embeddingProvider.Generate(ctx, text, task)
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	return res.Values, nil
}

func faqDocument(f *entity.FaqEntry) string {
	return fmt.Sprintf("Question: %s\nAnswer: %s", f.Question, f.Answer)
}

func (cs *consumerService) embedFaq(ctx context.Context, job dto.EmbedJobMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: job.Id})
	if err != nil {
		return fmt.Errorf("load faq: %w", err)
	}
	if faq == nil {
		return errGone
	}

	values, err := cs.embed(ctx, faqDocument(faq), embedding.TaskRetrievalDocument)
	if err != nil {
		return err
	}

	return uow.KnowledgeVectorRepository().Upsert(ctx, &entity.KnowledgeVector{
		SourceType: entity.SourceTypeFaq,
		SourceId:   faq.Id,
		Title:      faq.Question,
		Content:    faq.Answer,
		Embedding:  values,
		Metadata: map[string]interface{}{
			"question": faq.Question,
			"answer":   faq.Answer,
			"category": faq.Category,
		},
	})
}

func (cs *consumerService) embedChunk(ctx context.Context, job dto.EmbedJobMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.DocumentRepository().FindOneChunk(ctx, specification.ByID{ID: job.Id})
	if err != nil {
		return fmt.Errorf("load chunk: %w", err)
	}
	if chunk == nil || strings.TrimSpace(chunk.ChunkText) == "" {
		return errGone
	}

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: chunk.DocumentId})
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	title, category := "", ""
	if doc != nil {
		title, category = doc.Title, doc.Category
	}

	values, err := cs.embed(ctx, chunk.ChunkText, embedding.TaskRetrievalDocument)
	if err != nil {
		return err
	}

	return uow.KnowledgeVectorRepository().Upsert(ctx, &entity.KnowledgeVector{
		SourceType: entity.SourceTypeDocument,
		SourceId:   chunk.Id,
		Title:      title,
		Content:    chunk.ChunkText,
		Embedding:  values,
		Metadata: map[string]interface{}{
			"document_id": chunk.DocumentId.String(),
			"chunk_index": chunk.ChunkIndex,
			"category":    category,
		},
	})
}

func (cs *consumerService) embedChat(ctx context.Context, job dto.EmbedJobMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.ChatMessageRepository().FindOne(ctx, specification.ByID{ID: job.Id})
	if err != nil {
		return fmt.Errorf("load chat message: %w", err)
	}
	if msg == nil {
		return errGone
	}

	values, err := cs.embed(ctx, msg.UserMessage, embedding.TaskRetrievalQuery)
	if err != nil {
		return err
	}

	err = uow.ChatMessageRepository().UpdateEmbedding(ctx, msg.Id, values)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errGone
	}
	return err
}
