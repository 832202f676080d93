package knowledge

import (
	"context"
	"encoding/json"
	"fmt"

	"huddleup-faq-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Enqueuer schedules a row for (re-)embedding by the consumer.
type Enqueuer interface {
	Enqueue(ctx context.Context, job dto.EmbedJobMessage) error
}

type EmbedQueue struct {
	publisher message.Publisher
	topic     string
}

func NewEmbedQueue(publisher message.Publisher, topic string) *EmbedQueue {
	return &EmbedQueue{publisher: publisher, topic: topic}
}

func (q *EmbedQueue) Enqueue(ctx context.Context, job dto.EmbedJobMessage) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal embed job: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := q.publisher.Publish(q.topic, msg); err != nil {
		return fmt.Errorf("publish embed job %s/%s: %w", job.Kind, job.Id, err)
	}
	return nil
}
