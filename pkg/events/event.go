package events

import (
	"context"
	"time"
)

const (
	TypeFaqAsked           = "faq.asked"
	TypeDiscoveryConversed = "discovery.conversed"
	TypeFaqCreated         = "faq.created"
)

// Event is anything that can be published on the interaction bus.
type Event interface {
	// EventType is used as the subject suffix, e.g. "faq.asked".
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

// Payload includes the occurrence time so consumers do not depend on message metadata.
func (e BaseEvent) Payload() map[string]interface{} {
	out := make(map[string]interface{}, len(e.Data)+1)
	for k, v := range e.Data {
		out[k] = v
	}
	out["occurred_at"] = e.OccurredAt.UTC().Format(time.RFC3339)
	return out
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher is satisfied by the NATS publisher and by test doubles.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
