package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEventPayloadAddsTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e := BaseEvent{Type: TypeFaqAsked, Data: map[string]interface{}{"strategy": "openai_direct"}, OccurredAt: at}

	payload := e.Payload()

	assert.Equal(t, "openai_direct", payload["strategy"])
	assert.Equal(t, "2026-03-01T10:00:00Z", payload["occurred_at"])
	// source map is untouched
	_, leaked := e.Data["occurred_at"]
	assert.False(t, leaked)
	assert.Equal(t, "faq.asked", e.EventType())
}
