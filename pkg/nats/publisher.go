package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"huddleup-faq-be/pkg/events"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName     = "ASSISTANT_EVENTS"
	subjectPrefix  = "events."
	publishTimeout = 3 * time.Second
	headerType     = "Event-Type"
)

// Publisher sends interaction events to JetStream. Each message carries a
// fresh id so the stream drops duplicates from client retries.
type Publisher struct {
	conn   *nats.Conn
	stream jetstream.JetStream
}

var _ events.Publisher = (*Publisher)(nil)

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("huddleup-faq-be"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	p := &Publisher{conn: conn, stream: js}
	if err := p.ensureStream(); err != nil {
		// publishing still works when the stream exists with another config
		log.Printf("Warn: stream %s not ensured: %v", streamName, err)
	}
	return p, nil
}

func (p *Publisher) ensureStream() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := p.stream.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       streamName,
		Subjects:   []string{subjectPrefix + ">"},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     7 * 24 * time.Hour,
		Duplicates: 2 * time.Minute,
	})
	return err
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	msg, err := NewMessage(event)
	if err != nil {
		return err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, publishTimeout)
		defer cancel()
	}

	if _, err := p.stream.PublishMsg(ctx, msg, jetstream.WithMsgID(uuid.NewString())); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	return nil
}

// NewMessage encodes the event payload as JSON under its subject.
func NewMessage(event events.Event) (*nats.Msg, error) {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.EventType(), err)
	}
	msg := nats.NewMsg(Subject(event))
	msg.Data = data
	msg.Header.Set(headerType, event.EventType())
	return msg, nil
}

func Subject(event events.Event) string {
	return subjectPrefix + event.EventType()
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
