package discovery

import (
	"context"
	"fmt"
	"runtime/debug"

	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/pkg/assistant"
	"huddleup-faq-be/pkg/assistant/engagement"
	"huddleup-faq-be/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const module = "DISCOVERY"

const StrategyDiscovery = "discovery"

// Outcomes, useful for observability only.
const (
	OutcomeStructured  = "structured"
	OutcomeRawText     = "raw_text"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
)

const (
	msgMissingResponse = "I'd love to help you learn more about HuddleUp!"
	msgUnavailable     = "I'd love to help you learn more about HuddleUp! What specific challenges are you facing with your current learning or collaboration processes?"
	MsgFailed          = "I'd love to help you learn more about HuddleUp! What specific questions do you have?"
)

var tracer = otel.Tracer("huddleup-faq-be/discovery")

type Reply struct {
	Text       string              `json:"response"`
	Actions    []engagement.Action `json:"actions"`
	Success    bool                `json:"success"`
	Stage      engagement.Stage    `json:"stage"`
	QueryCount int                 `json:"query_count"`
	Profile    engagement.Profile  `json:"user_profile"`
	Outcome    string              `json:"-"`
}

type Orchestrator struct {
	completer assistant.Completer
	recorder  assistant.InteractionRecorder
	tracker   *engagement.Tracker
	logger    logger.ILogger
}

type Deps struct {
	Completer assistant.Completer
	History   assistant.HistoryReader
	Recorder  assistant.InteractionRecorder
	Logger    logger.ILogger
}

func New(deps Deps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	return &Orchestrator{
		completer: deps.Completer,
		recorder:  deps.Recorder,
		tracker:   engagement.NewTracker(deps.History, deps.Logger),
		logger:    deps.Logger,
	}
}

// Converse produces a reply plus next-step actions. It only returns an
// error for a blank question.
func (o *Orchestrator) Converse(ctx context.Context, question, sessionID string) (reply *Reply, err error) {
	if err := assistant.ValidateQuestion(question); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "discovery.Converse")
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			o.logger.Error(module, "Unexpected failure in discovery conversation", map[string]interface{}{
				"error":      fmt.Sprint(p),
				"session_id": sessionID,
				"stack":      string(debug.Stack()),
			})
			questions, _ := engagement.Lookup(engagement.ActionQuestions)
			reply = &Reply{
				Text:    MsgFailed,
				Actions: []engagement.Action{questions},
				Success: false,
				Stage:   engagement.StageInitial,
				Profile: engagement.UnknownProfile(),
				Outcome: OutcomeFailed,
			}
			err = nil
		}
	}()

	turns, profile := o.tracker.Snapshot(ctx, sessionID)
	queryCount := assistant.CountQueries(turns)
	stage := engagement.StageFor(queryCount)

	reply = &Reply{
		Success:    true,
		Stage:      stage,
		QueryCount: queryCount,
		Profile:    profile,
	}
	o.complete(ctx, question, turns, reply)

	span.SetAttributes(
		attribute.String("discovery.stage", string(stage)),
		attribute.String("discovery.outcome", reply.Outcome),
		attribute.Int("discovery.actions", len(reply.Actions)),
	)

	o.logger.Info(module, "Discovery reply built", map[string]interface{}{
		"session_id":  sessionID,
		"stage":       stage,
		"query_count": queryCount,
		"readiness":   profile.Readiness,
		"outcome":     reply.Outcome,
		"actions":     len(reply.Actions),
	})

	o.persist(ctx, sessionID, question, reply)
	return reply, nil
}

func (o *Orchestrator) complete(ctx context.Context, question string, turns []assistant.Turn, reply *Reply) {
	readiness := reply.Profile.Readiness

	if o.completer == nil {
		reply.Text, reply.Actions, reply.Outcome = msgUnavailable, engagement.DefaultActions(reply.Stage, readiness), OutcomeUnavailable
		return
	}

	messages := buildMessages(question, turns, reply.Profile, reply.QueryCount, reply.Stage)
	text, err := o.completer.Chat(ctx, messages, llm.WithJSONMode(), llm.WithMaxTokens(400), llm.WithTemperature(0.7))
	if err != nil {
		o.logger.Warn(module, "Discovery completion failed", map[string]interface{}{"error": err.Error()})
		reply.Text, reply.Actions, reply.Outcome = msgUnavailable, engagement.DefaultActions(reply.Stage, readiness), OutcomeUnavailable
		return
	}

	parsed, err := parseReply(text)
	if err != nil {
		o.logger.Warn(module, "Completion ignored the JSON contract, using raw text", map[string]interface{}{"length": len(text)})
		reply.Text, reply.Actions, reply.Outcome = text, engagement.DefaultActions(reply.Stage, readiness), OutcomeRawText
		return
	}

	reply.Text = parsed.Response
	if reply.Text == "" {
		reply.Text = msgMissingResponse
	}
	reply.Actions = selectActions(parsed, reply.Stage, readiness)
	reply.Outcome = OutcomeStructured
}

func (o *Orchestrator) persist(ctx context.Context, sessionID, question string, reply *Reply) {
	if o.recorder == nil || sessionID == "" {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			o.logger.Error(module, "Recorder panicked", map[string]interface{}{"error": fmt.Sprint(p), "session_id": sessionID})
		}
	}()

	err := o.recorder.SaveInteraction(ctx, assistant.Interaction{
		SessionID: sessionID,
		Question:  question,
		Answer:    reply.Text,
		Strategy:  StrategyDiscovery,
		Extra: map[string]interface{}{
			"type":         StrategyDiscovery,
			"actions":      reply.Actions,
			"user_profile": reply.Profile,
			"stage":        reply.Stage,
		},
	})
	if err != nil {
		o.logger.Warn(module, "Could not save discovery turn", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionID,
		})
	}
}
