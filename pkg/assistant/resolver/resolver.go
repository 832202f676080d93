package resolver

import (
	"context"
	"fmt"
	"runtime/debug"

	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/pkg/assistant"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const module = "RESOLVER"

var tracer = otel.Tracer("huddleup-faq-be/resolver")

type Config struct {
	SemanticThreshold     float64
	PricingThresholdDrop  float64
	PricingThresholdFloor float64
	TopK                  int
	KeywordLimit          int
	// MinContentLength is exclusive: a candidate needs strictly more runes.
	MinContentLength int
	// MinEnhancedLength below which an enhancement is discarded.
	MinEnhancedLength int
}

func DefaultConfig() Config {
	return Config{
		SemanticThreshold:     0.6,
		PricingThresholdDrop:  0.2,
		PricingThresholdFloor: 0.1,
		TopK:                  5,
		KeywordLimit:          3,
		MinContentLength:      10,
		MinEnhancedLength:     50,
	}
}

// Resolver runs the answer ladder. Any collaborator may be nil, which
// makes the rungs depending on it produce nothing.
type Resolver struct {
	vectors   VectorIndex
	keywords  KeywordStore
	completer assistant.Completer
	recorder  assistant.InteractionRecorder
	cfg       Config
	logger    logger.ILogger
	rungs     []rung
}

type Deps struct {
	Vectors   VectorIndex
	Keywords  KeywordStore
	Completer assistant.Completer
	Recorder  assistant.InteractionRecorder
	Logger    logger.ILogger
}

func New(deps Deps, cfg Config) *Resolver {
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	r := &Resolver{
		vectors:   deps.Vectors,
		keywords:  deps.Keywords,
		completer: deps.Completer,
		recorder:  deps.Recorder,
		cfg:       cfg,
		logger:    deps.Logger,
	}
	r.rungs = []rung{
		{name: "semantic", run: r.semanticRung},
		{name: "keyword", run: r.keywordRung},
		{name: "generation", run: r.generationRung},
	}
	return r
}

// Resolve answers question for sessionID. The only error returned is
// assistant.ErrEmptyQuestion; every other failure is folded into the Result.
func (r *Resolver) Resolve(ctx context.Context, question, sessionID string) (res *Result, err error) {
	if err := assistant.ValidateQuestion(question); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "resolver.Resolve")
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error(module, "Unexpected failure while resolving question", map[string]interface{}{
				"error":      fmt.Sprint(p),
				"session_id": sessionID,
				"stack":      string(debug.Stack()),
			})
			res = &Result{Answer: MsgUnexpected, Success: false, Sources: []assistant.SourceTag{}, Strategy: StrategyFailed}
			err = nil
		}
	}()

	threshold := r.cfg.EffectiveThreshold(question)
	att := &attempt{question: question, threshold: threshold}

	for _, step := range r.rungs {
		if r.runRung(ctx, step, att) {
			break
		}
	}

	if att.strategy == "" {
		// only reachable when the generation rung itself blew up
		att.answer, att.strategy = msgServiceError, StrategyServiceError
	}

	span.SetAttributes(
		attribute.String("resolver.strategy", att.strategy),
		attribute.Float64("resolver.threshold", threshold),
	)

	r.logger.Info(module, "Question resolved", map[string]interface{}{
		"session_id": sessionID,
		"strategy":   att.strategy,
		"threshold":  threshold,
		"sources":    len(att.sources),
	})

	sources := att.sources
	if sources == nil {
		sources = []assistant.SourceTag{}
	}
	result := &Result{
		Answer:    att.answer,
		Success:   true,
		Sources:   sources,
		Strategy:  att.strategy,
		Threshold: threshold,
	}

	r.persist(ctx, sessionID, question, result)
	return result, nil
}

// persist is best effort; failures never reach the caller.
func (r *Resolver) persist(ctx context.Context, sessionID, question string, result *Result) {
	if r.recorder == nil || sessionID == "" {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error(module, "Recorder panicked", map[string]interface{}{"error": fmt.Sprint(p), "session_id": sessionID})
		}
	}()

	err := r.recorder.SaveInteraction(ctx, assistant.Interaction{
		SessionID: sessionID,
		Question:  question,
		Answer:    result.Answer,
		Sources:   result.Sources,
		Strategy:  result.Strategy,
	})
	if err != nil {
		r.logger.Warn(module, "Could not save chat interaction", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionID,
		})
	}
}
