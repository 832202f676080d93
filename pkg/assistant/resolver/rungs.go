package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"huddleup-faq-be/pkg/assistant"
	"huddleup-faq-be/pkg/llm"
)

// attempt accumulates state while walking the ladder.
type attempt struct {
	question  string
	threshold float64
	answer    string
	strategy  string
	sources   []assistant.SourceTag
}

func (a *attempt) commit(answer, strategy string, tags ...assistant.SourceTag) {
	a.answer = answer
	a.strategy = strategy
	a.sources = append(a.sources, tags...)
}

// A rung returns true once it has committed an answer.
type rung struct {
	name string
	run  func(ctx context.Context, a *attempt) bool
}

func (r *Resolver) runRung(ctx context.Context, step rung, a *attempt) (committed bool) {
	ctx, span := tracer.Start(ctx, "resolver."+step.name)
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error(module, "Rung panicked", map[string]interface{}{
				"rung":  step.name,
				"error": fmt.Sprint(p),
			})
			committed = false
		}
	}()
	return step.run(ctx, a)
}

// contentFields are checked in order on the best match.
var contentFields = []func(SearchMatch) interface{}{
	func(m SearchMatch) interface{} { return m.Content },
	func(m SearchMatch) interface{} { return m.Text },
	func(m SearchMatch) interface{} { return m.Answer },
	func(m SearchMatch) interface{} { return m.Metadata["content"] },
	func(m SearchMatch) interface{} { return m.Metadata["text"] },
	func(m SearchMatch) interface{} { return m.Metadata["answer"] },
}

// UsableContent returns the first field whose trimmed text is longer than minLen runes.
func UsableContent(m SearchMatch, minLen int) (string, bool) {
	for _, field := range contentFields {
		v := field(m)
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minLen {
			return s, true
		}
	}
	return "", false
}

func (r *Resolver) semanticRung(ctx context.Context, a *attempt) bool {
	if r.vectors == nil {
		return false
	}

	matches, err := r.vectors.Search(ctx, a.question, a.threshold, r.cfg.TopK)
	if err != nil {
		r.logger.Warn(module, "Semantic search failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	if len(matches) == 0 {
		r.logger.Debug(module, "No semantic matches", map[string]interface{}{"threshold": a.threshold})
		return false
	}

	best := matches[0]
	if content, ok := UsableContent(best, r.cfg.MinContentLength); ok {
		tag := assistant.NewSourceTag(SourceKnowledgeBaseSemantic, map[string]interface{}{
			"similarity": best.Score,
			"id":         best.ID,
			"source":     string(best.Kind),
		})
		answer, strategy := r.enhance(ctx, a.question, content)
		a.commit(answer, strategy, tag)
		return true
	}

	return r.guided(ctx, a, matches)
}

// enhance lets the completer polish a knowledge base answer. The original
// text wins on any failure or when the rewrite is trivial.
func (r *Resolver) enhance(ctx context.Context, question, content string) (string, string) {
	if r.completer == nil {
		return content, StrategySemanticContent
	}

	enhanced, err := r.completer.Chat(ctx, enhancementMessages(question, content),
		llm.WithMaxTokens(400), llm.WithTemperature(0.6))
	if err != nil {
		r.logger.Warn(module, "AI enhancement failed", map[string]interface{}{"error": err.Error()})
		return content, StrategySemanticContent
	}

	enhanced = strings.TrimSpace(enhanced)
	if utf8.RuneCountInString(enhanced) < r.cfg.MinEnhancedLength || strings.EqualFold(enhanced, content) {
		return content, StrategySemanticContent
	}
	return enhanced, StrategySemanticEnhanced
}

func (r *Resolver) guided(ctx context.Context, a *attempt, matches []SearchMatch) bool {
	if r.completer == nil {
		return false
	}

	top := matches
	if len(top) > 3 {
		top = top[:3]
	}
	scores := make([]float64, len(top))
	var sum float64
	for i, m := range top {
		scores[i] = m.Score
		sum += m.Score
	}

	answer, err := r.completer.Chat(ctx, guidedMessages(a.question, len(matches), scores),
		llm.WithMaxTokens(350), llm.WithTemperature(0.7))
	if err != nil {
		r.logger.Warn(module, "Context-guided generation failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}

	a.commit(answer, StrategySemanticGuided, assistant.NewSourceTag(SourceSemanticGuided, map[string]interface{}{
		"matches_found":  len(matches),
		"avg_similarity": sum / float64(len(top)),
	}))
	return true
}

func (r *Resolver) keywordRung(ctx context.Context, a *attempt) bool {
	if r.keywords == nil {
		return false
	}

	faqs, err := r.keywords.SearchFaqs(ctx, a.question, r.cfg.KeywordLimit)
	if err != nil {
		r.logger.Warn(module, "FAQ keyword search failed", map[string]interface{}{"error": err.Error()})
	} else if len(faqs) > 0 && strings.TrimSpace(faqs[0].Answer) != "" {
		faq := faqs[0]
		a.commit(faq.Answer, StrategyTraditionalFaq, assistant.NewSourceTag(SourceFaqTraditional, map[string]interface{}{
			"question": faq.Question,
			"category": faq.Category,
		}))
		return true
	}

	docs, err := r.keywords.SearchDocuments(ctx, a.question, r.cfg.KeywordLimit)
	if err != nil {
		r.logger.Warn(module, "Document keyword search failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	if len(docs) > 0 && strings.TrimSpace(docs[0].Content) != "" {
		doc := docs[0]
		a.commit(doc.Content, StrategyTraditionalDocument, assistant.NewSourceTag(SourceDocumentTraditional, map[string]interface{}{
			"title": doc.Title,
		}))
		return true
	}
	return false
}

// generationRung always commits.
func (r *Resolver) generationRung(ctx context.Context, a *attempt) bool {
	if r.completer == nil {
		a.commit(msgNoServices, StrategyNoServices)
		return true
	}

	answer, err := r.completer.Chat(ctx, directMessages(a.question),
		llm.WithMaxTokens(350), llm.WithTemperature(0.7))
	answer = strings.TrimSpace(answer)

	switch {
	case err != nil && !errors.Is(err, llm.ErrEmptyResponse):
		r.logger.Error(module, "Direct generation failed", map[string]interface{}{"error": err.Error()})
		a.commit(msgServiceError, StrategyServiceError)
	case answer == "":
		a.commit(msgNoResponse, StrategyNoResponse)
	default:
		a.commit(answer, StrategyDirect, assistant.NewSourceTag(SourceGenerated, map[string]interface{}{
			"method": "direct_generation",
		}))
	}
	return true
}
