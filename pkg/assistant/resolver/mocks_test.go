package resolver

import (
	"context"

	"huddleup-faq-be/pkg/assistant"
	"huddleup-faq-be/pkg/llm"

	"github.com/stretchr/testify/mock"
)

type mockVectors struct{ mock.Mock }

func (m *mockVectors) Search(ctx context.Context, question string, threshold float64, topK int) ([]SearchMatch, error) {
	args := m.Called(ctx, question, threshold, topK)
	matches, _ := args.Get(0).([]SearchMatch)
	return matches, args.Error(1)
}

type mockKeywords struct{ mock.Mock }

func (m *mockKeywords) SearchFaqs(ctx context.Context, query string, limit int) ([]FaqHit, error) {
	args := m.Called(ctx, query, limit)
	hits, _ := args.Get(0).([]FaqHit)
	return hits, args.Error(1)
}

func (m *mockKeywords) SearchDocuments(ctx context.Context, query string, limit int) ([]DocumentHit, error) {
	args := m.Called(ctx, query, limit)
	hits, _ := args.Get(0).([]DocumentHit)
	return hits, args.Error(1)
}

type mockCompleter struct{ mock.Mock }

func (m *mockCompleter) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

type mockRecorder struct{ mock.Mock }

func (m *mockRecorder) SaveInteraction(ctx context.Context, interaction assistant.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

// thresholdIndex returns its matches only when the caller's threshold admits them.
type thresholdIndex struct {
	matches []SearchMatch
	seen    []float64
}

func (t *thresholdIndex) Search(_ context.Context, _ string, threshold float64, topK int) ([]SearchMatch, error) {
	t.seen = append(t.seen, threshold)
	var out []SearchMatch
	for _, m := range t.matches {
		if m.Score >= threshold {
			out = append(out, m)
		}
	}
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

type panickingIndex struct{}

func (panickingIndex) Search(context.Context, string, float64, int) ([]SearchMatch, error) {
	panic("index driver bug")
}
