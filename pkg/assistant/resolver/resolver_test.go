package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"huddleup-faq-be/pkg/assistant"
	"huddleup-faq-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const longAnswer = "HuddleUp offers a free plan for up to 50 users and paid plans from about $5 per user per month."

type fixture struct {
	vectors   *mockVectors
	keywords  *mockKeywords
	completer *mockCompleter
	recorder  *mockRecorder
}

func newFixture() *fixture {
	f := &fixture{
		vectors:   &mockVectors{},
		keywords:  &mockKeywords{},
		completer: &mockCompleter{},
		recorder:  &mockRecorder{},
	}
	f.recorder.On("SaveInteraction", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func (f *fixture) resolver() *Resolver {
	return New(Deps{
		Vectors:   f.vectors,
		Keywords:  f.keywords,
		Completer: f.completer,
		Recorder:  f.recorder,
	}, DefaultConfig())
}

func (f *fixture) noMatches() {
	f.vectors.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]SearchMatch{}, nil)
	f.keywords.On("SearchFaqs", mock.Anything, mock.Anything, mock.Anything).Return([]FaqHit{}, nil)
	f.keywords.On("SearchDocuments", mock.Anything, mock.Anything, mock.Anything).Return([]DocumentHit{}, nil)
}

func savedInteraction(t *testing.T, r *mockRecorder) assistant.Interaction {
	t.Helper()
	r.AssertNumberOfCalls(t, "SaveInteraction", 1)
	return r.Calls[0].Arguments.Get(1).(assistant.Interaction)
}

func TestResolveRejectsBlankQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t"} {
		f := newFixture()
		res, err := f.resolver().Resolve(context.Background(), q, "s-1")

		assert.Nil(t, res)
		assert.ErrorIs(t, err, assistant.ErrEmptyQuestion)
		f.vectors.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.keywords.AssertNotCalled(t, "SearchFaqs", mock.Anything, mock.Anything, mock.Anything)
		f.completer.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
		f.recorder.AssertNotCalled(t, "SaveInteraction", mock.Anything, mock.Anything)
	}
}

func TestResolveFallsThroughToGeneration(t *testing.T) {
	f := newFixture()
	f.noMatches()
	f.completer.On("Chat", mock.Anything, mock.Anything).Return("  HuddleUp helps teams learn together.  ", nil)

	res, err := f.resolver().Resolve(context.Background(), "Tell me about huddles", "s-1")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, StrategyDirect, res.Strategy)
	assert.Equal(t, "HuddleUp helps teams learn together.", res.Answer)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, SourceGenerated, res.Sources[0].Type())
	assert.Equal(t, "direct_generation", res.Sources[0]["method"])

	saved := savedInteraction(t, f.recorder)
	assert.Equal(t, "s-1", saved.SessionID)
	assert.Equal(t, "Tell me about huddles", saved.Question)
	assert.Equal(t, StrategyDirect, saved.Strategy)
	assert.Equal(t, res.Answer, saved.Answer)
}

func TestResolveGenerationFailures(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		err      error
		strategy string
	}{
		{"provider error", "", errors.New("connection reset"), StrategyServiceError},
		{"empty response error", "", llm.ErrEmptyResponse, StrategyNoResponse},
		{"whitespace reply", "   ", nil, StrategyNoResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.noMatches()
			f.completer.On("Chat", mock.Anything, mock.Anything).Return(tt.reply, tt.err)

			res, err := f.resolver().Resolve(context.Background(), "anything?", "s-1")
			require.NoError(t, err)

			assert.True(t, res.Success)
			assert.Equal(t, tt.strategy, res.Strategy)
			assert.NotEmpty(t, res.Answer)
			assert.Empty(t, res.Sources)
		})
	}
}

func TestResolveWithoutAnyCollaborator(t *testing.T) {
	res, err := New(Deps{}, DefaultConfig()).Resolve(context.Background(), "hello?", "s-1")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, StrategyNoServices, res.Strategy)
	assert.Equal(t, msgNoServices, res.Answer)
}

func TestResolveSemanticContent(t *testing.T) {
	match := SearchMatch{ID: "faq-1", Score: 0.82, Kind: KindFaq, Content: longAnswer}
	enhanced := "Great question! " + longAnswer + " Would you like help picking a plan?"

	tests := []struct {
		name       string
		reply      string
		err        error
		strategy   string
		wantAnswer string
	}{
		{"enhanced", enhanced, nil, StrategySemanticEnhanced, enhanced},
		{"enhancement too short", "Sure.", nil, StrategySemanticContent, longAnswer},
		{"enhancement identical", strings.ToUpper(longAnswer), nil, StrategySemanticContent, longAnswer},
		{"enhancement failed", "", errors.New("timeout"), StrategySemanticContent, longAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.vectors.On("Search", mock.Anything, mock.Anything, 0.6, 5).Return([]SearchMatch{match}, nil)
			f.completer.On("Chat", mock.Anything, mock.Anything).Return(tt.reply, tt.err)

			res, err := f.resolver().Resolve(context.Background(), "What does HuddleUp include?", "s-1")
			require.NoError(t, err)

			assert.Equal(t, tt.strategy, res.Strategy)
			assert.Equal(t, tt.wantAnswer, res.Answer)
			require.Len(t, res.Sources, 1)
			assert.Equal(t, SourceKnowledgeBaseSemantic, res.Sources[0].Type())
			assert.Equal(t, 0.82, res.Sources[0]["similarity"])
			assert.Equal(t, "faq-1", res.Sources[0]["id"])

			f.keywords.AssertNotCalled(t, "SearchFaqs", mock.Anything, mock.Anything, mock.Anything)
			f.completer.AssertNumberOfCalls(t, "Chat", 1)
		})
	}
}

func TestResolveSemanticContentWithoutCompleter(t *testing.T) {
	f := newFixture()
	f.vectors.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]SearchMatch{{ID: "d-1", Score: 0.7, Kind: KindDocument, Content: longAnswer}}, nil)

	r := New(Deps{Vectors: f.vectors, Keywords: f.keywords, Recorder: f.recorder}, DefaultConfig())
	res, err := r.Resolve(context.Background(), "What does HuddleUp include?", "s-1")
	require.NoError(t, err)

	assert.Equal(t, StrategySemanticContent, res.Strategy)
	assert.Equal(t, longAnswer, res.Answer)
}

func TestResolveSemanticGuided(t *testing.T) {
	f := newFixture()
	f.vectors.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]SearchMatch{
		{ID: "a", Score: 0.9, Content: ""},
		{ID: "b", Score: 0.8, Content: "short"},
		{ID: "c", Score: 0.7},
		{ID: "d", Score: 0.65},
	}, nil)
	f.completer.On("Chat", mock.Anything, mock.Anything).Return("Huddles are collaborative learning spaces.", nil)

	res, err := f.resolver().Resolve(context.Background(), "What is a huddle?", "s-1")
	require.NoError(t, err)

	assert.Equal(t, StrategySemanticGuided, res.Strategy)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, SourceSemanticGuided, res.Sources[0].Type())
	assert.Equal(t, 4, res.Sources[0]["matches_found"])
	assert.InDelta(t, 0.8, res.Sources[0]["avg_similarity"], 1e-9)
	f.keywords.AssertNotCalled(t, "SearchFaqs", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveGuidedFailureFallsToKeyword(t *testing.T) {
	f := newFixture()
	f.vectors.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]SearchMatch{{ID: "a", Score: 0.9}}, nil)
	f.completer.On("Chat", mock.Anything, mock.Anything).Return("", errors.New("503")).Once()
	f.keywords.On("SearchFaqs", mock.Anything, "What is a huddle?", 3).
		Return([]FaqHit{{ID: "1", Question: "What is a huddle?", Answer: "A shared learning space.", Category: "platform"}}, nil)

	res, err := f.resolver().Resolve(context.Background(), "What is a huddle?", "s-1")
	require.NoError(t, err)

	assert.Equal(t, StrategyTraditionalFaq, res.Strategy)
	assert.Equal(t, "A shared learning space.", res.Answer)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, SourceFaqTraditional, res.Sources[0].Type())
	assert.Equal(t, "platform", res.Sources[0]["category"])
	f.keywords.AssertNotCalled(t, "SearchDocuments", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveKeywordDocuments(t *testing.T) {
	f := newFixture()
	f.vectors.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("index down"))
	f.keywords.On("SearchFaqs", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("faq table missing"))
	f.keywords.On("SearchDocuments", mock.Anything, mock.Anything, mock.Anything).
		Return([]DocumentHit{{ID: "doc-1", Title: "Onboarding guide", Content: "Invite your team from the admin panel."}}, nil)

	res, err := f.resolver().Resolve(context.Background(), "onboarding", "s-1")
	require.NoError(t, err)

	assert.Equal(t, StrategyTraditionalDocument, res.Strategy)
	assert.Equal(t, "Invite your team from the admin panel.", res.Answer)
	assert.Equal(t, "Onboarding guide", res.Sources[0]["title"])
	f.completer.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestResolveKeywordHitWithEmptyAnswerIsSkipped(t *testing.T) {
	f := newFixture()
	f.vectors.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.keywords.On("SearchFaqs", mock.Anything, mock.Anything, mock.Anything).Return([]FaqHit{{ID: "1", Question: "q", Answer: " "}}, nil)
	f.keywords.On("SearchDocuments", mock.Anything, mock.Anything, mock.Anything).Return([]DocumentHit{}, nil)
	f.completer.On("Chat", mock.Anything, mock.Anything).Return("generated", nil)

	res, err := f.resolver().Resolve(context.Background(), "q", "s-1")
	require.NoError(t, err)
	assert.Equal(t, StrategyDirect, res.Strategy)
	require.Len(t, res.Sources, 1)
}

func TestResolvePricingRelaxation(t *testing.T) {
	index := &thresholdIndex{matches: []SearchMatch{{ID: "pricing", Score: 0.45, Kind: KindFaq, Content: longAnswer}}}
	keywords := &mockKeywords{}
	keywords.On("SearchFaqs", mock.Anything, mock.Anything, mock.Anything).
		Return([]FaqHit{{ID: "k", Question: "q", Answer: "keyword answer"}}, nil)

	r := New(Deps{Vectors: index, Keywords: keywords}, DefaultConfig())

	priced, err := r.Resolve(context.Background(), "How much does HuddleUp cost?", "")
	require.NoError(t, err)
	assert.Equal(t, StrategySemanticContent, priced.Strategy)
	assert.Equal(t, longAnswer, priced.Answer)
	keywords.AssertNotCalled(t, "SearchFaqs", mock.Anything, mock.Anything, mock.Anything)

	plain, err := r.Resolve(context.Background(), "How much does HuddleUp help?", "")
	require.NoError(t, err)
	assert.Equal(t, StrategyTraditionalFaq, plain.Strategy)

	require.Len(t, index.seen, 2)
	assert.InDelta(t, 0.4, index.seen[0], 1e-9)
	assert.InDelta(t, 0.6, index.seen[1], 1e-9)
	assert.Less(t, priced.Threshold, plain.Threshold)
}

func TestResolvePersistenceFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.noMatches()
	f.completer.On("Chat", mock.Anything, mock.Anything).Return("answer", nil)
	recorder := &mockRecorder{}
	recorder.On("SaveInteraction", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	r := New(Deps{Vectors: f.vectors, Keywords: f.keywords, Completer: f.completer, Recorder: recorder}, DefaultConfig())
	res, err := r.Resolve(context.Background(), "q?", "s-1")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, StrategyDirect, res.Strategy)
	recorder.AssertNumberOfCalls(t, "SaveInteraction", 1)
}

func TestResolveSkipsPersistenceWithoutSession(t *testing.T) {
	f := newFixture()
	f.noMatches()
	f.completer.On("Chat", mock.Anything, mock.Anything).Return("answer", nil)

	_, err := f.resolver().Resolve(context.Background(), "q?", "")
	require.NoError(t, err)
	f.recorder.AssertNotCalled(t, "SaveInteraction", mock.Anything, mock.Anything)
}

func TestResolvePanickingRungIsTreatedAsEmpty(t *testing.T) {
	keywords := &mockKeywords{}
	keywords.On("SearchFaqs", mock.Anything, mock.Anything, mock.Anything).
		Return([]FaqHit{{ID: "1", Question: "q", Answer: "keyword answer"}}, nil)

	r := New(Deps{Vectors: panickingIndex{}, Keywords: keywords}, DefaultConfig())
	res, err := r.Resolve(context.Background(), "q", "")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, StrategyTraditionalFaq, res.Strategy)
}

func TestResolveIsStableAcrossCalls(t *testing.T) {
	f := newFixture()
	f.noMatches()
	f.completer.On("Chat", mock.Anything, mock.Anything).Return("first", nil).Once()
	f.completer.On("Chat", mock.Anything, mock.Anything).Return("second wording", nil).Once()

	r := f.resolver()
	a, err := r.Resolve(context.Background(), "Is there an API?", "s-1")
	require.NoError(t, err)
	b, err := r.Resolve(context.Background(), "Is there an API?", "s-1")
	require.NoError(t, err)

	assert.Equal(t, a.Strategy, b.Strategy)
	assert.NotEqual(t, a.Answer, b.Answer)
}
