package knowledge

import (
	"context"
	"errors"
	"testing"

	"huddleup-faq-be/internal/dto"
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/repository/contract"
	"huddleup-faq-be/internal/repository/specification"
	"huddleup-faq-be/pkg/assistant"
	"huddleup-faq-be/pkg/assistant/resolver"
	"huddleup-faq-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func onField(field string) interface{} {
	return mock.MatchedBy(func(specs []specification.Specification) bool {
		if len(specs) == 0 {
			return false
		}
		c, ok := specs[0].(specification.Contains)
		return ok && c.Field == field
	})
}

func TestVectorIndexSearch(t *testing.T) {
	uow := newFakeUow()
	embedder := &mockEmbedder{}
	embedder.On("Generate", mock.Anything, "how much is it?", embedding.TaskRetrievalQuery).
		Return(&embedding.EmbeddingResponse{Values: []float32{0.6, 0.8}}, nil)

	faqID, chunkID, docID, orphanID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	uow.vectors.On("SearchSimilarWithScore", mock.Anything, []float32{0.6, 0.8}, 5, 0.4).Return([]*contract.ScoredKnowledgeVector{
		{Similarity: 0.91, Vector: &entity.KnowledgeVector{
			SourceType: entity.SourceTypeFaq, SourceId: faqID, Content: "Plans start at $29/month.",
			Metadata: map[string]interface{}{"question": "How much does HuddleUp cost?", "title": "Pricing"},
		}},
		{Similarity: 0.7, Vector: &entity.KnowledgeVector{SourceType: entity.SourceTypeDocument, SourceId: chunkID}},
		{Similarity: 0.5, Vector: &entity.KnowledgeVector{SourceType: entity.SourceTypeDocument, SourceId: orphanID}},
	}, nil)

	uow.docs.On("FindOneChunk", mock.Anything, []specification.Specification{specification.ByID{ID: chunkID}}).
		Return(&entity.DocumentChunk{Id: chunkID, DocumentId: docID, ChunkText: "Cohorts run for six weeks."}, nil)
	uow.docs.On("FindOne", mock.Anything, []specification.Specification{specification.ByID{ID: docID}}).
		Return(&entity.Document{Id: docID, Title: "Program Guide"}, nil)
	uow.docs.On("FindOneChunk", mock.Anything, []specification.Specification{specification.ByID{ID: orphanID}}).
		Return(nil, nil)

	idx := NewVectorIndex(fakeFactory{uow}, embedder, nil)
	matches, err := idx.Search(context.Background(), "how much is it?", 0.4, 5)

	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, resolver.KindFaq, matches[0].Kind)
	assert.Equal(t, faqID.String(), matches[0].ID)
	assert.Equal(t, "Pricing", matches[0].Title)
	assert.Equal(t, 0.91, matches[0].Score)

	assert.Equal(t, resolver.KindDocument, matches[1].Kind)
	assert.Equal(t, "Cohorts run for six weeks.", matches[1].Content)
	assert.Equal(t, "Program Guide", matches[1].Title)

	assert.Equal(t, "", matches[2].Content)
	assert.Equal(t, PlaceholderTitle, matches[2].Title)
	assert.NotNil(t, matches[2].Metadata)
}

func TestVectorIndexErrors(t *testing.T) {
	_, err := NewVectorIndex(fakeFactory{newFakeUow()}, nil, nil).Search(context.Background(), "q", 0.6, 5)
	assert.ErrorIs(t, err, ErrNoEmbedder)

	embedder := &mockEmbedder{}
	embedder.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, embedding.ErrEmptyEmbedding)
	_, err = NewVectorIndex(fakeFactory{newFakeUow()}, embedder, nil).Search(context.Background(), "q", 0.6, 5)
	assert.ErrorIs(t, err, embedding.ErrEmptyEmbedding)
}

func TestKeywordStoreFaqFallsBackToAnswers(t *testing.T) {
	uow := newFakeUow()
	id := uuid.New()
	uow.faqs.On("FindAll", mock.Anything, onField("question")).Return([]*entity.FaqEntry{}, nil)
	uow.faqs.On("FindAll", mock.Anything, onField("answer")).
		Return([]*entity.FaqEntry{{Id: id, Question: "Do you integrate with Slack?", Answer: "Yes, Slack and Teams.", Category: "integrations"}}, nil)

	hits, err := NewKeywordStore(fakeFactory{uow}).SearchFaqs(context.Background(), "slack", 3)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, resolver.FaqHit{ID: id.String(), Question: "Do you integrate with Slack?", Answer: "Yes, Slack and Teams.", Category: "integrations"}, hits[0])
	uow.faqs.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestKeywordStoreDocumentsTitleFirst(t *testing.T) {
	uow := newFakeUow()
	uow.docs.On("FindAll", mock.Anything, onField("title")).
		Return([]*entity.Document{{Id: uuid.New(), Title: "Onboarding", Content: "Step one..."}}, nil)

	hits, err := NewKeywordStore(fakeFactory{uow}).SearchDocuments(context.Background(), "onboarding", 3)

	require.NoError(t, err)
	assert.Len(t, hits, 1)
	uow.docs.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestKeywordStorePropagatesErrors(t *testing.T) {
	uow := newFakeUow()
	uow.faqs.On("FindAll", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := NewKeywordStore(fakeFactory{uow}).SearchFaqs(context.Background(), "x", 3)
	assert.ErrorContains(t, err, "connection reset")
}

func TestHistoryStoreRoundTrip(t *testing.T) {
	uow := newFakeUow()
	queue := &recordingQueue{}
	store := NewHistoryStore(fakeFactory{uow}, queue, nil)
	ctx := context.Background()

	require.NoError(t, store.SaveInteraction(ctx, assistant.Interaction{
		SessionID: "s1", Question: "What is HuddleUp?", Answer: "A learning community.",
		Strategy: "semantic_content",
	}))
	require.NoError(t, store.SaveInteraction(ctx, assistant.Interaction{
		SessionID: "s2", Question: "other session", Answer: "ignored",
	}))
	require.NoError(t, store.SaveInteraction(ctx, assistant.Interaction{
		SessionID: "s1", Question: "Pricing?", Answer: "From $29/month.",
	}))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []assistant.Turn{
		{Role: assistant.RoleUser, Content: "What is HuddleUp?"},
		{Role: assistant.RoleAssistant, Content: "A learning community."},
		{Role: assistant.RoleUser, Content: "Pricing?"},
		{Role: assistant.RoleAssistant, Content: "From $29/month."},
	}, turns)

	require.Len(t, queue.jobs, 3)
	assert.Equal(t, dto.EmbedKindChat, queue.jobs[0].Kind)
	assert.Equal(t, uow.messages.rows[0].Id, queue.jobs[0].Id)
	assert.Equal(t, "semantic_content", uow.messages.rows[0].KnowledgeSources["method"])
}

func TestHistoryStoreQueueFailureDoesNotFailSave(t *testing.T) {
	uow := newFakeUow()
	store := NewHistoryStore(fakeFactory{uow}, &recordingQueue{err: errors.New("closed")}, nil)

	err := store.SaveInteraction(context.Background(), assistant.Interaction{SessionID: "s1", Question: "q", Answer: "a"})

	assert.NoError(t, err)
	assert.Len(t, uow.messages.rows, 1)
}

func TestHistoryStoreCreateFailure(t *testing.T) {
	uow := newFakeUow()
	uow.messages.createErr = errors.New("relation \"chat_messages\" does not exist")
	queue := &recordingQueue{}

	err := NewHistoryStore(fakeFactory{uow}, queue, nil).SaveInteraction(context.Background(), assistant.Interaction{SessionID: "s1"})

	assert.Error(t, err)
	assert.Empty(t, queue.jobs)
}
