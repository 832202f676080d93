package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/internal/repository/contract"
	"huddleup-faq-be/internal/repository/specification"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/pkg/assistant/resolver"
	"huddleup-faq-be/pkg/embedding"
)

const module = "KNOWLEDGE"

// PlaceholderTitle is shown for vectors whose source row is gone or untitled.
const PlaceholderTitle = "Knowledge base entry"

var ErrNoEmbedder = errors.New("knowledge: no embedding provider configured")

// VectorIndex serves semantic search from the knowledge_vectors table.
type VectorIndex struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
	logger     logger.ILogger
}

var _ resolver.VectorIndex = (*VectorIndex)(nil)

func NewVectorIndex(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider, log logger.ILogger) *VectorIndex {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &VectorIndex{uowFactory: uowFactory, embedder: embedder, logger: log}
}

func (v *VectorIndex) Search(ctx context.Context, question string, threshold float64, topK int) ([]resolver.SearchMatch, error) {
	if v.embedder == nil {
		return nil, ErrNoEmbedder
	}

	res, err := v.embedder.Generate(ctx, question, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	uow := v.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeVectorRepository().SearchSimilarWithScore(ctx, res.Values, topK, threshold)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	matches := make([]resolver.SearchMatch, 0, len(scored))
	for _, s := range scored {
		matches = append(matches, v.toMatch(ctx, uow, s))
	}

	v.logger.Debug(module, "Vector search finished", map[string]interface{}{
		"threshold": threshold,
		"top_k":     topK,
		"matches":   len(matches),
	})
	return matches, nil
}

func kindOf(sourceType string) resolver.SourceKind {
	switch sourceType {
	case entity.SourceTypeFaq:
		return resolver.KindFaq
	case entity.SourceTypeDocument:
		return resolver.KindDocument
	default:
		return resolver.KindKnowledgeBase
	}
}

func (v *VectorIndex) toMatch(ctx context.Context, uow unitofwork.UnitOfWork, s *contract.ScoredKnowledgeVector) resolver.SearchMatch {
	vec := s.Vector

	metadata := make(map[string]interface{}, len(vec.Metadata))
	for k, val := range vec.Metadata {
		metadata[k] = val
	}

	m := resolver.SearchMatch{
		ID:       vec.SourceId.String(),
		Score:    s.Similarity,
		Kind:     kindOf(vec.SourceType),
		Title:    vec.Title,
		Content:  vec.Content,
		Metadata: metadata,
	}
	if m.Title == "" {
		m.Title, _ = metadata["title"].(string)
	}
	if answer, ok := metadata["answer"].(string); ok {
		m.Answer = answer
	}

	if strings.TrimSpace(m.Content) == "" && vec.SourceType == entity.SourceTypeDocument {
		v.backfillFromChunk(ctx, uow, &m, vec)
	}
	if m.Title == "" {
		m.Title = PlaceholderTitle
	}
	return m
}

// backfillFromChunk reads the chunk text for vectors stored without content.
func (v *VectorIndex) backfillFromChunk(ctx context.Context, uow unitofwork.UnitOfWork, m *resolver.SearchMatch, vec *entity.KnowledgeVector) {
	chunk, err := uow.DocumentRepository().FindOneChunk(ctx, specification.ByID{ID: vec.SourceId})
	if err != nil {
		v.logger.Warn(module, "Chunk lookup failed", map[string]interface{}{"error": err.Error(), "source_id": vec.SourceId})
		return
	}
	if chunk == nil {
		return
	}
	m.Content = chunk.ChunkText

	if m.Title != "" {
		return
	}
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: chunk.DocumentId})
	if err != nil {
		v.logger.Warn(module, "Document lookup failed", map[string]interface{}{"error": err.Error(), "document_id": chunk.DocumentId})
		return
	}
	if doc != nil {
		m.Title = doc.Title
	}
}
