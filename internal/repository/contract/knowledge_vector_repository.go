package contract

import (
	"context"

	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/repository/specification"
)

// ScoredKnowledgeVector wraps KnowledgeVector with its similarity score
type ScoredKnowledgeVector struct {
	Vector     *entity.KnowledgeVector
	Similarity float64 // cosine similarity, 1.0 = identical
}

type KnowledgeVectorRepository interface {
	// Upsert replaces the vector owned by (SourceType, SourceId).
	Upsert(ctx context.Context, vector *entity.KnowledgeVector) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredKnowledgeVector, error)
}
