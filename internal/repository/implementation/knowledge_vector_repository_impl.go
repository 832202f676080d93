package implementation

import (
	"context"

	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/mapper"
	"huddleup-faq-be/internal/model"
	"huddleup-faq-be/internal/repository/contract"
	"huddleup-faq-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeVectorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeVectorMapper
}

func NewKnowledgeVectorRepository(db *gorm.DB) contract.KnowledgeVectorRepository {
	return &KnowledgeVectorRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeVectorMapper(),
	}
}

func (r *KnowledgeVectorRepositoryImpl) Upsert(ctx context.Context, vector *entity.KnowledgeVector) error {
	m := r.mapper.ToModel(vector)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_type"}, {Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "content", "embedding", "metadata", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*vector = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeVectorRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.KnowledgeVector{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SearchSimilarWithScore returns vectors with similarity >= threshold, best first
func (r *KnowledgeVectorRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredKnowledgeVector, error) {
	if limit <= 0 {
		limit = 5
	}

	// pgvector <=> is cosine distance, so similarity = 1 - distance
	type result struct {
		model.KnowledgeVector
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_vectors").
		Select("knowledge_vectors.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeVector, len(results))
	for i := range results {
		scored[i] = &contract.ScoredKnowledgeVector{
			Vector:     r.mapper.ToEntity(&results[i].KnowledgeVector),
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}
