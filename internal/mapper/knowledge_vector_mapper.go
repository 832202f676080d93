package mapper

import (
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeVectorMapper struct{}

func NewKnowledgeVectorMapper() *KnowledgeVectorMapper {
	return &KnowledgeVectorMapper{}
}

func (m *KnowledgeVectorMapper) ToEntity(v *model.KnowledgeVector) *entity.KnowledgeVector {
	if v == nil {
		return nil
	}

	return &entity.KnowledgeVector{
		Id:         v.Id,
		SourceType: v.SourceType,
		SourceId:   v.SourceId,
		Title:      v.Title,
		Content:    v.Content,
		Embedding:  v.Embedding.Slice(),
		Metadata:   v.Metadata,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  updatedAtToEntity(v.UpdatedAt),
	}
}

func (m *KnowledgeVectorMapper) ToModel(v *entity.KnowledgeVector) *model.KnowledgeVector {
	if v == nil {
		return nil
	}

	return &model.KnowledgeVector{
		Id:         v.Id,
		SourceType: v.SourceType,
		SourceId:   v.SourceId,
		Title:      v.Title,
		Content:    v.Content,
		Embedding:  pgvector.NewVector(v.Embedding),
		Metadata:   v.Metadata,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  updatedAtToModel(v.UpdatedAt),
	}
}
