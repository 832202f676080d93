package mapper

import (
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	return &entity.Document{
		Id:           d.Id,
		Title:        d.Title,
		Content:      d.Content,
		Category:     d.Category,
		DocumentType: d.DocumentType,
		Metadata:     d.Metadata,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAtToEntity(d.UpdatedAt),
		DeletedAt:    deletedAtToEntity(d.DeletedAt),
		IsDeleted:    d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:           d.Id,
		Title:        d.Title,
		Content:      d.Content,
		Category:     d.Category,
		DocumentType: d.DocumentType,
		Metadata:     d.Metadata,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAtToModel(d.UpdatedAt),
		DeletedAt:    deletedAtToModel(d.DeletedAt, d.IsDeleted),
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *DocumentMapper) ChunkToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	return &entity.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkText:  c.ChunkText,
		ChunkIndex: c.ChunkIndex,
		Metadata:   c.Metadata,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentMapper) ChunkToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	return &model.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkText:  c.ChunkText,
		ChunkIndex: c.ChunkIndex,
		Metadata:   c.Metadata,
		CreatedAt:  c.CreatedAt,
	}
}
