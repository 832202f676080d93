package mapper

import (
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/model"
)

type FaqMapper struct{}

func NewFaqMapper() *FaqMapper {
	return &FaqMapper{}
}

func (m *FaqMapper) ToEntity(f *model.FaqEntry) *entity.FaqEntry {
	if f == nil {
		return nil
	}

	keywords := []string(f.Keywords)
	if keywords == nil {
		keywords = []string{}
	}

	return &entity.FaqEntry{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		Category:  f.Category,
		Keywords:  keywords,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAtToEntity(f.UpdatedAt),
		DeletedAt: deletedAtToEntity(f.DeletedAt),
		IsDeleted: f.DeletedAt.Valid,
	}
}

func (m *FaqMapper) ToModel(f *entity.FaqEntry) *model.FaqEntry {
	if f == nil {
		return nil
	}

	return &model.FaqEntry{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		Category:  f.Category,
		Keywords:  f.Keywords,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAtToModel(f.UpdatedAt),
		DeletedAt: deletedAtToModel(f.DeletedAt, f.IsDeleted),
	}
}

func (m *FaqMapper) ToEntities(faqs []*model.FaqEntry) []*entity.FaqEntry {
	entities := make([]*entity.FaqEntry, len(faqs))
	for i, f := range faqs {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
