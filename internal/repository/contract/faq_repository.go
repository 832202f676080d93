package contract

import (
	"context"

	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/repository/specification"
)

type FaqRepository interface {
	Create(ctx context.Context, faq *entity.FaqEntry) error
	CreateBulk(ctx context.Context, faqs []*entity.FaqEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FaqEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaqEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
