package contract

import (
	"context"

	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/repository/specification"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateChunks(ctx context.Context, chunks []*entity.DocumentChunk) error
	FindOneChunk(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAllChunks(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
}
