package knowledge

import (
	"context"
	"fmt"

	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/repository/specification"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/pkg/assistant/resolver"

	"github.com/google/uuid"
)

// KeywordStore searches the primary column first and falls back to the body
// column only when the first pass finds nothing.
type KeywordStore struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ resolver.KeywordStore = (*KeywordStore)(nil)

func NewKeywordStore(uowFactory unitofwork.RepositoryFactory) *KeywordStore {
	return &KeywordStore{uowFactory: uowFactory}
}

func (k *KeywordStore) Faqs(ctx context.Context, query string, limit int) ([]*entity.FaqEntry, error) {
	repo := k.uowFactory.NewUnitOfWork(ctx).FaqRepository()

	faqs, err := repo.FindAll(ctx, specification.FaqQuestionContains(query), specification.Limit{N: limit})
	if err != nil {
		return nil, fmt.Errorf("search faq questions: %w", err)
	}
	if len(faqs) > 0 {
		return faqs, nil
	}

	faqs, err = repo.FindAll(ctx, specification.FaqAnswerContains(query), specification.Limit{N: limit})
	if err != nil {
		return nil, fmt.Errorf("search faq answers: %w", err)
	}
	return faqs, nil
}

func (k *KeywordStore) Documents(ctx context.Context, query string, limit int) ([]*entity.Document, error) {
	repo := k.uowFactory.NewUnitOfWork(ctx).DocumentRepository()

	docs, err := repo.FindAll(ctx, specification.TitleContains(query), specification.Limit{N: limit})
	if err != nil {
		return nil, fmt.Errorf("search document titles: %w", err)
	}
	if len(docs) > 0 {
		return docs, nil
	}

	docs, err = repo.FindAll(ctx, specification.ContentContains(query), specification.Limit{N: limit})
	if err != nil {
		return nil, fmt.Errorf("search document content: %w", err)
	}
	return docs, nil
}

// ChunkHit is a chunk together with its parent document's title.
type ChunkHit struct {
	Chunk         *entity.DocumentChunk
	DocumentTitle string
}

func (k *KeywordStore) Chunks(ctx context.Context, query string, limit int) ([]ChunkHit, error) {
	repo := k.uowFactory.NewUnitOfWork(ctx).DocumentRepository()

	chunks, err := repo.FindAllChunks(ctx, specification.Contains{Field: "chunk_text", Query: query}, specification.Limit{N: limit})
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	if len(chunks) == 0 {
		return []ChunkHit{}, nil
	}

	ids := make([]uuid.UUID, 0, len(chunks))
	for _, c := range chunks {
		ids = append(ids, c.DocumentId)
	}
	docs, err := repo.FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("load chunk documents: %w", err)
	}
	titles := make(map[uuid.UUID]string, len(docs))
	for _, d := range docs {
		titles[d.Id] = d.Title
	}

	hits := make([]ChunkHit, len(chunks))
	for i, c := range chunks {
		hits[i] = ChunkHit{Chunk: c, DocumentTitle: titles[c.DocumentId]}
	}
	return hits, nil
}

func (k *KeywordStore) SearchFaqs(ctx context.Context, query string, limit int) ([]resolver.FaqHit, error) {
	faqs, err := k.Faqs(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]resolver.FaqHit, len(faqs))
	for i, f := range faqs {
		hits[i] = resolver.FaqHit{ID: f.Id.String(), Question: f.Question, Answer: f.Answer, Category: f.Category}
	}
	return hits, nil
}

func (k *KeywordStore) SearchDocuments(ctx context.Context, query string, limit int) ([]resolver.DocumentHit, error) {
	docs, err := k.Documents(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]resolver.DocumentHit, len(docs))
	for i, d := range docs {
		hits[i] = resolver.DocumentHit{ID: d.Id.String(), Title: d.Title, Content: d.Content}
	}
	return hits, nil
}
