package knowledge

import (
	"context"
	"errors"
	"sync"

	"huddleup-faq-be/internal/dto"
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/repository/contract"
	"huddleup-faq-be/internal/repository/specification"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type fakeFactory struct{ uow *fakeUow }

func (f fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeUow hands out testify mocks; only the repositories a test touches need expectations.
type fakeUow struct {
	faqs     *mockFaqRepo
	docs     *mockDocRepo
	vectors  *mockVectorRepo
	messages *memoryMessages
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		faqs:     &mockFaqRepo{},
		docs:     &mockDocRepo{},
		vectors:  &mockVectorRepo{},
		messages: &memoryMessages{},
	}
}

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error               { return nil }
func (u *fakeUow) Rollback() error             { return nil }

func (u *fakeUow) FaqRepository() contract.FaqRepository                         { return u.faqs }
func (u *fakeUow) DocumentRepository() contract.DocumentRepository               { return u.docs }
func (u *fakeUow) KnowledgeVectorRepository() contract.KnowledgeVectorRepository { return u.vectors }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository         { return u.messages }

type mockFaqRepo struct{ mock.Mock }

func (m *mockFaqRepo) Create(ctx context.Context, faq *entity.FaqEntry) error {
	return m.Called(ctx, faq).Error(0)
}

func (m *mockFaqRepo) CreateBulk(ctx context.Context, faqs []*entity.FaqEntry) error {
	return m.Called(ctx, faqs).Error(0)
}

func (m *mockFaqRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FaqEntry, error) {
	args := m.Called(ctx, specs)
	faq, _ := args.Get(0).(*entity.FaqEntry)
	return faq, args.Error(1)
}

func (m *mockFaqRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaqEntry, error) {
	args := m.Called(ctx, specs)
	faqs, _ := args.Get(0).([]*entity.FaqEntry)
	return faqs, args.Error(1)
}

func (m *mockFaqRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx, specs)
	return args.Get(0).(int64), args.Error(1)
}

type mockDocRepo struct{ mock.Mock }

func (m *mockDocRepo) Create(ctx context.Context, doc *entity.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *mockDocRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	args := m.Called(ctx, specs)
	doc, _ := args.Get(0).(*entity.Document)
	return doc, args.Error(1)
}

func (m *mockDocRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	args := m.Called(ctx, specs)
	docs, _ := args.Get(0).([]*entity.Document)
	return docs, args.Error(1)
}

func (m *mockDocRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx, specs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDocRepo) CreateChunks(ctx context.Context, chunks []*entity.DocumentChunk) error {
	return m.Called(ctx, chunks).Error(0)
}

func (m *mockDocRepo) FindOneChunk(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error) {
	args := m.Called(ctx, specs)
	chunk, _ := args.Get(0).(*entity.DocumentChunk)
	return chunk, args.Error(1)
}

func (m *mockDocRepo) FindAllChunks(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	args := m.Called(ctx, specs)
	chunks, _ := args.Get(0).([]*entity.DocumentChunk)
	return chunks, args.Error(1)
}

type mockVectorRepo struct{ mock.Mock }

func (m *mockVectorRepo) Upsert(ctx context.Context, vector *entity.KnowledgeVector) error {
	return m.Called(ctx, vector).Error(0)
}

func (m *mockVectorRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx, specs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVectorRepo) SearchSimilarWithScore(ctx context.Context, vec []float32, limit int, threshold float64) ([]*contract.ScoredKnowledgeVector, error) {
	args := m.Called(ctx, vec, limit, threshold)
	scored, _ := args.Get(0).([]*contract.ScoredKnowledgeVector)
	return scored, args.Error(1)
}

// memoryMessages keeps chat rows in insertion order, which is also created_at order.
type memoryMessages struct {
	mu        sync.Mutex
	rows      []*entity.ChatMessage
	createErr error
}

func (m *memoryMessages) Create(_ context.Context, msg *entity.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	msg.Id = uuid.New()
	row := *msg
	m.rows = append(m.rows, &row)
	return nil
}

func (m *memoryMessages) UpdateEmbedding(_ context.Context, id uuid.UUID, vec []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Id == id {
			r.UserMessageEmbedding = vec
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memoryMessages) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	rows, _ := m.FindAll(ctx, specs...)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (m *memoryMessages) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := ""
	for _, s := range specs {
		if bs, ok := s.(specification.BySessionID); ok {
			session = bs.SessionID
		}
	}
	var out []*entity.ChatMessage
	for _, r := range m.rows {
		if session == "" || r.SessionId == session {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryMessages) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := m.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

type mockEmbedder struct{ mock.Mock }

func (m *mockEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	args := m.Called(ctx, text, taskType)
	res, _ := args.Get(0).(*embedding.EmbeddingResponse)
	return res, args.Error(1)
}

type recordingQueue struct {
	jobs []dto.EmbedJobMessage
	err  error
}

func (q *recordingQueue) Enqueue(_ context.Context, job dto.EmbedJobMessage) error {
	q.jobs = append(q.jobs, job)
	return q.err
}
