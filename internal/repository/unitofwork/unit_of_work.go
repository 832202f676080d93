package unitofwork

import (
	"context"

	"huddleup-faq-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FaqRepository() contract.FaqRepository
	DocumentRepository() contract.DocumentRepository
	KnowledgeVectorRepository() contract.KnowledgeVectorRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
