package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"huddleup-faq-be/internal/dto"
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/repository/specification"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/pkg/utils"

	"gopkg.in/yaml.v3"
)

const defaultChunkChars = 500

type seedFaq struct {
	Question string   `yaml:"question"`
	Answer   string   `yaml:"answer"`
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

type seedDocument struct {
	Title        string                 `yaml:"title"`
	Content      string                 `yaml:"content"`
	Category     string                 `yaml:"category"`
	DocumentType string                 `yaml:"document_type"`
	Metadata     map[string]interface{} `yaml:"metadata"`
}

type seedFile struct {
	ChunkChars int            `yaml:"chunk_chars"`
	Faqs       []seedFaq      `yaml:"faqs"`
	Documents  []seedDocument `yaml:"documents"`
}

func loadSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return parseSeedFile(raw)
}

func parseSeedFile(raw []byte) (*seedFile, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if f.ChunkChars <= 0 {
		f.ChunkChars = defaultChunkChars
	}
	for i, faq := range f.Faqs {
		if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
			return nil, fmt.Errorf("faq #%d needs a question and an answer", i+1)
		}
	}
	for i, doc := range f.Documents {
		if strings.TrimSpace(doc.Title) == "" {
			return nil, fmt.Errorf("document #%d needs a title", i+1)
		}
	}
	return &f, nil
}

// jobHandler embeds one row synchronously.
type jobHandler interface {
	Handle(ctx context.Context, job dto.EmbedJobMessage) error
}

type seedSummary struct {
	FaqsCreated      int
	FaqsSkipped      int
	DocumentsCreated int
	DocumentsSkipped int
	Chunks           int
	Embedded         int
	EmbedFailures    int
}

type knowledgeSeeder struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   jobHandler
}

func (s *knowledgeSeeder) Seed(ctx context.Context, f *seedFile) (*seedSummary, error) {
	summary := &seedSummary{}

	jobs, err := s.seedFaqs(ctx, f.Faqs, summary)
	if err != nil {
		return summary, err
	}

	chunkJobs, err := s.seedDocuments(ctx, f.Documents, f.ChunkChars, summary)
	if err != nil {
		return summary, err
	}
	jobs = append(jobs, chunkJobs...)

	if s.embedder == nil {
		return summary, nil
	}
	for _, job := range jobs {
		if err := s.embedder.Handle(ctx, job); err != nil {
			summary.EmbedFailures++
			log.Printf("Warn: could not embed %s %s: %v", job.Kind, job.Id, err)
			continue
		}
		summary.Embedded++
	}
	return summary, nil
}

func (s *knowledgeSeeder) seedFaqs(ctx context.Context, faqs []seedFaq, summary *seedSummary) ([]dto.EmbedJobMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var fresh []*entity.FaqEntry
	for _, faq := range faqs {
		existing, err := uow.FaqRepository().FindOne(ctx, specification.Filter("question", faq.Question))
		if err != nil {
			return nil, fmt.Errorf("look up faq %q: %w", faq.Question, err)
		}
		if existing != nil {
			summary.FaqsSkipped++
			continue
		}

		category := faq.Category
		if category == "" {
			category = "general"
		}
		keywords := faq.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		fresh = append(fresh, &entity.FaqEntry{
			Question: faq.Question,
			Answer:   faq.Answer,
			Category: category,
			Keywords: keywords,
		})
	}

	if len(fresh) == 0 {
		return nil, nil
	}
	if err := uow.FaqRepository().CreateBulk(ctx, fresh); err != nil {
		return nil, fmt.Errorf("create faqs: %w", err)
	}
	summary.FaqsCreated += len(fresh)

	jobs := make([]dto.EmbedJobMessage, 0, len(fresh))
	for _, faq := range fresh {
		jobs = append(jobs, dto.EmbedJobMessage{Kind: dto.EmbedKindFaq, Id: faq.Id})
	}
	return jobs, nil
}

func (s *knowledgeSeeder) seedDocuments(ctx context.Context, docs []seedDocument, chunkChars int, summary *seedSummary) ([]dto.EmbedJobMessage, error) {
	var jobs []dto.EmbedJobMessage

	for _, d := range docs {
		uow := s.uowFactory.NewUnitOfWork(ctx)

		existing, err := uow.DocumentRepository().FindOne(ctx, specification.Filter("title", d.Title))
		if err != nil {
			return nil, fmt.Errorf("look up document %q: %w", d.Title, err)
		}
		if existing != nil {
			summary.DocumentsSkipped++
			continue
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}

		doc := &entity.Document{
			Title:        d.Title,
			Content:      d.Content,
			Category:     d.Category,
			DocumentType: d.DocumentType,
			Metadata:     d.Metadata,
		}
		if doc.Metadata == nil {
			doc.Metadata = map[string]interface{}{}
		}
		if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
			_ = uow.Rollback()
			return nil, fmt.Errorf("create document %q: %w", d.Title, err)
		}

		var chunks []*entity.DocumentChunk
		for i, text := range utils.SplitSentences(d.Content, chunkChars) {
			chunks = append(chunks, &entity.DocumentChunk{
				DocumentId: doc.Id,
				ChunkText:  text,
				ChunkIndex: i,
				Metadata:   map[string]interface{}{"chunk_size": len([]rune(text))},
			})
		}
		if len(chunks) > 0 {
			if err := uow.DocumentRepository().CreateChunks(ctx, chunks); err != nil {
				_ = uow.Rollback()
				return nil, fmt.Errorf("create chunks for %q: %w", d.Title, err)
			}
		}

		if err := uow.Commit(); err != nil {
			return nil, err
		}

		summary.DocumentsCreated++
		summary.Chunks += len(chunks)
		for _, c := range chunks {
			jobs = append(jobs, dto.EmbedJobMessage{Kind: dto.EmbedKindChunk, Id: c.Id})
		}
	}

	return jobs, nil
}
