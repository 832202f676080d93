package dto

import (
	"time"

	"github.com/google/uuid"
)

type SemanticSearchRequest struct {
	Question  string  `json:"question" validate:"required,notblank"`
	Threshold float64 `json:"similarity_threshold" validate:"omitempty,gte=0,lte=1"`
	Limit     int     `json:"max_results" validate:"omitempty,gte=1,lte=50"`
}

type SemanticMatchDTO struct {
	Id         string                 `json:"id"`
	Source     string                 `json:"source"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	Similarity float64                `json:"similarity"`
	Metadata   map[string]interface{} `json:"metadata"`
}

type SemanticSearchResponse struct {
	Query   string             `json:"query"`
	Results []SemanticMatchDTO `json:"results"`
}

type DocumentResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	DocumentType string    `json:"document_type"`
	CreatedAt    time.Time `json:"created_at"`
}

type DocumentChunkDTO struct {
	Id            uuid.UUID `json:"id"`
	DocumentId    uuid.UUID `json:"document_id"`
	DocumentTitle string    `json:"document_title"`
	ChunkText     string    `json:"chunk_text"`
	ChunkIndex    int       `json:"chunk_index"`
}

type ListDocumentsResponse struct {
	Documents []*DocumentResponse `json:"documents"`
	Count     int                 `json:"count"`
}

type KeywordSearchResults struct {
	FaqEntries     []*FaqEntryResponse `json:"faq_entries"`
	Documents      []*DocumentResponse `json:"documents"`
	DocumentChunks []*DocumentChunkDTO `json:"document_chunks"`
}

type KnowledgeSearchResponse struct {
	SearchType string                `json:"search_type"` // "semantic" | "traditional"
	Semantic   []SemanticMatchDTO    `json:"semantic,omitempty"`
	Keyword    *KeywordSearchResults `json:"keyword,omitempty"`
	TotalCount int                   `json:"total_count"`
}

// EmbedKind names the row an embed job refers to.
type EmbedKind string

const (
	EmbedKindFaq   EmbedKind = "faq"
	EmbedKindChunk EmbedKind = "chunk"
	EmbedKindChat  EmbedKind = "chat"
)

// EmbedJobMessage is the payload published on the embed topic.
type EmbedJobMessage struct {
	Kind EmbedKind `json:"kind"`
	Id   uuid.UUID `json:"id"`
}
