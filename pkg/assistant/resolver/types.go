package resolver

import (
	"context"

	"huddleup-faq-be/pkg/assistant"
)

type SourceKind string

const (
	KindFaq           SourceKind = "faq"
	KindDocument      SourceKind = "document"
	KindKnowledgeBase SourceKind = "knowledge_base"
)

// SearchMatch is a scored vector hit. Content is "" rather than missing when
// the index has nothing readable for the entry.
type SearchMatch struct {
	ID       string
	Score    float64
	Kind     SourceKind
	Title    string
	Content  string
	Text     string
	Answer   string
	Metadata map[string]interface{}
}

type VectorIndex interface {
	// Search returns matches scoring at least threshold, best first.
	Search(ctx context.Context, question string, threshold float64, topK int) ([]SearchMatch, error)
}

type FaqHit struct {
	ID       string
	Question string
	Answer   string
	Category string
}

type DocumentHit struct {
	ID      string
	Title   string
	Content string
}

// KeywordStore does case-insensitive substring search over FAQs and documents.
type KeywordStore interface {
	SearchFaqs(ctx context.Context, query string, limit int) ([]FaqHit, error)
	SearchDocuments(ctx context.Context, query string, limit int) ([]DocumentHit, error)
}

const (
	StrategySemanticContent     = "semantic_content"
	StrategySemanticEnhanced    = "semantic_content_ai_enhanced"
	StrategySemanticGuided      = "semantic_guided_ai"
	StrategyTraditionalFaq      = "traditional_faq"
	StrategyTraditionalDocument = "traditional_document"
	StrategyDirect              = "openai_direct"
	StrategyNoResponse          = "no_response_available"
	StrategyServiceError        = "service_error"
	StrategyNoServices          = "no_services_available"
	StrategyFailed              = "error"
)

const (
	SourceKnowledgeBaseSemantic = "knowledge_base_semantic"
	SourceSemanticGuided        = "semantic_guided"
	SourceFaqTraditional        = "faq_traditional"
	SourceDocumentTraditional   = "document_traditional"
	SourceGenerated             = "openai_generated"
)

const (
	msgNoResponse = "I apologize, but I couldn't find relevant information in our knowledge base and couldn't generate a suitable response. " +
		"Could you please rephrase your question or contact our support team for assistance?"
	msgServiceError = "I apologize, but I'm currently unable to process your question due to a technical issue. " +
		"Please try again later or contact our support team."
	msgNoServices = "I apologize, but I couldn't find relevant information in our knowledge base. " +
		"Please try rephrasing your question or contact our support team for assistance."
	MsgUnexpected = "I apologize, but I encountered an error processing your question. Please try again."
)

// Result is the resolved answer handed back to the caller.
type Result struct {
	Answer    string                `json:"answer"`
	Success   bool                  `json:"success"`
	Sources   []assistant.SourceTag `json:"sources"`
	Strategy  string                `json:"search_method"`
	Threshold float64               `json:"-"`
}
