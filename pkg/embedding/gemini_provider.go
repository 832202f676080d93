package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider embeds through the genai SDK (text-embedding-004 by default).
type GeminiProvider struct {
	client     *genai.Client
	model      string
	dimensions int32
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, dimensions int) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = "text-embedding-004"
	}
	return &GeminiProvider{client: client, model: model, dimensions: int32(dimensions)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	cfg := &genai.EmbedContentConfig{TaskType: taskType}
	if p.dimensions > 0 {
		dims := p.dimensions
		cfg.OutputDimensionality = &dims
	}

	resp, err := p.client.Models.EmbedContent(ctx, p.model, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, ErrEmptyEmbedding
	}

	return finish(resp.Embeddings[0].Values)
}
