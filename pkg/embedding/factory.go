package embedding

import (
	"context"
	"fmt"
)

type Params struct {
	Provider   string
	Model      string
	BaseURL    string
	APIKey     string
	Dimensions int
}

func NewProvider(ctx context.Context, p Params) (EmbeddingProvider, error) {
	switch p.Provider {
	case "ollama":
		return NewOllamaProvider(p.BaseURL, p.Model), nil
	case "openai":
		return NewOpenAIProvider(p.APIKey, p.BaseURL, p.Model, p.Dimensions), nil
	case "gemini":
		if p.APIKey == "" {
			return nil, fmt.Errorf("gemini embeddings need an API key")
		}
		return NewGeminiProvider(ctx, p.APIKey, p.Model, p.Dimensions)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", p.Provider)
	}
}
