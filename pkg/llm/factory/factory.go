package factory

import (
	"context"
	"fmt"

	"huddleup-faq-be/pkg/llm"
	"huddleup-faq-be/pkg/llm/gemini"
	"huddleup-faq-be/pkg/llm/ollama"
	"huddleup-faq-be/pkg/llm/openai"
)

type Params struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(ctx context.Context, p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "ollama":
		baseURL := p.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, p.Model), nil
	case "openai":
		if p.APIKey == "" && p.BaseURL == "" {
			return nil, fmt.Errorf("openai provider needs an API key or a compatible base URL")
		}
		return openai.NewProvider(p.APIKey, p.BaseURL, p.Model), nil
	case "gemini":
		if p.APIKey == "" {
			return nil, fmt.Errorf("gemini provider needs an API key")
		}
		return gemini.NewProvider(ctx, p.APIKey, p.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
