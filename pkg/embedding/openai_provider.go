package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// OpenAIProvider calls an OpenAI compatible /embeddings endpoint, retrying on 429 and 5xx.
type OpenAIProvider struct {
	baseURL    string
	apiKey     string
	model      string
	dimensions int
	client     *http.Client
	maxRetries int
	sleep      func(time.Duration)
}

func NewOpenAIProvider(apiKey, baseURL, model string, dimensions int) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		client:     &http.Client{Timeout: 30 * time.Second},
		maxRetries: 3,
		sleep:      time.Sleep,
	}
}

type openAIEmbeddingRequest struct {
	Input      string `json:"input"`
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	data, err := json.Marshal(openAIEmbeddingRequest{Input: text, Model: p.model, Dimensions: p.dimensions})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		payload, retryAfter, err := p.do(ctx, data)
		if err == nil {
			var out openAIEmbeddingResponse
			if err := json.Unmarshal(payload, &out); err != nil {
				return nil, fmt.Errorf("decode embeddings: %w", err)
			}
			if len(out.Data) == 0 {
				return nil, ErrEmptyEmbedding
			}
			return finish(toFloat32(out.Data[0].Embedding))
		}

		lastErr = err
		if retryAfter < 0 {
			return nil, err
		}
		if attempt < p.maxRetries {
			if retryAfter == 0 {
				retryAfter = retryDelay(attempt)
			}
			p.sleep(retryAfter)
		}
	}
	return nil, lastErr
}

// do performs one request. A negative retryAfter marks the error as permanent.
func (p *OpenAIProvider) do(ctx context.Context, data []byte) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, -1, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("openai embeddings request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		var wait time.Duration
		if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil {
			wait = time.Duration(secs) * time.Second
		}
		return nil, wait, fmt.Errorf("openai embeddings failed: %s", resp.Status)
	case resp.StatusCode >= 300:
		return nil, -1, fmt.Errorf("openai embeddings failed: %s: %s", resp.Status, string(payload))
	}
	return payload, 0, nil
}

func retryDelay(attempt int) time.Duration {
	return time.Duration(250*(1<<attempt)) * time.Millisecond
}
