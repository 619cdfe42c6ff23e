package predictor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// GeminiEmbedder embeds snippets with the Gemini embedding API. Quota errors
// are retried after a fixed pause.
type GeminiEmbedder struct {
	client     *genai.Client
	model      string
	dimension  int
	retryDelay time.Duration
	maxRetries int
}

// NewGeminiEmbedder creates a client for opts.Model. A non-empty opts.BaseURL
// replaces the public endpoint.
func NewGeminiEmbedder(ctx context.Context, opts EmbedderOptions) (*GeminiEmbedder, error) {
	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiEmbedder{
		client:     client,
		model:      opts.Model,
		dimension:  opts.Dimension,
		retryDelay: 6 * time.Second,
		maxRetries: 5,
	}, nil
}

func (g *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	res, err := g.embedWithRetry(ctx, contents, g.embedConfig())
	if err != nil {
		return nil, err
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, expected %d", len(res.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

func (g *GeminiEmbedder) embedConfig() *genai.EmbedContentConfig {
	if g.dimension <= 0 {
		return nil
	}
	dim := int32(g.dimension)
	return &genai.EmbedContentConfig{OutputDimensionality: &dim}
}

func (g *GeminiEmbedder) embedWithRetry(ctx context.Context, contents []*genai.Content, cfg *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	for attempt := 0; ; attempt++ {
		res, err := g.client.Models.EmbedContent(ctx, g.model, contents, cfg)
		if err == nil {
			return res, nil
		}
		if !quotaExceeded(err) || attempt >= g.maxRetries {
			return nil, fmt.Errorf("failed to embed snippet: %w", err)
		}

		timer := time.NewTimer(g.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (g *GeminiEmbedder) Dimension() int {
	return g.dimension
}

// quotaExceeded reports whether err is a rate limit the API asks us to back off from.
func quotaExceeded(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
}
