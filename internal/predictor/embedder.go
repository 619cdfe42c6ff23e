package predictor

import (
	"context"
	"fmt"
	"strings"
)

// Embedder converts texts to dense vectors using a remote model.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

type EmbedderOptions struct {
	Provider  string
	APIKey    string
	Model     string
	Dimension int
	BaseURL   string
}

func NewEmbedder(ctx context.Context, opts EmbedderOptions) (Embedder, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("gemini embedding requires an API key")
		}
		return NewGeminiEmbedder(ctx, opts)
	case "ollama":
		return NewOllamaEmbedder(opts.Model, opts.Dimension, opts.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", opts.Provider)
	}
}

// EmbeddingExtractor uses an embedding of the canonical text as its feature vector.
type EmbeddingExtractor struct {
	embedder Embedder
}

func NewEmbeddingExtractor(em Embedder) *EmbeddingExtractor {
	return &EmbeddingExtractor{embedder: em}
}

// Width is the embedder's configured dimension.
func (e *EmbeddingExtractor) Width() int {
	return e.embedder.Dimension()
}

func (e *EmbeddingExtractor) ExtractFeatures(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedding count mismatch: got %d, expected 1", len(vectors))
	}
	if dim := e.embedder.Dimension(); dim > 0 && len(vectors[0]) != dim {
		return nil, fmt.Errorf("embedding has %d values, want %d: %w", len(vectors[0]), dim, ErrDimensionMismatch)
	}

	out := make([]float64, len(vectors[0]))
	for i, v := range vectors[0] {
		out[i] = float64(v)
	}
	return out, nil
}
