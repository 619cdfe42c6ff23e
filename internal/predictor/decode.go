package predictor

import (
	"context"
	"encoding/json"
	"fmt"
)

// Artifact kinds.
const (
	KindTFIDF           = "tfidf"
	KindAST             = "ast"
	KindGeminiEmbedding = "gemini_embedding"
	KindOllamaEmbedding = "ollama_embedding"
	KindLinear          = "linear"
	KindMultiOutput     = "multi_output"
	KindPresence        = "presence"
)

type envelope struct {
	Kind string `json:"kind"`
}

// Kind reads the kind discriminator of a serialized artifact.
func Kind(data []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("invalid artifact: %w", err)
	}
	if env.Kind == "" {
		return "", fmt.Errorf("artifact has no kind")
	}
	return env.Kind, nil
}

// Decoder turns serialized artifacts into adapters. Remote embedding
// extractors take their credentials from here, never from the artifact.
type Decoder struct {
	APIKey        string
	OllamaBaseURL string

	// NewEmbedder overrides embedder construction; nil means NewEmbedder.
	NewEmbedder func(ctx context.Context, opts EmbedderOptions) (Embedder, error)
}

type astParams struct {
	Language string `json:"language"`
}

type embeddingParams struct {
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
	BaseURL   string `json:"base_url"`
}

// DecodeExtractor builds a FeatureExtractor from an artifact.
func (d *Decoder) DecodeExtractor(ctx context.Context, data []byte) (FeatureExtractor, error) {
	kind, err := Kind(data)
	if err != nil {
		return nil, err
	}
	if !extractorKinds[kind] {
		return nil, fmt.Errorf("%q is not an extractor: %w", kind, ErrUnknownKind)
	}
	if err := validateKind(kind, data); err != nil {
		return nil, err
	}

	switch kind {
	case KindTFIDF:
		var params tfidfParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("invalid %s artifact: %w", kind, err)
		}
		return newTFIDFVectorizer(params)

	case KindAST:
		var params astParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("invalid %s artifact: %w", kind, err)
		}
		return NewASTExtractor(params.Language)

	case KindGeminiEmbedding, KindOllamaEmbedding:
		var params embeddingParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("invalid %s artifact: %w", kind, err)
		}
		opts := EmbedderOptions{
			APIKey:    d.APIKey,
			Model:     params.Model,
			Dimension: params.Dimension,
			BaseURL:   params.BaseURL,
		}
		if kind == KindGeminiEmbedding {
			opts.Provider = "gemini"
		} else {
			opts.Provider = "ollama"
			if opts.BaseURL == "" {
				opts.BaseURL = d.OllamaBaseURL
			}
		}
		newEmbedder := d.NewEmbedder
		if newEmbedder == nil {
			newEmbedder = NewEmbedder
		}
		em, err := newEmbedder(ctx, opts)
		if err != nil {
			return nil, err
		}
		return NewEmbeddingExtractor(em), nil

	default:
		return nil, fmt.Errorf("%q is not an extractor: %w", kind, ErrUnknownKind)
	}
}

// DecodeClassifier builds a Classifier from an artifact.
func (d *Decoder) DecodeClassifier(data []byte) (Classifier, error) {
	kind, err := Kind(data)
	if err != nil {
		return nil, err
	}
	if !classifierKinds[kind] {
		return nil, fmt.Errorf("%q is not a classifier: %w", kind, ErrUnknownKind)
	}
	if err := validateKind(kind, data); err != nil {
		return nil, err
	}

	switch kind {
	case KindLinear:
		var params linearParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("invalid %s artifact: %w", kind, err)
		}
		return newLinearClassifier(params)

	case KindMultiOutput:
		var params multiOutputParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("invalid %s artifact: %w", kind, err)
		}
		return newMultiOutputClassifier(params)

	case KindPresence:
		var params presenceParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("invalid %s artifact: %w", kind, err)
		}
		return newPresenceClassifier(params)

	default:
		return nil, fmt.Errorf("%q is not a classifier: %w", kind, ErrUnknownKind)
	}
}
