// Package predictor defines the capability the analyzer needs from a trained
// model and the adapters that implement it from serialized artifacts.
package predictor

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when a feature vector does not have the
	// width a classifier was trained on.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	// ErrUnknownKind is returned when an artifact names a kind no adapter handles.
	ErrUnknownKind = errors.New("unknown artifact kind")
)

// FeatureExtractor converts canonical text into a fixed-width vector.
type FeatureExtractor interface {
	ExtractFeatures(ctx context.Context, text string) ([]float64, error)
	// Width is the vector length, or 0 when it is only known after the first call.
	Width() int
}

// Classifier predicts a label from a feature vector.
type Classifier interface {
	Classify(ctx context.Context, features []float64) ([]int, error)
}

// inputWidther is implemented by classifiers that know their input width.
type inputWidther interface {
	InputWidth() int
}

// Pipeline pairs an extractor with the classifier trained on its output.
type Pipeline struct {
	Extractor  FeatureExtractor
	Classifier Classifier
}

// Predict runs text through the extractor and then the classifier.
func (p Pipeline) Predict(ctx context.Context, text string) ([]int, error) {
	if p.Extractor == nil || p.Classifier == nil {
		return nil, fmt.Errorf("pipeline not initialized")
	}
	features, err := p.Extractor.ExtractFeatures(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract features: %w", err)
	}
	label, err := p.Classifier.Classify(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("failed to classify: %w", err)
	}
	return label, nil
}

// Bundle holds the two pipelines loaded once at startup.
// It is read-only after LoadBundle returns.
type Bundle struct {
	Syntax    Pipeline
	Structure Pipeline
}

// Artifact names, one per serialized object.
const (
	SyntaxVectorizer    = "syntax_vectorizer"
	SyntaxClassifier    = "syntax_classifier"
	StructureVectorizer = "structure_vectorizer"
	StructureClassifier = "structure_classifier"
)

// ArtifactNames lists every artifact a bundle needs, in load order.
var ArtifactNames = []string{
	SyntaxVectorizer,
	SyntaxClassifier,
	StructureVectorizer,
	StructureClassifier,
}

// ArtifactSource is anything artifacts can be read from.
type ArtifactSource interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// LoadBundle reads and decodes the four artifacts. Any error is fatal for the
// caller; there is no partial bundle.
func LoadBundle(ctx context.Context, src ArtifactSource, dec *Decoder) (*Bundle, error) {
	syntax, err := loadPipeline(ctx, src, dec, SyntaxVectorizer, SyntaxClassifier)
	if err != nil {
		return nil, err
	}
	structure, err := loadPipeline(ctx, src, dec, StructureVectorizer, StructureClassifier)
	if err != nil {
		return nil, err
	}
	return &Bundle{Syntax: syntax, Structure: structure}, nil
}

func loadPipeline(ctx context.Context, src ArtifactSource, dec *Decoder, extractorName, classifierName string) (Pipeline, error) {
	raw, err := src.Get(ctx, extractorName)
	if err != nil {
		return Pipeline{}, fmt.Errorf("failed to read %s: %w", extractorName, err)
	}
	ext, err := dec.DecodeExtractor(ctx, raw)
	if err != nil {
		return Pipeline{}, fmt.Errorf("failed to decode %s: %w", extractorName, err)
	}

	raw, err = src.Get(ctx, classifierName)
	if err != nil {
		return Pipeline{}, fmt.Errorf("failed to read %s: %w", classifierName, err)
	}
	clf, err := dec.DecodeClassifier(raw)
	if err != nil {
		return Pipeline{}, fmt.Errorf("failed to decode %s: %w", classifierName, err)
	}

	if w, ok := clf.(inputWidther); ok && ext.Width() > 0 && w.InputWidth() != ext.Width() {
		return Pipeline{}, fmt.Errorf("%s produces %d features but %s expects %d: %w",
			extractorName, ext.Width(), classifierName, w.InputWidth(), ErrDimensionMismatch)
	}

	return Pipeline{Extractor: ext, Classifier: clf}, nil
}
