package predictor

import (
	"context"

	"snipcheck/internal/extractor"
)

// ASTExtractor uses syntax-tree node counts as features: one position each for
// loops, conditionals and list operations.
type ASTExtractor struct {
	ext *extractor.Extractor
}

func NewASTExtractor(lang string) (*ASTExtractor, error) {
	ext, err := extractor.NewExtractor(lang)
	if err != nil {
		return nil, err
	}
	return &ASTExtractor{ext: ext}, nil
}

func (a *ASTExtractor) Width() int {
	return extractor.VectorWidth
}

func (a *ASTExtractor) ExtractFeatures(ctx context.Context, text string) ([]float64, error) {
	counts, err := a.ext.Count(ctx, text)
	if err != nil {
		return nil, err
	}
	return counts.Vector(), nil
}
