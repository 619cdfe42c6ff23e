// Package analysis runs a snippet through normalization and both predictors.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"snipcheck/internal/normalize"
	"snipcheck/internal/predictor"
)

// ErrMalformedLabel means a classifier returned a label outside its contract.
var ErrMalformedLabel = errors.New("malformed label")

// Result is the outcome of one analysis.
type Result struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	// Empty is set when nothing was left after normalization. No predictor
	// ran and both verdicts are zero.
	Empty     bool             `json:"empty"`
	Syntax    SyntaxVerdict    `json:"syntax"`
	Structure StructureVerdict `json:"structure"`

	SyntaxErr    error `json:"-"`
	StructureErr error `json:"-"`
}

// Analyzer sequences normalization and prediction over a loaded bundle.
type Analyzer struct {
	bundle *predictor.Bundle
}

// NewAnalyzer creates an analyzer over an already loaded bundle.
func NewAnalyzer(bundle *predictor.Bundle) *Analyzer {
	return &Analyzer{bundle: bundle}
}

// Analyze normalizes raw and, unless the canonical form is empty, runs both
// pipelines on it. The structure pipeline runs even when the syntax pipeline
// fails; failures are kept on the result and returned joined.
func (a *Analyzer) Analyze(ctx context.Context, raw string) (*Result, error) {
	res := &Result{
		Raw:       raw,
		Canonical: normalize.Canonicalize(raw),
	}
	if res.Canonical == "" {
		res.Empty = true
		return res, nil
	}

	if label, err := a.bundle.Syntax.Predict(ctx, res.Canonical); err != nil {
		res.SyntaxErr = fmt.Errorf("syntax prediction: %w", err)
	} else if res.Syntax, err = syntaxFromLabel(label); err != nil {
		res.SyntaxErr = err
	}

	if label, err := a.bundle.Structure.Predict(ctx, res.Canonical); err != nil {
		res.StructureErr = fmt.Errorf("structure prediction: %w", err)
	} else if res.Structure, err = structureFromLabel(label); err != nil {
		res.StructureErr = err
	}

	return res, errors.Join(res.SyntaxErr, res.StructureErr)
}
