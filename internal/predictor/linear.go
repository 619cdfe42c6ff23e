package predictor

import (
	"context"
	"fmt"
)

// LinearClassifier is a fitted binary linear model. A positive decision
// value selects the second class.
type LinearClassifier struct {
	coef      []float64
	intercept float64
	classes   [2]int
}

type linearParams struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Classes   []int     `json:"classes"`
}

func newLinearClassifier(params linearParams) (*LinearClassifier, error) {
	if len(params.Coef) == 0 {
		return nil, fmt.Errorf("linear classifier has no coefficients")
	}
	classes := [2]int{0, 1}
	switch len(params.Classes) {
	case 0:
	case 2:
		classes = [2]int{params.Classes[0], params.Classes[1]}
	default:
		return nil, fmt.Errorf("linear classifier needs exactly 2 classes, got %d", len(params.Classes))
	}
	return &LinearClassifier{coef: params.Coef, intercept: params.Intercept, classes: classes}, nil
}

// InputWidth is the number of coefficients.
func (c *LinearClassifier) InputWidth() int {
	return len(c.coef)
}

// Decision returns coef·x + intercept.
func (c *LinearClassifier) Decision(features []float64) (float64, error) {
	if len(features) != len(c.coef) {
		return 0, fmt.Errorf("got %d features, want %d: %w", len(features), len(c.coef), ErrDimensionMismatch)
	}
	sum := c.intercept
	for i, w := range c.coef {
		sum += w * features[i]
	}
	return sum, nil
}

func (c *LinearClassifier) predictOne(features []float64) (int, error) {
	d, err := c.Decision(features)
	if err != nil {
		return 0, err
	}
	if d > 0 {
		return c.classes[1], nil
	}
	return c.classes[0], nil
}

// Classify returns a single-element label.
func (c *LinearClassifier) Classify(_ context.Context, features []float64) ([]int, error) {
	label, err := c.predictOne(features)
	if err != nil {
		return nil, err
	}
	return []int{label}, nil
}

// MultiOutputClassifier runs one binary linear model per output position.
type MultiOutputClassifier struct {
	estimators []*LinearClassifier
}

type multiOutputParams struct {
	Estimators []linearParams `json:"estimators"`
}

func newMultiOutputClassifier(params multiOutputParams) (*MultiOutputClassifier, error) {
	if len(params.Estimators) == 0 {
		return nil, fmt.Errorf("multi-output classifier has no estimators")
	}
	m := &MultiOutputClassifier{}
	for i, es := range params.Estimators {
		est, err := newLinearClassifier(es)
		if err != nil {
			return nil, fmt.Errorf("estimator %d: %w", i, err)
		}
		if i > 0 && est.InputWidth() != m.estimators[0].InputWidth() {
			return nil, fmt.Errorf("estimator %d expects %d features, estimator 0 expects %d: %w",
				i, est.InputWidth(), m.estimators[0].InputWidth(), ErrDimensionMismatch)
		}
		m.estimators = append(m.estimators, est)
	}
	return m, nil
}

// InputWidth is the shared width of every estimator.
func (m *MultiOutputClassifier) InputWidth() int {
	return m.estimators[0].InputWidth()
}

// Classify returns one label per estimator, in estimator order.
func (m *MultiOutputClassifier) Classify(_ context.Context, features []float64) ([]int, error) {
	out := make([]int, len(m.estimators))
	for i, est := range m.estimators {
		label, err := est.predictOne(features)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		out[i] = label
	}
	return out, nil
}

// PresenceClassifier sets position i when feature i exceeds the threshold.
// It pairs with count-style extractors that need no trained weights.
type PresenceClassifier struct {
	width     int
	threshold float64
}

type presenceParams struct {
	Width     int     `json:"width"`
	Threshold float64 `json:"threshold"`
}

func newPresenceClassifier(params presenceParams) (*PresenceClassifier, error) {
	if params.Width <= 0 {
		return nil, fmt.Errorf("presence classifier needs a positive width, got %d", params.Width)
	}
	return &PresenceClassifier{width: params.Width, threshold: params.Threshold}, nil
}

// InputWidth is the configured width.
func (p *PresenceClassifier) InputWidth() int {
	return p.width
}

// Classify thresholds each feature independently.
func (p *PresenceClassifier) Classify(_ context.Context, features []float64) ([]int, error) {
	if len(features) != p.width {
		return nil, fmt.Errorf("got %d features, want %d: %w", len(features), p.width, ErrDimensionMismatch)
	}
	out := make([]int, p.width)
	for i, x := range features {
		if x > p.threshold {
			out[i] = 1
		}
	}
	return out, nil
}
