package analysis

import (
	"context"
	"errors"
	"testing"

	"snipcheck/internal/predictor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExtractor records what it was asked to transform.
type mockExtractor struct {
	calls []string
	err   error
}

func (m *mockExtractor) ExtractFeatures(_ context.Context, text string) ([]float64, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return nil, m.err
	}
	return []float64{float64(len(text))}, nil
}

func (m *mockExtractor) Width() int { return 1 }

type fixedClassifier struct {
	label []int
}

func (f fixedClassifier) Classify(context.Context, []float64) ([]int, error) {
	return f.label, nil
}

func newTestAnalyzer(syntaxLabel, structureLabel []int) (*Analyzer, *mockExtractor, *mockExtractor) {
	syn := &mockExtractor{}
	str := &mockExtractor{}
	bundle := &predictor.Bundle{
		Syntax:    predictor.Pipeline{Extractor: syn, Classifier: fixedClassifier{syntaxLabel}},
		Structure: predictor.Pipeline{Extractor: str, Classifier: fixedClassifier{structureLabel}},
	}
	return NewAnalyzer(bundle), syn, str
}

func TestAnalyzer_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("Canonical text reaches both pipelines unchanged", func(t *testing.T) {
		a, syn, str := newTestAnalyzer([]int{0}, []int{1, 0, 1})

		res, err := a.Analyze(ctx, "def f():\n    # comment\n    return 1\n")
		require.NoError(t, err)

		assert.Equal(t, "def f():\nreturn 1", res.Canonical)
		assert.Equal(t, []string{res.Canonical}, syn.calls)
		assert.Equal(t, []string{res.Canonical}, str.calls)
		assert.False(t, res.Empty)
		assert.Equal(t, SyntaxClean, res.Syntax)
		assert.Equal(t, StructureVerdict{StructureLoop, StructureListOperation}, res.Structure)
		assert.False(t, res.Structure.Has(StructureConditional))
	})

	t.Run("Comment only input is empty and skips prediction", func(t *testing.T) {
		a, syn, str := newTestAnalyzer([]int{1}, []int{1, 1, 1})

		res, err := a.Analyze(ctx, "# just a comment")
		require.NoError(t, err)

		assert.True(t, res.Empty)
		assert.Equal(t, "", res.Canonical)
		assert.Empty(t, syn.calls)
		assert.Empty(t, str.calls)
		assert.Equal(t, SyntaxUnknown, res.Syntax)
	})

	t.Run("Syntax error label", func(t *testing.T) {
		a, _, _ := newTestAnalyzer([]int{1}, []int{0, 0, 0})

		res, err := a.Analyze(ctx, "def f(:")
		require.NoError(t, err)
		assert.Equal(t, SyntaxError, res.Syntax)
	})

	t.Run("All zero structure label is no structures, not an error", func(t *testing.T) {
		a, _, _ := newTestAnalyzer([]int{0}, []int{0, 0, 0})

		res, err := a.Analyze(ctx, "x = 1")
		require.NoError(t, err)
		assert.NoError(t, res.StructureErr)
		assert.NotNil(t, res.Structure)
		assert.True(t, res.Structure.None())
	})

	t.Run("Syntax failure does not block structure", func(t *testing.T) {
		a, syn, str := newTestAnalyzer([]int{0}, []int{0, 1, 0})
		boom := errors.New("vocabulary mismatch")
		syn.err = boom

		res, err := a.Analyze(ctx, "if x: y")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, res.SyntaxErr, boom)
		assert.NoError(t, res.StructureErr)
		assert.Len(t, str.calls, 1)
		assert.Equal(t, StructureVerdict{StructureConditional}, res.Structure)
	})

	t.Run("Malformed labels are propagated", func(t *testing.T) {
		a, _, _ := newTestAnalyzer([]int{2}, []int{1, 0})

		res, err := a.Analyze(ctx, "x")
		require.Error(t, err)
		assert.ErrorIs(t, res.SyntaxErr, ErrMalformedLabel)
		assert.ErrorIs(t, res.StructureErr, ErrMalformedLabel)
	})
}

func TestLabelMapping(t *testing.T) {
	tests := []struct {
		label []int
		want  StructureVerdict
		err   bool
	}{
		{[]int{1, 0, 1}, StructureVerdict{StructureLoop, StructureListOperation}, false},
		{[]int{0, 0, 0}, StructureVerdict{}, false},
		{[]int{1, 1, 1}, StructureVerdict{StructureLoop, StructureConditional, StructureListOperation}, false},
		{[]int{0, 1, 0}, StructureVerdict{StructureConditional}, false},
		{[]int{1, 1}, nil, true},
		{[]int{0, 3, 0}, nil, true},
	}
	for _, tt := range tests {
		got, err := structureFromLabel(tt.label)
		if tt.err {
			assert.ErrorIs(t, err, ErrMalformedLabel, "label %v", tt.label)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "label %v", tt.label)
	}

	v, err := syntaxFromLabel([]int{0})
	require.NoError(t, err)
	assert.Equal(t, SyntaxClean, v)

	_, err = syntaxFromLabel(nil)
	assert.ErrorIs(t, err, ErrMalformedLabel)
}

func TestMessages(t *testing.T) {
	en := MessagesFor("")
	assert.Equal(t, "syntax error", en.SyntaxMessage(SyntaxError))
	assert.Equal(t, en.NoStructures, en.StructureMessage(StructureVerdict{}))

	es := MessagesFor("ES")
	assert.Equal(t, "Código 10/10", es.SyntaxMessage(SyntaxClean))
	assert.Equal(t, "Estructuras detectadas: Bucle (for/while), Operación de Lista",
		es.StructureMessage(StructureVerdict{StructureLoop, StructureListOperation}))

	assert.Equal(t, "loop, list-operation", StructureVerdict{StructureLoop, StructureListOperation}.String())
	assert.Equal(t, "none", StructureVerdict{}.String())
	assert.Equal(t, "has-error", SyntaxError.String())
}
