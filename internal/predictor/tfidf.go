package predictor

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	defaultTokenPattern = `\b\w\w+\b`
	tokenMatchTimeout   = time.Second
)

// TFIDFVectorizer reproduces a fitted term-frequency / inverse-document-frequency
// vectorizer: tokenize, count vocabulary n-grams, weight by idf, normalize.
type TFIDFVectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	lowercase   bool
	token       *regexp2.Regexp
	minN, maxN  int
	sublinearTF bool
	norm        string
}

type tfidfParams struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Lowercase    *bool          `json:"lowercase"`
	TokenPattern string         `json:"token_pattern"`
	NgramRange   []int          `json:"ngram_range"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Norm         *string        `json:"norm"`
}

func newTFIDFVectorizer(params tfidfParams) (*TFIDFVectorizer, error) {
	if len(params.Vocabulary) == 0 {
		return nil, fmt.Errorf("tfidf vocabulary is empty")
	}
	columns := make(map[int]string, len(params.Vocabulary))
	for term, idx := range params.Vocabulary {
		if idx < 0 || idx >= len(params.Vocabulary) {
			return nil, fmt.Errorf("tfidf vocabulary index %d for %q out of range", idx, term)
		}
		if prev, ok := columns[idx]; ok {
			return nil, fmt.Errorf("tfidf vocabulary terms %q and %q share index %d", prev, term, idx)
		}
		columns[idx] = term
	}
	if len(params.IDF) != 0 && len(params.IDF) != len(params.Vocabulary) {
		return nil, fmt.Errorf("tfidf has %d idf weights for %d terms: %w", len(params.IDF), len(params.Vocabulary), ErrDimensionMismatch)
	}

	pattern := params.TokenPattern
	if pattern == "" {
		pattern = defaultTokenPattern
	}
	// regexp2 classes are unicode-aware already and it has no u flag.
	pattern = strings.TrimPrefix(pattern, "(?u)")
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("invalid token pattern %q: %w", params.TokenPattern, err)
	}
	re.MatchTimeout = tokenMatchTimeout

	minN, maxN := 1, 1
	if len(params.NgramRange) == 2 {
		minN, maxN = params.NgramRange[0], params.NgramRange[1]
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("invalid ngram range %v", params.NgramRange)
	}

	lowercase := true
	if params.Lowercase != nil {
		lowercase = *params.Lowercase
	}
	norm := "l2"
	if params.Norm != nil {
		norm = *params.Norm
	}
	switch norm {
	case "l1", "l2", "", "none":
	default:
		return nil, fmt.Errorf("unsupported norm %q", norm)
	}

	return &TFIDFVectorizer{
		vocabulary:  params.Vocabulary,
		idf:         params.IDF,
		lowercase:   lowercase,
		token:       re,
		minN:        minN,
		maxN:        maxN,
		sublinearTF: params.SublinearTF,
		norm:        norm,
	}, nil
}

// Width is the vocabulary size.
func (v *TFIDFVectorizer) Width() int {
	return len(v.vocabulary)
}

// ExtractFeatures returns the weighted term vector for text.
func (v *TFIDFVectorizer) ExtractFeatures(_ context.Context, text string) ([]float64, error) {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	tokens, err := v.tokenize(text)
	if err != nil {
		return nil, err
	}

	vec := make([]float64, len(v.vocabulary))
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if idx, ok := v.vocabulary[term]; ok {
				vec[idx]++
			}
		}
	}

	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		if len(v.idf) > 0 {
			tf *= v.idf[i]
		}
		vec[i] = tf
	}

	normalize(vec, v.norm)
	return vec, nil
}

func (v *TFIDFVectorizer) tokenize(text string) ([]string, error) {
	var tokens []string
	m, err := v.token.FindStringMatch(text)
	for m != nil && err == nil {
		tokens = append(tokens, m.String())
		m, err = v.token.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize: %w", err)
	}
	return tokens, nil
}

func normalize(vec []float64, norm string) {
	var total float64
	switch norm {
	case "l2":
		for _, x := range vec {
			total += x * x
		}
		total = math.Sqrt(total)
	case "l1":
		for _, x := range vec {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range vec {
		vec[i] /= total
	}
}
