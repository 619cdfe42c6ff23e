package extractor

import sitter "github.com/smacker/go-tree-sitter"

// Category is the structural family a syntax node belongs to.
type Category int

const (
	CategoryNone Category = iota
	CategoryLoop
	CategoryConditional
	CategoryListOperation
)

// Counts tallies structural nodes found in a snippet.
type Counts struct {
	Loops          int `json:"loops"`
	Conditionals   int `json:"conditionals"`
	ListOperations int `json:"list_operations"`
	// HasErrors reports whether the parser had to recover from a syntax error.
	HasErrors bool `json:"has_errors"`
}

// VectorWidth is the length of Counts.Vector.
const VectorWidth = 3

// Vector returns the counts in loop, conditional, list-operation order.
func (c Counts) Vector() []float64 {
	return []float64{float64(c.Loops), float64(c.Conditionals), float64(c.ListOperations)}
}

func (c *Counts) add(cat Category) {
	switch cat {
	case CategoryLoop:
		c.Loops++
	case CategoryConditional:
		c.Conditionals++
	case CategoryListOperation:
		c.ListOperations++
	}
}

// LanguageExtractor defines what each grammar must provide.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	Categorize(captureName string, node *sitter.Node, sourceCode []byte) Category
}
