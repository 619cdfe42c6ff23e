package extractor

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor counts structural nodes using a language-specific grammar.
// The compiled query is shared; every call gets its own parser and cursor.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
	query         *sitter.Query
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "python", "":
		lang = "python"
		langExt = &PythonExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	query, err := sitter.NewQuery([]byte(langExt.GetQuery()), langExt.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	return &Extractor{langExtractor: langExt, langName: lang, query: query}, nil
}

// Language returns the grammar name.
func (e *Extractor) Language() string {
	return e.langName
}

// Count parses text and tallies loop, conditional and list-operation nodes.
func (e *Extractor) Count(ctx context.Context, text string) (Counts, error) {
	sourceCode := []byte(text)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.langExtractor.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to parse snippet: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	counts := Counts{HasErrors: root.HasError()}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(e.query, root)

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			captureName := e.query.CaptureNameForId(c.Index)
			counts.add(e.langExtractor.Categorize(captureName, c.Node, sourceCode))
		}
	}

	return counts, nil
}
