package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonExtractor implements LanguageExtractor for Python.
type PythonExtractor struct{}

// listMethods are the list methods counted as list operations.
var listMethods = map[string]bool{
	"append":  true,
	"extend":  true,
	"insert":  true,
	"pop":     true,
	"remove":  true,
	"sort":    true,
	"reverse": true,
	"clear":   true,
	"index":   true,
	"count":   true,
}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

func (p *PythonExtractor) GetQuery() string {
	return `
		(for_statement) @loop
		(while_statement) @loop
		(for_in_clause) @loop
		(if_statement) @conditional
		(elif_clause) @conditional
		(conditional_expression) @conditional
		(if_clause) @conditional
		(list) @list
		(list_comprehension) @list
		(subscript) @list
		(call function: (attribute attribute: (identifier) @method))
	`
}

func (p *PythonExtractor) Categorize(captureName string, node *sitter.Node, sourceCode []byte) Category {
	switch captureName {
	case "loop":
		return CategoryLoop
	case "conditional":
		return CategoryConditional
	case "list":
		return CategoryListOperation
	case "method":
		if listMethods[node.Content(sourceCode)] {
			return CategoryListOperation
		}
	}
	return CategoryNone
}
